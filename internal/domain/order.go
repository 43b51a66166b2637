package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidOrderStatus reports whether the value belongs to the closed status set.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled,
		OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// OrderItem is one line of the cart snapshot frozen at order creation.
type OrderItem struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order is the aggregate for a placed purchase. LastStatusModificationDate is
// re-stamped on every accepted status update, including a repeat of the
// current status.
type Order struct {
	ID                         string
	OrderNumber                string
	UserID                     string
	Items                      []OrderItem
	Subtotal                   float64
	ShippingFee                float64
	Total                      float64
	Status                     OrderStatus
	TrxDate                    time.Time
	LastStatusModificationDate time.Time
	DeliveryDate               *time.Time
}
