package dto

import (
	"time"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	ShippingFee float64            `json:"shipping_fee"`
}

// OrderItemRequest is one cart line.
type OrderItemRequest struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// UpdateOrderStatusRequest payload for the status edit endpoint.
type UpdateOrderStatusRequest struct {
	Status       domain.OrderStatus `json:"status"`
	DeliveryDate *time.Time         `json:"delivery_date"`
}

// OrderResponse is the order projection returned by every order endpoint.
type OrderResponse struct {
	ID                         string             `json:"id"`
	OrderNumber                string             `json:"order_number"`
	UserID                     string             `json:"user_id"`
	Items                      []domain.OrderItem `json:"items"`
	Subtotal                   float64            `json:"subtotal"`
	ShippingFee                float64            `json:"shipping_fee"`
	Total                      float64            `json:"total"`
	Status                     domain.OrderStatus `json:"status"`
	TrxDate                    time.Time          `json:"trxDate"`
	LastStatusModificationDate time.Time          `json:"lastStatusModificationDate"`
	DeliveryDate               *time.Time         `json:"deliveryDate,omitempty"`
}

// OrderHistoryResponse is one transition trail entry.
type OrderHistoryResponse struct {
	ID           string             `json:"id"`
	ChangedByID  string             `json:"changed_by_id"`
	OldStatus    domain.OrderStatus `json:"old_status"`
	NewStatus    domain.OrderStatus `json:"new_status"`
	DeliveryDate *time.Time         `json:"delivery_date,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// NewOrderResponse maps the domain model.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                         order.ID,
		OrderNumber:                order.OrderNumber,
		UserID:                     order.UserID,
		Items:                      order.Items,
		Subtotal:                   order.Subtotal,
		ShippingFee:                order.ShippingFee,
		Total:                      order.Total,
		Status:                     order.Status,
		TrxDate:                    order.TrxDate,
		LastStatusModificationDate: order.LastStatusModificationDate,
		DeliveryDate:               order.DeliveryDate,
	}
}

// NewOrderHistoryResponse maps a trail entry.
func NewOrderHistoryResponse(entry domain.OrderStatusChange) OrderHistoryResponse {
	return OrderHistoryResponse{
		ID:           entry.ID,
		ChangedByID:  entry.ChangedByID,
		OldStatus:    entry.OldStatus,
		NewStatus:    entry.NewStatus,
		DeliveryDate: entry.DeliveryDate,
		CreatedAt:    entry.CreatedAt,
	}
}
