package domain

import "time"

// OrderStatusChange is an immutable audit trail entry for one transition.
type OrderStatusChange struct {
	ID           string
	OrderID      string
	ChangedByID  string
	OldStatus    OrderStatus
	NewStatus    OrderStatus
	DeliveryDate *time.Time
	CreatedAt    time.Time
}
