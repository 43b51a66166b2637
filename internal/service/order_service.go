package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// OrderService coordinates order workflows and owns the status state machine.
type OrderService struct {
	orders     repository.OrderRepository
	history    repository.OrderHistoryRepository
	dispatcher events.Dispatcher
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	HistoryRepo repository.OrderHistoryRepository
	Dispatcher  events.Dispatcher
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// OrderCreateInput describes order creation payload. Items are the cart
// snapshot frozen into the order.
type OrderCreateInput struct {
	Items       []domain.OrderItem
	ShippingFee float64
}

// StatusUpdateInput describes a status edit request.
type StatusUpdateInput struct {
	Status       domain.OrderStatus
	DeliveryDate *time.Time
}

// allowedTransitions is the closed transition table. Absent targets are
// unreachable; delivered and cancelled are terminal.
var allowedTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:   {domain.OrderStatusConfirmed, domain.OrderStatusCancelled},
	domain.OrderStatusConfirmed: {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:   {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered: {},
	domain.OrderStatusCancelled: {},
}

func transitionAllowed(current, next domain.OrderStatus) bool {
	// repeating the current status is a valid transition event: it
	// re-stamps the modification date without changing the value
	if current == next {
		return true
	}
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CreateOrder places a new order for the caller. Status always starts at
// pending, trx_date is stamped here.
func (s *OrderService) CreateOrder(ctx context.Context, caller *domain.User, input OrderCreateInput) (*domain.Order, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", nil)
	}
	var subtotal float64
	for _, item := range input.Items {
		if item.SKU == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, apperrors.NewValidationError("order items require sku, positive quantity and non-negative price", nil)
		}
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	now := time.Now()
	order := &domain.Order{
		OrderNumber:                generateOrderNumber(),
		UserID:                     caller.ID,
		Items:                      input.Items,
		Subtotal:                   subtotal,
		ShippingFee:                input.ShippingFee,
		Total:                      subtotal + input.ShippingFee,
		Status:                     domain.OrderStatusPending,
		TrxDate:                    now,
		LastStatusModificationDate: now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOrderCreated,
		OrderID: order.ID,
		Actor:   events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.OrderCreatedPayload{
			OrderNumber: order.OrderNumber,
			Total:       order.Total,
			ItemCount:   len(order.Items),
		},
	})
	return order, nil
}

// GetOrder fetches an order. A non-admin caller asking for someone else's
// order gets a Conflict: the token subject and the target resource disagree.
func (s *OrderService) GetOrder(ctx context.Context, caller *domain.User, orderID string) (*domain.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && order.UserID != caller.ID {
		return nil, apperrors.NewConflict("identifiers do not match", nil)
	}
	return order, nil
}

// ListOrders returns the caller's orders, or every order for an admin.
func (s *OrderService) ListOrders(ctx context.Context, caller *domain.User, limit, offset int) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	if caller.Role == domain.RoleAdmin {
		orders, err = s.orders.ListAll(ctx, limit, offset)
	} else {
		orders, err = s.orders.ListByUser(ctx, caller.ID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// UpdateStatus runs the state machine: validate input against the closed
// set, load the order, check reachability, stamp the modification date and
// persist the projection in one statement. No write happens on any failure.
func (s *OrderService) UpdateStatus(ctx context.Context, caller *domain.User, orderID string, input StatusUpdateInput) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperrors.NewValidationError("order id is required", nil)
	}
	if !domain.ValidOrderStatus(input.Status) {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": string(input.Status)})
	}
	if input.DeliveryDate != nil &&
		input.Status != domain.OrderStatusShipped && input.Status != domain.OrderStatusDelivered {
		return nil, apperrors.NewValidationError("delivery date only applies to shipped or delivered", nil)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(order.Status, input.Status) {
		return nil, apperrors.NewValidationError("status transition not allowed",
			map[string]any{"from": string(order.Status), "to": string(input.Status)})
	}

	oldStatus := order.Status
	now := time.Now()
	if err := s.orders.UpdateStatus(ctx, order.ID, input.Status, now, input.DeliveryDate); err != nil {
		return nil, apperrors.MapError(err)
	}

	order.Status = input.Status
	order.LastStatusModificationDate = now
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}

	if s.history != nil {
		entry := &domain.OrderStatusChange{
			OrderID:      order.ID,
			ChangedByID:  caller.ID,
			OldStatus:    oldStatus,
			NewStatus:    order.Status,
			DeliveryDate: input.DeliveryDate,
		}
		if err := s.history.Create(ctx, entry); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOrderStatusChanged,
		OrderID: order.ID,
		Actor:   events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.OrderStatusChangedPayload{
			OldStatus:    oldStatus,
			NewStatus:    order.Status,
			DeliveryDate: input.DeliveryDate,
		},
	})
	return order, nil
}

// ListHistory returns the transition trail for owner or admin.
func (s *OrderService) ListHistory(ctx context.Context, caller *domain.User, orderID string, limit, offset int) ([]domain.OrderStatusChange, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && order.UserID != caller.ID {
		return nil, apperrors.NewConflict("identifiers do not match", nil)
	}
	if s.history == nil {
		return []domain.OrderStatusChange{}, nil
	}
	entries, err := s.history.ListByOrder(ctx, orderID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *OrderService) loadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
		}
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
