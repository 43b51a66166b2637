package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
)

func newTestOrderService(orders *memOrderRepo, history *memHistoryRepo) *OrderService {
	return NewOrderService(OrderDependencies{OrderRepo: orders, HistoryRepo: history})
}

func testUser(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleUser}
}

func testAdmin(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleAdmin}
}

func placeOrder(t *testing.T, svc *OrderService, owner *domain.User) *domain.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), owner, OrderCreateInput{
		Items: []domain.OrderItem{
			{SKU: "SKU-1", Name: "Widget", UnitPrice: 10.0, Quantity: 2},
			{SKU: "SKU-2", Name: "Gadget", UnitPrice: 5.5, Quantity: 1},
		},
		ShippingFee: 3.0,
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc := newTestOrderService(newMemOrderRepo(), newMemHistoryRepo())

	order := placeOrder(t, svc, testUser("u-1"))

	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "u-1", order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status, "every order starts pending")
	assert.InDelta(t, 25.5, order.Subtotal, 1e-9)
	assert.InDelta(t, 28.5, order.Total, 1e-9)
	assert.False(t, order.TrxDate.IsZero())
	assert.Equal(t, order.TrxDate, order.LastStatusModificationDate)
	assert.Nil(t, order.DeliveryDate)
}

func TestOrderService_CreateOrderValidation(t *testing.T) {
	svc := newTestOrderService(newMemOrderRepo(), newMemHistoryRepo())
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, testUser("u-1"), OrderCreateInput{})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)

	_, err = svc.CreateOrder(ctx, testUser("u-1"), OrderCreateInput{
		Items: []domain.OrderItem{{SKU: "SKU-1", UnitPrice: 1, Quantity: 0}},
	})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orders := newMemOrderRepo()
	history := newMemHistoryRepo()
	svc := newTestOrderService(orders, history)
	ctx := context.Background()
	admin := testAdmin("admin-1")

	order := placeOrder(t, svc, testUser("u-1"))
	createdAt := order.LastStatusModificationDate

	updated, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: domain.OrderStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	assert.False(t, updated.LastStatusModificationDate.Before(createdAt))

	entries, err := svc.ListHistory(ctx, admin, order.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OrderStatusPending, entries[0].OldStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, entries[0].NewStatus)
	assert.Equal(t, "admin-1", entries[0].ChangedByID)
}

func TestOrderService_UpdateStatusRejectsTeleport(t *testing.T) {
	orders := newMemOrderRepo()
	svc := newTestOrderService(orders, newMemHistoryRepo())
	ctx := context.Background()

	order := placeOrder(t, svc, testUser("u-1"))

	// pending cannot jump straight to delivered
	_, err := svc.UpdateStatus(ctx, testAdmin("admin-1"), order.ID, StatusUpdateInput{Status: domain.OrderStatusDelivered})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)
	assert.Zero(t, orders.updateStatusCalls, "rejected transition must not touch the store")

	stored, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
}

func TestOrderService_UpdateStatusUnknownValue(t *testing.T) {
	orders := newMemOrderRepo()
	svc := newTestOrderService(orders, newMemHistoryRepo())

	order := placeOrder(t, svc, testUser("u-1"))

	_, err := svc.UpdateStatus(context.Background(), testAdmin("admin-1"), order.ID, StatusUpdateInput{Status: "returned"})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)
	assert.Zero(t, orders.updateStatusCalls)
}

func TestOrderService_UpdateStatusHistoryFailureSurfaces(t *testing.T) {
	orders := newMemOrderRepo()
	history := newMemHistoryRepo()
	history.createErr = errors.New("history table unavailable")
	svc := newTestOrderService(orders, history)

	order := placeOrder(t, svc, testUser("u-1"))

	_, err := svc.UpdateStatus(context.Background(), testAdmin("admin-1"), order.ID, StatusUpdateInput{Status: domain.OrderStatusConfirmed})
	require.Error(t, err, "a failed history append must not be swallowed")
	assert.Equal(t, "500", asDomainError(t, err).Code)
}

func TestOrderService_UpdateStatusNotFound(t *testing.T) {
	svc := newTestOrderService(newMemOrderRepo(), newMemHistoryRepo())

	_, err := svc.UpdateStatus(context.Background(), testAdmin("admin-1"), "missing-id", StatusUpdateInput{Status: domain.OrderStatusConfirmed})
	require.Error(t, err)
	assert.Equal(t, "404", asDomainError(t, err).Code)
}

func TestOrderService_SelfTransitionRestamps(t *testing.T) {
	orders := newMemOrderRepo()
	svc := newTestOrderService(orders, newMemHistoryRepo())
	ctx := context.Background()
	admin := testAdmin("admin-1")

	order := placeOrder(t, svc, testUser("u-1"))
	first, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: domain.OrderStatusConfirmed})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	second, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: domain.OrderStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, second.Status)
	assert.True(t, second.LastStatusModificationDate.After(first.LastStatusModificationDate))
}

func TestOrderService_TerminalStates(t *testing.T) {
	orders := newMemOrderRepo()
	svc := newTestOrderService(orders, newMemHistoryRepo())
	ctx := context.Background()
	admin := testAdmin("admin-1")

	order := placeOrder(t, svc, testUser("u-1"))
	_, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: domain.OrderStatusCancelled})
	require.NoError(t, err)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
	} {
		_, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: next})
		require.Error(t, err, "cancelled must not reach %s", next)
		assert.Equal(t, "400", asDomainError(t, err).Code)
	}
}

func TestOrderService_DeliveryDateRules(t *testing.T) {
	orders := newMemOrderRepo()
	svc := newTestOrderService(orders, newMemHistoryRepo())
	ctx := context.Background()
	admin := testAdmin("admin-1")
	when := time.Now().Add(48 * time.Hour)

	order := placeOrder(t, svc, testUser("u-1"))

	// delivery date is meaningless outside shipped or delivered
	_, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{
		Status:       domain.OrderStatusConfirmed,
		DeliveryDate: &when,
	})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)

	_, err = svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: domain.OrderStatusConfirmed})
	require.NoError(t, err)

	shipped, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{
		Status:       domain.OrderStatusShipped,
		DeliveryDate: &when,
	})
	require.NoError(t, err)
	require.NotNil(t, shipped.DeliveryDate)
	assert.Equal(t, when, *shipped.DeliveryDate)

	// omitting the date on a later transition keeps the stored one
	delivered, err := svc.UpdateStatus(ctx, admin, order.ID, StatusUpdateInput{Status: domain.OrderStatusDelivered})
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveryDate)
	assert.Equal(t, when, *delivered.DeliveryDate)
}

func TestOrderService_GetOrderOwnership(t *testing.T) {
	svc := newTestOrderService(newMemOrderRepo(), newMemHistoryRepo())
	ctx := context.Background()
	owner := testUser("u-1")

	order := placeOrder(t, svc, owner)

	got, err := svc.GetOrder(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// someone else's token subject disagrees with the resource owner
	_, err = svc.GetOrder(ctx, testUser("u-2"), order.ID)
	require.Error(t, err)
	assert.Equal(t, "409", asDomainError(t, err).Code)

	// admins can read any order
	_, err = svc.GetOrder(ctx, testAdmin("admin-1"), order.ID)
	assert.NoError(t, err)
}

func TestOrderService_ListOrders(t *testing.T) {
	svc := newTestOrderService(newMemOrderRepo(), newMemHistoryRepo())
	ctx := context.Background()
	alice := testUser("u-1")
	bob := testUser("u-2")

	placeOrder(t, svc, alice)
	placeOrder(t, svc, alice)
	placeOrder(t, svc, bob)

	mine, err := svc.ListOrders(ctx, alice, 50, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListOrders(ctx, testAdmin("admin-1"), 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
