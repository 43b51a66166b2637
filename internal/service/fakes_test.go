package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// memUserRepo is an in-memory UserRepository used across service tests.
type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

// memOrderRepo is an in-memory OrderRepository. It counts writes so tests
// can assert that rejected requests never reach the store.
type memOrderRepo struct {
	orders            map[string]*domain.Order
	nextID            int
	updateStatusCalls int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.nextID++
	order.ID = fmt.Sprintf("order-%d", r.nextID)
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Order, error) {
	orders := []domain.Order{}
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) ListAll(_ context.Context, _, _ int) ([]domain.Order, error) {
	orders := []domain.Order{}
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, modifiedAt time.Time, deliveryDate *time.Time) error {
	r.updateStatusCalls++
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	order.LastStatusModificationDate = modifiedAt
	if deliveryDate != nil {
		order.DeliveryDate = deliveryDate
	}
	return nil
}

// memHistoryRepo is an in-memory OrderHistoryRepository. Set createErr to
// simulate a failing append.
type memHistoryRepo struct {
	entries   []domain.OrderStatusChange
	nextID    int
	createErr error
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{}
}

func (r *memHistoryRepo) Create(_ context.Context, entry *domain.OrderStatusChange) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	entry.ID = fmt.Sprintf("hist-%d", r.nextID)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memHistoryRepo) ListByOrder(_ context.Context, orderID string, _, _ int) ([]domain.OrderStatusChange, error) {
	entries := []domain.OrderStatusChange{}
	for _, entry := range r.entries {
		if entry.OrderID == orderID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
