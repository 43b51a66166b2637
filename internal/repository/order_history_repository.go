package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// OrderHistoryRepository persists the immutable status transition trail.
type OrderHistoryRepository interface {
	Create(ctx context.Context, entry *domain.OrderStatusChange) error
	ListByOrder(ctx context.Context, orderID string, limit, offset int) ([]domain.OrderStatusChange, error)
}

type orderHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewOrderHistoryRepository returns a Postgres-backed implementation.
func NewOrderHistoryRepository(pool *pgxpool.Pool) OrderHistoryRepository {
	return &orderHistoryRepository{pool: pool}
}

func (r *orderHistoryRepository) Create(ctx context.Context, entry *domain.OrderStatusChange) error {
	const query = `
        INSERT INTO order_status_history (order_id, changed_by_id, old_status, new_status, delivery_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.OrderID,
		entry.ChangedByID,
		entry.OldStatus,
		entry.NewStatus,
		entry.DeliveryDate,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *orderHistoryRepository) ListByOrder(ctx context.Context, orderID string, limit, offset int) ([]domain.OrderStatusChange, error) {
	const query = `
        SELECT id, order_id, changed_by_id, old_status, new_status, delivery_date, created_at
        FROM order_status_history WHERE order_id=$1
        ORDER BY created_at LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, orderID, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.OrderStatusChange{}
	for rows.Next() {
		var entry domain.OrderStatusChange
		if err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.ChangedByID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.DeliveryDate,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
