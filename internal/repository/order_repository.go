package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error)
	// UpdateStatus persists status, last_status_modification_date and
	// delivery_date in a single statement so the projection is atomic
	// relative to that one order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, modifiedAt time.Time, deliveryDate *time.Time) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO orders (order_number, user_id, items, subtotal, shipping_fee, total,
                            status, trx_date, last_status_modification_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		order.OrderNumber,
		order.UserID,
		items,
		order.Subtotal,
		order.ShippingFee,
		order.Total,
		order.Status,
		order.TrxDate,
	).Scan(&order.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, order_number, user_id, items, subtotal, shipping_fee, total,
               status, trx_date, last_status_modification_date, delivery_date
        FROM orders WHERE id=$1`

	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, order_number, user_id, items, subtotal, shipping_fee, total,
               status, trx_date, last_status_modification_date, delivery_date
        FROM orders WHERE user_id=$1 ORDER BY trx_date DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, order_number, user_id, items, subtotal, shipping_fee, total,
               status, trx_date, last_status_modification_date, delivery_date
        FROM orders ORDER BY trx_date DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, modifiedAt time.Time, deliveryDate *time.Time) error {
	const query = `
        UPDATE orders
        SET status=$1, last_status_modification_date=$2,
            delivery_date=COALESCE($3, delivery_date)
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query, status, modifiedAt, deliveryDate, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var items []byte
	if err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&items,
		&order.Subtotal,
		&order.ShippingFee,
		&order.Total,
		&order.Status,
		&order.TrxDate,
		&order.LastStatusModificationDate,
		&order.DeliveryDate,
	); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
