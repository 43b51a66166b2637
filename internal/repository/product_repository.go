package repository

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// ProductRepository defines persistence access for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Deactivate(ctx context.Context, sku string) error
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category, subCategory string) ([]domain.Product, error)
	NextSKU(ctx context.Context) (string, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `
        id, sku, name, category, sub_category, description, normal_price,
        deal_price, discount_percentage, rating, image_resources,
        free_shipping, is_active, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	images, err := json.Marshal(product.ImageResources)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO products (sku, name, category, sub_category, description, normal_price,
                              deal_price, discount_percentage, rating, image_resources,
                              free_shipping, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.SKU,
		product.Name,
		product.Category,
		product.SubCategory,
		product.Description,
		product.NormalPrice,
		product.DealPrice,
		product.DiscountPercentage,
		product.Rating,
		images,
		product.FreeShipping,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	images, err := json.Marshal(product.ImageResources)
	if err != nil {
		return err
	}

	const query = `
        UPDATE products
        SET name=$1, category=$2, sub_category=$3, description=$4, normal_price=$5,
            deal_price=$6, discount_percentage=$7, rating=$8, image_resources=$9,
            free_shipping=$10, is_active=$11, updated_at=NOW()
        WHERE sku=$12`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Category,
		product.SubCategory,
		product.Description,
		product.NormalPrice,
		product.DealPrice,
		product.DiscountPercentage,
		product.Rating,
		images,
		product.FreeShipping,
		product.IsActive,
		product.SKU,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Deactivate(ctx context.Context, sku string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE products SET is_active=false, updated_at=NOW() WHERE sku=$1`, sku)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku=$1`
	return scanProduct(r.pool.QueryRow(ctx, query, sku))
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sku`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepository) ListByCategory(ctx context.Context, category, subCategory string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category=$1`
	args := []any{category}
	if subCategory != "" {
		query += ` AND sub_category=$2`
		args = append(args, subCategory)
	}
	query += ` ORDER BY sku`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// NextSKU assigns the next catalog number as document count + 1, the way the
// storefront has always numbered products.
func (r *productRepository) NextSKU(ctx context.Context) (string, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return "", err
	}
	return strconv.FormatInt(count+1, 10), nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	var images []byte
	if err := row.Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Category,
		&product.SubCategory,
		&product.Description,
		&product.NormalPrice,
		&product.DealPrice,
		&product.DiscountPercentage,
		&product.Rating,
		&images,
		&product.FreeShipping,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &product.ImageResources); err != nil {
			return nil, err
		}
	}
	return &product, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}
