package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// BannerRepository lists storefront banner images.
type BannerRepository interface {
	List(ctx context.Context) ([]domain.Banner, error)
}

type bannerRepository struct {
	pool *pgxpool.Pool
}

// NewBannerRepository returns a Postgres-backed implementation.
func NewBannerRepository(pool *pgxpool.Pool) BannerRepository {
	return &bannerRepository{pool: pool}
}

func (r *bannerRepository) List(ctx context.Context) ([]domain.Banner, error) {
	const query = `SELECT id, name, image_resources, created_at FROM banners ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := []domain.Banner{}
	for rows.Next() {
		var banner domain.Banner
		var images []byte
		if err := rows.Scan(&banner.ID, &banner.Name, &images, &banner.CreatedAt); err != nil {
			return nil, err
		}
		if len(images) > 0 {
			if err := json.Unmarshal(images, &banner.ImageResources); err != nil {
				return nil, err
			}
		}
		banners = append(banners, banner)
	}
	return banners, rows.Err()
}
