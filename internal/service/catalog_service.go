package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// CatalogService covers product and banner reads plus admin catalog edits.
type CatalogService struct {
	products repository.ProductRepository
	banners  repository.BannerRepository
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository, banners repository.BannerRepository) *CatalogService {
	return &CatalogService{products: products, banners: banners}
}

// ProductCreateInput describes a new catalog entry. The SKU is assigned
// server-side, never taken from the request.
type ProductCreateInput struct {
	Name               string
	Category           string
	SubCategory        string
	Description        string
	NormalPrice        float64
	DealPrice          float64
	DiscountPercentage float64
	Rating             float64
	ImageResources     []string
	FreeShipping       bool
}

// ProductUpdateInput is the allow-list of mutable product fields.
type ProductUpdateInput struct {
	Name               *string
	Category           *string
	SubCategory        *string
	Description        *string
	NormalPrice        *float64
	DealPrice          *float64
	DiscountPercentage *float64
	Rating             *float64
	ImageResources     []string
	FreeShipping       *bool
	IsActive           *bool
}

// ListProducts returns the whole catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// ListByCategory filters the catalog by category and optional sub-category.
func (s *CatalogService) ListByCategory(ctx context.Context, category, subCategory string) ([]domain.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, apperrors.NewValidationError("category is required", nil)
	}
	products, err := s.products.ListByCategory(ctx, category, subCategory)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// GetProduct fetches a single product by SKU.
func (s *CatalogService) GetProduct(ctx context.Context, sku string) (*domain.Product, error) {
	product, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"sku": sku})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// CreateProduct validates required fields and inserts an active entry.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductCreateInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return nil, apperrors.NewValidationError("name and category are required", nil)
	}
	if input.NormalPrice < 0 {
		return nil, apperrors.NewValidationError("price cannot be negative", nil)
	}

	sku, err := s.products.NextSKU(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	product := &domain.Product{
		SKU:                sku,
		Name:               strings.TrimSpace(input.Name),
		Category:           input.Category,
		SubCategory:        input.SubCategory,
		Description:        input.Description,
		NormalPrice:        input.NormalPrice,
		DealPrice:          input.DealPrice,
		DiscountPercentage: input.DiscountPercentage,
		Rating:             input.Rating,
		ImageResources:     input.ImageResources,
		FreeShipping:       input.FreeShipping,
		IsActive:           true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// UpdateProduct applies only the allow-listed fields that were provided.
func (s *CatalogService) UpdateProduct(ctx context.Context, sku string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, sku)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.SubCategory != nil {
		product.SubCategory = *input.SubCategory
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.NormalPrice != nil {
		if *input.NormalPrice < 0 {
			return nil, apperrors.NewValidationError("price cannot be negative", nil)
		}
		product.NormalPrice = *input.NormalPrice
	}
	if input.DealPrice != nil {
		product.DealPrice = *input.DealPrice
	}
	if input.DiscountPercentage != nil {
		product.DiscountPercentage = *input.DiscountPercentage
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.ImageResources != nil {
		product.ImageResources = input.ImageResources
	}
	if input.FreeShipping != nil {
		product.FreeShipping = *input.FreeShipping
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"sku": sku})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// DeactivateProduct soft-deletes a product; the row stays for order history.
func (s *CatalogService) DeactivateProduct(ctx context.Context, sku string) (*domain.Product, error) {
	if err := s.products.Deactivate(ctx, sku); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"sku": sku})
		}
		return nil, apperrors.MapError(err)
	}
	return s.GetProduct(ctx, sku)
}

// ListBanners returns the storefront banner images.
func (s *CatalogService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	banners, err := s.banners.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return banners, nil
}
