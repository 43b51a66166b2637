package dto

import (
	"github.com/spec-kit/storefront-service/internal/domain"
)

// CreateProductRequest payload. No SKU field: it is assigned server-side.
type CreateProductRequest struct {
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	SubCategory        string   `json:"subCategory"`
	Description        string   `json:"description"`
	NormalPrice        float64  `json:"normalPrice"`
	DealPrice          float64  `json:"dealPrice"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	ImageResources     []string `json:"imageResources"`
	FreeShipping       bool     `json:"freeShipping"`
}

// UpdateProductRequest payload; omitted fields stay unchanged.
type UpdateProductRequest struct {
	Name               *string  `json:"name"`
	Category           *string  `json:"category"`
	SubCategory        *string  `json:"subCategory"`
	Description        *string  `json:"description"`
	NormalPrice        *float64 `json:"normalPrice"`
	DealPrice          *float64 `json:"dealPrice"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	Rating             *float64 `json:"rating"`
	ImageResources     []string `json:"imageResources"`
	FreeShipping       *bool    `json:"freeShipping"`
	IsActive           *bool    `json:"isActive"`
}

// ProductResponse mirrors the storefront's catalog document shape.
type ProductResponse struct {
	ID                 string   `json:"id"`
	SKU                string   `json:"sku"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	SubCategory        string   `json:"subCategory"`
	Description        string   `json:"description"`
	NormalPrice        float64  `json:"normalPrice"`
	DealPrice          float64  `json:"dealPrice"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	ImageResources     []string `json:"imageResources"`
	FreeShipping       bool     `json:"freeShipping"`
	IsActive           bool     `json:"isActive"`
}

// BannerResponse is one storefront banner.
type BannerResponse struct {
	Name           string   `json:"name"`
	ImageResources []string `json:"imageResources"`
}

// NewProductResponse maps the domain model.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                 product.ID,
		SKU:                product.SKU,
		Name:               product.Name,
		Category:           product.Category,
		SubCategory:        product.SubCategory,
		Description:        product.Description,
		NormalPrice:        product.NormalPrice,
		DealPrice:          product.DealPrice,
		DiscountPercentage: product.DiscountPercentage,
		Rating:             product.Rating,
		ImageResources:     product.ImageResources,
		FreeShipping:       product.FreeShipping,
		IsActive:           product.IsActive,
	}
}

// NewBannerResponse maps the domain model.
func NewBannerResponse(banner domain.Banner) BannerResponse {
	return BannerResponse{
		Name:           banner.Name,
		ImageResources: banner.ImageResources,
	}
}
