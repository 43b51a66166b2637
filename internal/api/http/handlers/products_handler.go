package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// ProductsHandler exposes the catalog endpoints.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalogService *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalogService}
}

// List handles GET /products. An optional category query filters the catalog.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	var (
		products []domain.Product
		err      error
	)
	if category := c.Query("category"); category != "" {
		products, err = h.catalog.ListByCategory(c.UserContext(), category, c.Query("subCategory"))
	} else {
		products, err = h.catalog.ListProducts(c.UserContext())
	}
	if err != nil {
		return err
	}
	return ok(c, "products retrieved", mapProducts(products))
}

// ByCategory handles GET /products/category/:category.
func (h *ProductsHandler) ByCategory(c *fiber.Ctx) error {
	products, err := h.catalog.ListByCategory(c.UserContext(), c.Params("category"), c.Query("subCategory"))
	if err != nil {
		return err
	}
	return ok(c, "products retrieved", mapProducts(products))
}

// Get handles GET /products/:sku.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.UserContext(), c.Params("sku"))
	if err != nil {
		return err
	}
	return ok(c, "product retrieved", dto.NewProductResponse(product))
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), service.ProductCreateInput{
		Name:               req.Name,
		Category:           req.Category,
		SubCategory:        req.SubCategory,
		Description:        req.Description,
		NormalPrice:        req.NormalPrice,
		DealPrice:          req.DealPrice,
		DiscountPercentage: req.DiscountPercentage,
		Rating:             req.Rating,
		ImageResources:     req.ImageResources,
		FreeShipping:       req.FreeShipping,
	})
	if err != nil {
		return err
	}
	return created(c, "product created", dto.NewProductResponse(product))
}

// Update handles PUT /products/:sku.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("sku"), service.ProductUpdateInput{
		Name:               req.Name,
		Category:           req.Category,
		SubCategory:        req.SubCategory,
		Description:        req.Description,
		NormalPrice:        req.NormalPrice,
		DealPrice:          req.DealPrice,
		DiscountPercentage: req.DiscountPercentage,
		Rating:             req.Rating,
		ImageResources:     req.ImageResources,
		FreeShipping:       req.FreeShipping,
		IsActive:           req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, "product updated", dto.NewProductResponse(product))
}

// Deactivate handles DELETE /products/:sku. Soft delete: the row stays so
// historical orders keep resolving.
func (h *ProductsHandler) Deactivate(c *fiber.Ctx) error {
	product, err := h.catalog.DeactivateProduct(c.UserContext(), c.Params("sku"))
	if err != nil {
		return err
	}
	return ok(c, "product deactivated", dto.NewProductResponse(product))
}

// Banners handles GET /banners.
func (h *ProductsHandler) Banners(c *fiber.Ctx) error {
	banners, err := h.catalog.ListBanners(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.BannerResponse, 0, len(banners))
	for _, banner := range banners {
		items = append(items, dto.NewBannerResponse(banner))
	}
	return ok(c, "banners retrieved", items)
}

func mapProducts(products []domain.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.NewProductResponse(&products[i]))
	}
	return items
}
