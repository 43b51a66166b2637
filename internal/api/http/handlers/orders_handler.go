package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// OrdersHandler exposes order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// callerPrincipal resolves the authenticated principal set by the auth
// middleware.
func callerPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			SKU:       item.SKU,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(c.UserContext(), principal.User, service.OrderCreateInput{
		Items:       items,
		ShippingFee: req.ShippingFee,
	})
	if err != nil {
		return err
	}
	return created(c, "order created", dto.NewOrderResponse(order))
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	orders, err := h.orders.ListOrders(c.UserContext(), principal.User, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewOrderResponse(&orders[i]))
	}
	return ok(c, "orders retrieved", items)
}

// Get handles GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	order, err := h.orders.GetOrder(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, "order retrieved", dto.NewOrderResponse(order))
}

// UpdateStatus handles PUT /orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), service.StatusUpdateInput{
		Status:       req.Status,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		return err
	}
	return ok(c, "order status updated", dto.NewOrderResponse(order))
}

// History handles GET /orders/:id/history.
func (h *OrdersHandler) History(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	entries, err := h.orders.ListHistory(c.UserContext(), principal.User, c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.OrderHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewOrderHistoryResponse(entry))
	}
	return ok(c, "order history retrieved", items)
}
