package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Orders         *handlers.OrdersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	Limiter        *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	throttle := RateLimitMiddleware(cfg.Limiter)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", throttle, cfg.Auth.Register)
	authGroup.Post("/login", throttle, cfg.Auth.Login)
	authGroup.Post("/refresh", throttle, cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Logout)

	app.Get("/products", cfg.Products.List)
	app.Get("/products/category/:category", cfg.Products.ByCategory)
	app.Get("/products/:sku", cfg.Products.Get)
	app.Get("/banners", cfg.Products.Banners)

	adminOnly := auth.RequireRole(domain.RoleAdmin)
	app.Post("/products", cfg.AuthMiddleware.Handle, adminOnly, cfg.Products.Create)
	app.Put("/products/:sku", cfg.AuthMiddleware.Handle, adminOnly, cfg.Products.Update)
	app.Delete("/products/:sku", cfg.AuthMiddleware.Handle, adminOnly, cfg.Products.Deactivate)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	orders := app.Group("/orders", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Get("/:id/history", cfg.Orders.History)
	orders.Put("/:id/status", auth.RequireRole(domain.RoleAdmin), throttle, cfg.Orders.UpdateStatus)
}
