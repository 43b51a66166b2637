package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// AuthHandler exposes registration, login, refresh and logout.
type AuthHandler struct {
	auth         *service.AuthService
	secureCookie bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, secureCookie: secureCookie}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return created(c, "user registered", dto.NewUserResponse(user))
}

// Login handles POST /auth/login. The access token goes in the body, the
// refresh token only in its cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetRefreshCookie(c, pair.RefreshToken, h.auth.TokenManager().RefreshTTL(), h.secureCookie)

	return ok(c, "login successful", fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.AuthResponse{
			AccessToken: pair.AccessToken,
			TokenType:   "Bearer",
			ExpiresAt:   pair.AccessExpiresAt,
		},
	})
}

// Refresh handles POST /auth/refresh. The refresh token is accepted from
// its dedicated cookie channel only, never from body or header.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(auth.RefreshCookieName)
	if refreshToken == "" {
		return apperrors.NewUnauthorized("missing refresh token cookie")
	}

	accessToken, exp, err := h.auth.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		return err
	}

	return ok(c, "token refreshed", dto.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
	})
}

// Logout handles POST /auth/logout. Client-side invalidation only.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.auth.Logout(c.UserContext())
	auth.ClearRefreshCookie(c, h.secureCookie)
	return ok(c, "logged out", nil)
}
