package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RefreshCookieName is the only channel a refresh token travels through.
const RefreshCookieName = "refresh_token"

// SetRefreshCookie delivers the refresh token as an http-only, Lax cookie.
// The client's scripts never see it; access tokens go in the Authorization
// header instead.
func SetRefreshCookie(c *fiber.Ctx, token string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/auth",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearRefreshCookie overwrites the cookie with an empty value and zero
// max-age. This is client-side invalidation only: tokens already issued
// stay valid until natural expiry, no server-side blacklist exists.
func ClearRefreshCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
