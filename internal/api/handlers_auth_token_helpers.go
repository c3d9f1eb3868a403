package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) setRefreshCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/auth",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expiresAt,
	})
}

func (handler *Handler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  handler.now().Add(-1 * time.Hour),
	})
}
