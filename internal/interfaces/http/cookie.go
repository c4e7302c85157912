package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/pkg/jwt"
)

// CookieConfig flags for the session cookie. Secure also switches SameSite to
// None so the cookie survives a cross-site frontend deployment; local
// development stays on Lax over plain HTTP.
type CookieConfig struct {
	Domain string
	Secure bool
}

func setAuthCookie(c *fiber.Ctx, cfg CookieConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  time.Now().Add(jwt.TokenTTL),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSite(cfg),
	})
}

// clearAuthCookie removes the client-held credential. Advisory only: an
// already-issued token stays valid until its natural expiry.
func clearAuthCookie(c *fiber.Ctx, cfg CookieConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSite(cfg),
	})
}

func sameSite(cfg CookieConfig) string {
	if cfg.Secure {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}
