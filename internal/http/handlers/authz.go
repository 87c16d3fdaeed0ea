package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sweetnirwana/internal/domain"
	applog "sweetnirwana/internal/log"
	"sweetnirwana/internal/services"
)

// RequireAdmin resolves the session's capability once and gates admin
// routes on it. Handlers downstream can read it from Locals("capability").
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(sid)
		cap := u.Capability()
		if err != nil || !cap.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("user", u)
		c.Locals("capability", cap)
		return c.Next()
	}
}

// Cap returns the capability RequireAdmin resolved, or none.
func Cap(c *fiber.Ctx) domain.Capability {
	if cap, ok := c.Locals("capability").(domain.Capability); ok {
		return cap
	}
	return domain.Capability{}
}
