package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "sweetnirwana/internal/log"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// GET /api/auth/accounts — the mocked account picker.
func (h *AuthHandler) Accounts(c *fiber.Ctx) error {
	accounts, err := h.Auth.Accounts()
	if err != nil {
		applog.Error(c, "auth.accounts.fail", err, nil)
		return failFor(c, err)
	}
	return ok(c, accounts)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	email, okEmail := validate.Email(req.Email)
	if !okEmail || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	u, err := h.Auth.Login(sid, email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return ok(c, fiber.Map{"user": u, "isAdmin": u.Capability().IsAdmin})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie; the anonymous cart under this sid is abandoned with it
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return ok(c, fiber.Map{"loggedOut": true})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return fail(c, fiber.StatusUnauthorized, "not logged in")
	}
	u, err := h.Auth.CurrentUser(sid)
	if err != nil || u == nil {
		return fail(c, fiber.StatusUnauthorized, "not logged in")
	}
	return ok(c, fiber.Map{"user": u, "isAdmin": u.Capability().IsAdmin})
}
