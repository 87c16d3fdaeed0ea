package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "sweetnirwana/internal/log"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// ensureSID pins the anonymous cart session to a cookie.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.Context(), ensureSID(c))
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return failFor(c, err)
	}
	return ok(c, cv)
}

type addItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req addItemReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	id, okID := validate.ID(req.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "missing or invalid productId")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		return fail(c, fiber.StatusBadRequest, "quantity must be between 1 and 99")
	}

	cv, err := h.Cart.Add(c.Context(), sid, id, req.Quantity)
	if err != nil {
		applog.Info(c, "cart.add.reject", map[string]any{"product": id, "qty": req.Quantity, "reason": err.Error()})
		return failFor(c, err)
	}
	applog.Audit(c, "cart.add", map[string]any{"product": id, "qty": req.Quantity})
	return ok(c, cv)
}

type updateItemReq struct {
	Quantity *int `json:"quantity"`
}

// PUT /api/cart/items/:id — quantity 0 removes the line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req updateItemReq
	if err := c.BodyParser(&req); err != nil || req.Quantity == nil || *req.Quantity < 0 {
		return fail(c, fiber.StatusBadRequest, "quantity must be a non-negative integer")
	}

	cv, err := h.Cart.SetQuantity(c.Context(), sid, id, *req.Quantity)
	if err != nil {
		applog.Info(c, "cart.update.reject", map[string]any{"product": id, "qty": *req.Quantity, "reason": err.Error()})
		return failFor(c, err)
	}
	applog.Audit(c, "cart.update", map[string]any{"product": id, "qty": *req.Quantity})
	return ok(c, cv)
}

// DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	cv, err := h.Cart.Remove(c.Context(), sid, id)
	if err != nil {
		return failFor(c, err)
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": id})
	return ok(c, cv)
}
