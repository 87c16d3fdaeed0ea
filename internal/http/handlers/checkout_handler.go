package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "sweetnirwana/internal/log"
	"sweetnirwana/internal/repos"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
}

type checkoutReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	// mocked payment fields; validated, never charged or stored
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (r checkoutReq) validate() (repos.Shipping, string) {
	name, okName := validate.Name(r.Name)
	if !okName {
		return repos.Shipping{}, "name must be 1-50 characters"
	}
	email, okEmail := validate.Email(r.Email)
	if !okEmail {
		return repos.Shipping{}, "invalid email"
	}
	if r.Address == "" {
		return repos.Shipping{}, "missing address"
	}
	if r.City == "" {
		return repos.Shipping{}, "missing city"
	}
	zip, okZip := validate.ZIP(r.Zip)
	if !okZip {
		return repos.Shipping{}, "invalid ZIP"
	}
	if _, okCard := validate.CardNumber(r.CardNumber); !okCard {
		return repos.Shipping{}, "invalid card number"
	}
	if !validate.Expiry(r.Expiry, time.Now()) {
		return repos.Shipping{}, "invalid or expired card date"
	}
	if !validate.CVV(r.CVV) {
		return repos.Shipping{}, "invalid CVV"
	}
	return repos.Shipping{Name: name, Email: email, Address: r.Address, City: r.City, Zip: zip}, ""
}

// POST /api/checkout
func (h *CheckoutHandler) Complete(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req checkoutReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	ship, reason := req.validate()
	if reason != "" {
		applog.Security(c, "validation.fail", map[string]any{"step": "checkout", "reason": reason})
		return fail(c, fiber.StatusBadRequest, reason)
	}

	orderID, err := h.Checkout.CompleteOrder(c.Context(), sid, ship)
	if err != nil {
		applog.Error(c, "checkout.fail", err, nil)
		return failFor(c, err)
	}
	applog.Audit(c, "checkout.complete", map[string]any{"order_id": orderID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"orderId": orderID}})
}

// POST /api/checkout/cancel
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Checkout.CancelCheckout(c.Context(), sid); err != nil {
		return failFor(c, err)
	}
	applog.Audit(c, "checkout.cancel", nil)
	return ok(c, fiber.Map{"cancelled": true})
}

// GET /api/orders/:id — only the placing session sees its order.
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	oid := c.Params("id")
	o, items, err := h.Orders.Get(oid)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "order not found")
	}
	if sid := c.Cookies("sid"); sid == "" || sid != o.SessionID {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return fail(c, fiber.StatusNotFound, "order not found")
	}
	return ok(c, fiber.Map{"order": o, "items": items})
}

// GET /api/orders — the session's order history.
func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.ListBySession(ensureSID(c))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return failFor(c, err)
	}
	return ok(c, orders)
}

// GET /api/admin/orders (admin) — newest orders across every session.
func (h *CheckoutHandler) Latest(c *fiber.Ctx) error {
	if !Cap(c).IsAdmin {
		return fail(c, fiber.StatusForbidden, "access denied")
	}
	orders, err := h.Orders.ListLatest(c.QueryInt("limit", 50))
	if err != nil {
		applog.Error(c, "orders.latest.fail", err, nil)
		return failFor(c, err)
	}
	return ok(c, orders)
}
