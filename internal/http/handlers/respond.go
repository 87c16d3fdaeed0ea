package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"sweetnirwana/internal/cart"
	"sweetnirwana/internal/catalog"
	"sweetnirwana/internal/services"
)

// Every response uses the {success, data|error} envelope the storefront
// expects.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// failFor maps service errors onto status codes with a specific reason:
// out of stock vs. exceeds available stock vs. network trouble.
func failFor(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		return fail(c, fiber.StatusConflict, "this sweet is out of stock")
	case errors.Is(err, cart.ErrStockExceeded):
		return fail(c, fiber.StatusConflict, "requested quantity exceeds available stock")
	case errors.Is(err, cart.ErrMalformedPrice):
		return fail(c, fiber.StatusUnprocessableEntity, "catalog data error: malformed price")
	case errors.Is(err, services.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "cart is empty")
	case errors.Is(err, services.ErrRemoteSync), errors.Is(err, catalog.ErrUnavailable):
		return fail(c, fiber.StatusBadGateway, "could not reach the catalog; your cart is unchanged")
	case errors.Is(err, sql.ErrNoRows):
		return fail(c, fiber.StatusNotFound, "not found")
	default:
		return fail(c, fiber.StatusInternalServerError, "something went wrong")
	}
}
