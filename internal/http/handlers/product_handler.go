package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sweetnirwana/internal/domain"
	applog "sweetnirwana/internal/log"
	"sweetnirwana/internal/repos"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Prods   *repos.ProductRepo
	Images  *services.ImageService
}

// GET /api/sweets
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.Context())
	if err != nil {
		applog.Error(c, "sweets.list.fail", err, nil)
		return failFor(c, err)
	}
	return ok(c, products)
}

// GET /api/sweets/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return fail(c, fiber.StatusNotFound, "this sweet is no longer available")
	}
	p, err := h.Catalog.Get(c.Context(), id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "this sweet is no longer available")
	}
	return ok(c, p)
}

// GET /api/availability?productId=
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Query("productId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "missing or invalid productId")
	}
	avail, err := h.Catalog.CheckAvailability(c.Context(), id)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, avail)
}

type createProductReq struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}

// POST /api/sweets (admin)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	if !Cap(c).IsAdmin {
		return fail(c, fiber.StatusForbidden, "access denied")
	}
	var req createProductReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	name, okName := validate.Name(req.Name)
	if !okName {
		return fail(c, fiber.StatusBadRequest, "name must be 1-50 characters")
	}
	if _, err := decimal.NewFromString(req.Price); err != nil {
		return fail(c, fiber.StatusBadRequest, "price must be a decimal string")
	}
	if req.Quantity < 0 {
		return fail(c, fiber.StatusBadRequest, "quantity must be non-negative")
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	}
	if err := h.Prods.Create(p); err != nil {
		applog.Error(c, "sweets.create.fail", err, map[string]any{"name": name})
		return failFor(c, err)
	}
	applog.Audit(c, "sweets.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

// DELETE /api/sweets/:id (admin)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if !Cap(c).IsAdmin {
		return fail(c, fiber.StatusForbidden, "access denied")
	}
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "sweets.delete.fail", err, map[string]any{"product": id})
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	applog.Audit(c, "sweets.delete", map[string]any{"product": id})
	return ok(c, fiber.Map{"id": id})
}

type setStockReq struct {
	Quantity *int `json:"quantity"`
}

// PUT /api/sweets/:id/stock — absolute quantity, not a delta.
func (h *ProductHandler) SetStock(c *fiber.Ctx) error {
	if !Cap(c).IsAdmin {
		return fail(c, fiber.StatusForbidden, "access denied")
	}
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req setStockReq
	if err := c.BodyParser(&req); err != nil || req.Quantity == nil || *req.Quantity < 0 {
		return fail(c, fiber.StatusBadRequest, "quantity must be a non-negative integer")
	}
	if err := h.Prods.SetStock(id, *req.Quantity); err != nil {
		applog.Error(c, "sweets.stock.fail", err, map[string]any{"product": id})
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	applog.Audit(c, "sweets.stock", map[string]any{"product": id, "quantity": *req.Quantity})
	return ok(c, fiber.Map{"id": id, "quantity": *req.Quantity})
}

// POST /api/sweets/upload-image (admin, multipart)
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	if !Cap(c).IsAdmin {
		return fail(c, fiber.StatusForbidden, "access denied")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "missing image file")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "unreadable image file")
	}
	defer f.Close()

	path, err := h.Images.Save(fh.Filename, f)
	if err != nil {
		applog.Error(c, "sweets.upload.fail", err, map[string]any{"filename": fh.Filename})
		return fail(c, fiber.StatusBadRequest, "could not store image")
	}
	applog.Audit(c, "sweets.upload", map[string]any{"path": path})
	return ok(c, fiber.Map{"imagePath": path})
}
