package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lapicera/asistente-compras/internal/database"
	"github.com/lapicera/asistente-compras/internal/models"
)

// ListProducts returns a paginated list of catalog products
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	params := &models.ProductListParams{
		Limit:   c.QueryInt("limit", 50),
		Offset:  c.QueryInt("offset", 0),
		Search:  c.Query("search"),
		Quality: models.QualityTier(c.Query("quality")),
	}

	// Validate limits
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Quality != "" && !params.Quality.Valid() {
		return Error(c, fiber.StatusBadRequest, "invalid quality category")
	}

	products, total, err := h.db.ListProducts(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list products")
	}

	return SuccessWithMeta(c, products, total, params.Limit, params.Offset)
}

// GetProduct returns a single product by id
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.db.GetProductByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return Error(c, fiber.StatusNotFound, "product not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get product")
	}

	return Success(c, product)
}

// CreateProduct creates a new catalog product
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Validate required fields before any mutation
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.Price.IsNegative() {
		return Error(c, fiber.StatusBadRequest, "price must not be negative")
	}
	if req.Stock < 0 {
		return Error(c, fiber.StatusBadRequest, "stock must not be negative")
	}
	if !req.QualityCategory.Valid() {
		return Error(c, fiber.StatusBadRequest, "invalid quality category")
	}

	product, err := h.db.CreateProduct(c.Context(), &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create product")
	}

	h.mirror.MirrorProduct(product)

	return Created(c, product)
}

// UpdateProduct updates a catalog product
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil && *req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name must not be empty")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return Error(c, fiber.StatusBadRequest, "price must not be negative")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return Error(c, fiber.StatusBadRequest, "stock must not be negative")
	}
	if req.QualityCategory != nil && !req.QualityCategory.Valid() {
		return Error(c, fiber.StatusBadRequest, "invalid quality category")
	}

	product, err := h.db.UpdateProduct(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return Error(c, fiber.StatusNotFound, "product not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update product")
	}

	h.mirror.MirrorProduct(product)

	return Success(c, product)
}

// DeleteProduct deletes a catalog product. Shopping list lines that
// referenced it are unbound, not deleted.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.db.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return Error(c, fiber.StatusNotFound, "product not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete product")
	}

	h.mirror.RemoveProduct(id)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deleted successfully",
	})
}
