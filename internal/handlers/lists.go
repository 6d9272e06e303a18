package handlers

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lapicera/asistente-compras/internal/database"
	"github.com/lapicera/asistente-compras/internal/models"
	"github.com/lapicera/asistente-compras/internal/services"
)

// matchAndBind reruns the suggestion pipeline for a line and binds the
// primary suggestion's resolved product. The suggestion set is stored even
// when resolution fails, leaving the line suggested but unbound.
func (h *Handler) matchAndBind(c *fiber.Ctx, line *models.ShoppingListLine, pref models.QualityPreference) (*models.ShoppingListLine, error) {
	set := h.suggester.Suggest(line.ItemNameRaw, line.QuantityRequested, pref)

	var productID *int
	status := models.LineStatusUnresolved
	var resolveErr error

	if set.PrimarySuggestion != nil {
		status = models.LineStatusSuggested
		id, err := h.resolver.Resolve(c.Context(), *set.PrimarySuggestion)
		if err != nil {
			resolveErr = err
		} else {
			productID = &id
		}
	}

	updated, err := h.db.SetLineSuggestions(c.Context(), line.ID, &set, productID, status)
	if err != nil {
		return nil, err
	}
	if resolveErr != nil {
		return updated, resolveErr
	}
	return updated, nil
}

// mirrorList pushes the current state of a list to the document mirror
func (h *Handler) mirrorList(c *fiber.Ctx, listID int) {
	if h.mirror == nil {
		return
	}
	list, err := h.db.GetShoppingListByID(c.Context(), listID)
	if err != nil {
		return
	}
	h.mirror.MirrorList(list)
}

// ListShoppingLists returns all shopping lists
func (h *Handler) ListShoppingLists(c *fiber.Ctx) error {
	params := &models.ListListParams{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	lists, total, err := h.db.ListShoppingLists(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list shopping lists")
	}

	return SuccessWithMeta(c, lists, total, params.Limit, params.Offset)
}

// GetShoppingList returns a single shopping list with lines and totals
func (h *Handler) GetShoppingList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}

	list, err := h.db.GetShoppingListByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get shopping list")
	}

	return Success(c, list)
}

// CreateShoppingList creates a list from a free-text item block: every line
// is parsed, matched against the catalog, filtered by the declared quality
// preference and bound to its primary suggestion.
func (h *Handler) CreateShoppingList(c *fiber.Ctx) error {
	var req models.CreateListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.QualityPreference == "" {
		req.QualityPreference = models.PreferenceCualquiera
	}
	if !req.QualityPreference.Valid() {
		return Error(c, fiber.StatusBadRequest, "invalid quality preference")
	}

	parsed := h.parser.Parse(req.ItemsText)
	if len(parsed) == 0 {
		return Error(c, fiber.StatusBadRequest, "items_text must contain at least one item")
	}

	list, err := h.db.CreateShoppingList(c.Context(), req.Name, req.OwnerLabel, req.QualityPreference)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create shopping list")
	}

	for _, item := range parsed {
		line, err := h.db.CreateLine(c.Context(), list.ID, item.Name, item.Quantity)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to create list line")
		}
		if _, err := h.matchAndBind(c, line, req.QualityPreference); err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to resolve suggestion")
		}
	}

	full, err := h.db.GetShoppingListByID(c.Context(), list.ID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load shopping list")
	}

	h.mirror.MirrorList(full)

	return Created(c, full)
}

// CreateStandardList instantiates a predefined list for an educational stage
// through the regular suggestion pipeline
func (h *Handler) CreateStandardList(c *fiber.Ctx) error {
	std, ok := services.GetStandardList(c.Params("type"))
	if !ok {
		return Error(c, fiber.StatusNotFound, "unknown standard list type")
	}

	var req models.CreateListRequest
	// Body is optional; defaults come from the standard list definition
	if len(c.Body()) > 0 && !bytes.Equal(bytes.TrimSpace(c.Body()), []byte("{}")) {
		if err := c.BodyParser(&req); err != nil {
			return Error(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.Name == "" {
		req.Name = std.Name
	}
	if req.QualityPreference == "" {
		req.QualityPreference = models.PreferenceCualquiera
	}
	if !req.QualityPreference.Valid() {
		return Error(c, fiber.StatusBadRequest, "invalid quality preference")
	}

	list, err := h.db.CreateShoppingList(c.Context(), req.Name, req.OwnerLabel, req.QualityPreference)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create shopping list")
	}

	for _, item := range std.Items {
		line, err := h.db.CreateLine(c.Context(), list.ID, item.Text, item.Quantity)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to create list line")
		}
		if _, err := h.matchAndBind(c, line, req.QualityPreference); err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to resolve suggestion")
		}
	}

	full, err := h.db.GetShoppingListByID(c.Context(), list.ID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load shopping list")
	}

	h.mirror.MirrorList(full)

	return Created(c, full)
}

// ListStandardLists returns the predefined list catalog
func (h *Handler) ListStandardLists(c *fiber.Ctx) error {
	return Success(c, services.ListStandardLists())
}

// UpdateShoppingList renames a list or changes its quality preference. A
// preference change reruns matching for every line the user has not resolved
// by explicit choice.
func (h *Handler) UpdateShoppingList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}

	var req models.UpdateListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil && *req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name must not be empty")
	}
	if req.QualityPreference != nil && !req.QualityPreference.Valid() {
		return Error(c, fiber.StatusBadRequest, "invalid quality preference")
	}

	list, err := h.db.UpdateShoppingList(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update shopping list")
	}

	if req.QualityPreference != nil {
		full, err := h.db.GetShoppingListByID(c.Context(), id)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to load shopping list")
		}
		for i := range full.Lines {
			line := full.Lines[i].ShoppingListLine
			if line.Status == models.LineStatusChosen {
				continue
			}
			if _, err := h.matchAndBind(c, &line, *req.QualityPreference); err != nil {
				return Error(c, fiber.StatusInternalServerError, "failed to resolve suggestion")
			}
		}
	}

	full, err := h.db.GetShoppingListByID(c.Context(), list.ID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load shopping list")
	}

	h.mirror.MirrorList(full)

	return Success(c, full)
}

// DeleteShoppingList deletes a shopping list and, by cascade, its lines
func (h *Handler) DeleteShoppingList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}

	if err := h.db.DeleteShoppingList(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete shopping list")
	}

	h.mirror.RemoveList(id)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "shopping list deleted successfully",
	})
}

// AddLineToList appends a new line to a list and runs it through the
// suggestion pipeline. The item text is parsed like a single input line, so
// "3 cuadernos" carries its own quantity; an explicit quantity wins.
func (h *Handler) AddLineToList(c *fiber.Ctx) error {
	listID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}

	var req models.AddLineRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	parsed, ok := h.parser.ParseLine(req.ItemText)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "item_text is required")
	}
	if req.Quantity < 0 {
		return Error(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}
	if req.Quantity >= 1 {
		parsed.Quantity = req.Quantity
	}

	list, err := h.db.GetShoppingListByID(c.Context(), listID)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get shopping list")
	}

	line, err := h.db.CreateLine(c.Context(), listID, parsed.Name, parsed.Quantity)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create list line")
	}

	bound, err := h.matchAndBind(c, line, list.QualityPreference)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to resolve suggestion")
	}

	h.mirrorList(c, listID)

	return Created(c, bound)
}

// UpdateLine edits a line's raw text or quantity. Any edit returns the line
// to the unresolved state and forces re-matching.
func (h *Handler) UpdateLine(c *fiber.Ctx) error {
	listID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}
	lineID, err := strconv.Atoi(c.Params("lineId"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid line id")
	}

	var req models.UpdateLineRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.ItemText != nil && *req.ItemText == "" {
		return Error(c, fiber.StatusBadRequest, "item_text must not be empty")
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		return Error(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}

	line, err := h.db.GetLineByID(c.Context(), listID, lineID)
	if err != nil {
		if errors.Is(err, database.ErrLineNotFound) {
			return Error(c, fiber.StatusNotFound, "list line not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get list line")
	}

	text := line.ItemNameRaw
	quantity := line.QuantityRequested
	if req.ItemText != nil {
		text = *req.ItemText
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	reset, err := h.db.ResetLine(c.Context(), listID, lineID, text, quantity)
	if err != nil {
		if errors.Is(err, database.ErrLineNotFound) {
			return Error(c, fiber.StatusNotFound, "list line not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update list line")
	}

	list, err := h.db.GetShoppingListByID(c.Context(), listID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get shopping list")
	}

	bound, err := h.matchAndBind(c, reset, list.QualityPreference)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to resolve suggestion")
	}

	h.mirrorList(c, listID)

	return Success(c, bound)
}

// DeleteLine removes a single line; the list survives
func (h *Handler) DeleteLine(c *fiber.Ctx) error {
	listID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}
	lineID, err := strconv.Atoi(c.Params("lineId"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid line id")
	}

	if err := h.db.DeleteLine(c.Context(), listID, lineID); err != nil {
		if errors.Is(err, database.ErrLineNotFound) {
			return Error(c, fiber.StatusNotFound, "list line not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete list line")
	}

	h.mirrorList(c, listID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "list line deleted successfully",
	})
}

// SelectSuggestion rebinds a line to a user-chosen candidate from its stored
// suggestion sequence. Out-of-range or non-numeric indexes are rejected
// without touching the line.
func (h *Handler) SelectSuggestion(c *fiber.Ctx) error {
	listID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}
	lineID, err := strconv.Atoi(c.Params("lineId"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid line id")
	}

	var req models.SelectSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	raw := string(bytes.Trim(bytes.TrimSpace(req.SuggestionIndex), `"`))
	index, err := strconv.Atoi(raw)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "suggestion index must be a number")
	}

	line, err := h.db.GetLineByID(c.Context(), listID, lineID)
	if err != nil {
		if errors.Is(err, database.ErrLineNotFound) {
			return Error(c, fiber.StatusNotFound, "list line not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get list line")
	}

	candidate, err := services.SelectCandidate(line.Suggestions, index)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "suggestion index out of range")
	}

	productID, err := h.resolver.Resolve(c.Context(), candidate)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to resolve suggestion")
	}

	bound, err := h.db.BindLineProduct(c.Context(), lineID, productID, models.LineStatusChosen)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to bind product")
	}

	h.mirrorList(c, listID)

	return Success(c, bound)
}

// ExportList returns the structured priced projection consumed by the
// reporting layer
func (h *Handler) ExportList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}

	list, err := h.db.GetShoppingListByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get shopping list")
	}

	return Success(c, services.BuildListExport(list))
}

// ShareList creates a read-only share token for a list
func (h *Handler) ShareList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid list id")
	}

	share, err := h.db.CreateListShare(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create share link")
	}

	return Created(c, share)
}

// GetSharedList returns a list through its share token
func (h *Handler) GetSharedList(c *fiber.Ctx) error {
	listID, err := h.db.GetListIDByShareToken(c.Context(), c.Params("token"))
	if err != nil {
		if errors.Is(err, database.ErrShareNotFound) {
			return Error(c, fiber.StatusNotFound, "share link not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to resolve share link")
	}

	list, err := h.db.GetShoppingListByID(c.Context(), listID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get shopping list")
	}

	return Success(c, list)
}
