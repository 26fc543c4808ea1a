package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/repository"
)

// ItemHandler serves the club's equipment catalog.
type ItemHandler struct {
	Items *repository.ItemRepo
}

func NewItemHandler(items *repository.ItemRepo) *ItemHandler {
	return &ItemHandler{Items: items}
}

type itemReq struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

func (r *itemReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	if r.Name == "" {
		return "name required"
	}
	if r.Quantity < 0 {
		return "quantity must not be negative"
	}
	return ""
}

// List returns the whole catalog of the caller's club, both roles.
func (h *ItemHandler) List(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Items.ListByClub(ctx, id.ClubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list items failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create adds an equipment type to the catalog (admin only).
func (h *ItemHandler) Create(c echo.Context) error {
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	id := callerIdentity(c)

	it := model.Item{
		ClubID:      id.ClubID,
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Description: strings.TrimSpace(req.Description),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Items.Create(ctx, &it); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create item failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": it})
}

// Update rewrites an item's fields.  Lowering the total stock does not
// touch existing reservations; their snapshots keep the quantities they
// were confirmed with.
func (h *ItemHandler) Update(c echo.Context) error {
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	id := callerIdentity(c)

	it := model.Item{
		ID:          c.Param("id"),
		ClubID:      id.ClubID,
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Description: strings.TrimSpace(req.Description),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Items.Update(ctx, id.ClubID, &it); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update item failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": it})
}

// Delete removes an item from the catalog.  Reservations holding the
// item keep their name snapshot; future validations will reject it.
func (h *ItemHandler) Delete(c echo.Context) error {
	id := callerIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Items.Delete(ctx, id.ClubID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete item failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
