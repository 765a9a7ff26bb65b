package handlers

import (
	"net/http"
	"strings"

	"shopstock/internal/common"
	"shopstock/internal/models"
	"shopstock/internal/services"
	"shopstock/internal/stock"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests.
type CategoryHandlers struct {
	inventorySvc services.InventoryService
}

func NewCategoryHandlers(inventorySvc services.InventoryService) *CategoryHandlers {
	return &CategoryHandlers{inventorySvc: inventorySvc}
}

// ListCategories returns every category with its derived item and
// low-stock counts, plus the aggregate for the dashboard alert banner.
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	rollups, err := h.inventorySvc.CategoryRollups(ctx)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories":      rollups,
		"low_stock_total": stock.AggregateLowStock(rollups),
	})
}

// GetCategory returns one category together with its items, ordered by
// creation time, and the three-way stock summary for the page header.
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	category, err := h.inventorySvc.GetCategory(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	items, err := h.inventorySvc.ItemsByCategory(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": category,
		"items":    items,
		"summary":  stock.Summarize(items),
	})
}

func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	name := c.FormValue("name")
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return common.RespondError(c, err)
	}

	var icon *string
	if value := strings.TrimSpace(c.FormValue("icon")); value != "" {
		icon = &value
	}

	image, closeImage, err := imageFromForm(c, "image")
	if err != nil {
		return common.SendClientError(c, "Invalid image upload")
	}
	if closeImage != nil {
		defer closeImage()
	}

	category, err := h.inventorySvc.CreateCategory(ctx, &services.CreateCategoryInput{
		Name:  name,
		Icon:  icon,
		Image: image,
	})
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	update := &models.CategoryUpdate{}
	if value := c.FormValue("name"); value != "" {
		update.Name = &value
	}
	if value := strings.TrimSpace(c.FormValue("icon")); value != "" {
		update.Icon = &value
	}

	image, closeImage, err := imageFromForm(c, "image")
	if err != nil {
		return common.SendClientError(c, "Invalid image upload")
	}
	if closeImage != nil {
		defer closeImage()
	}

	if err := h.inventorySvc.UpdateCategory(ctx, id, update, image); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.inventorySvc.DeleteCategory(ctx, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
