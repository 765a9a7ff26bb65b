package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"shopstock/internal/common"
	"shopstock/internal/models"
	"shopstock/internal/services"
	"shopstock/internal/stock"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ItemHandlers handles item-related HTTP requests.
type ItemHandlers struct {
	inventorySvc services.InventoryService
}

func NewItemHandlers(inventorySvc services.InventoryService) *ItemHandlers {
	return &ItemHandlers{inventorySvc: inventorySvc}
}

// CreateItem accepts the add-item multipart form. Name, quantity and
// min_stock are required; parse failures stop the request before any
// gateway call.
func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := common.ValidateUUID(c.FormValue("category_id"), "category_id")
	if err != nil {
		return common.RespondError(c, err)
	}
	name := c.FormValue("name")
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return common.RespondError(c, err)
	}
	quantity, err := common.ParseNonNegativeInt(c.FormValue("quantity"), "quantity")
	if err != nil {
		return common.RespondError(c, err)
	}
	minStock, err := common.ParseNonNegativeInt(c.FormValue("min_stock"), "min_stock")
	if err != nil {
		return common.RespondError(c, err)
	}

	image, closeImage, err := imageFromForm(c, "image")
	if err != nil {
		return common.SendClientError(c, "Invalid image upload")
	}
	if closeImage != nil {
		defer closeImage()
	}

	item, err := h.inventorySvc.CreateItem(ctx, &services.CreateItemInput{
		CategoryID: categoryID,
		Name:       name,
		Quantity:   quantity,
		MinStock:   minStock,
		Image:      image,
	})
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, item)
}

// GetItem returns the item joined with its category's display fields,
// plus its derived status.
func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	item, err := h.inventorySvc.GetItem(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"item":   item,
		"status": stock.Classify(item.Quantity, item.MinStock),
	})
}

// UpdateItem is the edit-form submit. Plain fields update in place;
// add_stock/remove_stock stage a quantity change against a working copy
// that only this submit persists.
func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	update := &models.ItemUpdate{}
	if value := c.FormValue("name"); value != "" {
		update.Name = &value
	}
	if value := strings.TrimSpace(c.FormValue("quantity")); value != "" {
		quantity, err := common.ParseNonNegativeInt(value, "quantity")
		if err != nil {
			return common.RespondError(c, err)
		}
		update.Quantity = &quantity
	}
	if value := strings.TrimSpace(c.FormValue("min_stock")); value != "" {
		minStock, err := common.ParseNonNegativeInt(value, "min_stock")
		if err != nil {
			return common.RespondError(c, err)
		}
		update.MinStock = &minStock
	}
	if value := strings.TrimSpace(c.FormValue("price")); value != "" {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			return common.RespondError(c, common.NewValidationError("price", "must be a non-negative number"))
		}
		update.Price = &price
	}

	if err := h.applyStagedAdjustment(c, id, update); err != nil {
		return common.RespondError(c, err)
	}

	image, closeImage, err := imageFromForm(c, "image")
	if err != nil {
		return common.SendClientError(c, "Invalid image upload")
	}
	if closeImage != nil {
		defer closeImage()
	}

	if err := h.inventorySvc.UpdateItem(ctx, id, update, image); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// applyStagedAdjustment folds optional add_stock/remove_stock form
// values into the update's quantity. The working copy starts from the
// submitted quantity when present, otherwise from the persisted one.
func (h *ItemHandlers) applyStagedAdjustment(c echo.Context, id uuid.UUID, update *models.ItemUpdate) error {
	addValue := strings.TrimSpace(c.FormValue("add_stock"))
	removeValue := strings.TrimSpace(c.FormValue("remove_stock"))
	if addValue == "" && removeValue == "" {
		return nil
	}

	var base int
	if update.Quantity != nil {
		base = *update.Quantity
	} else {
		item, err := h.inventorySvc.GetItem(c.Request().Context(), id)
		if err != nil {
			return err
		}
		base = item.Quantity
	}

	staged := stock.NewStagedQuantity(base)
	if addValue != "" {
		amount, err := common.ParseNonNegativeInt(addValue, "add_stock")
		if err != nil {
			return err
		}
		staged.Add(amount)
	}
	if removeValue != "" {
		amount, err := common.ParseNonNegativeInt(removeValue, "remove_stock")
		if err != nil {
			return err
		}
		staged.Remove(amount)
	}

	working := staged.Working()
	update.Quantity = &working
	return nil
}

func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.inventorySvc.DeleteItem(ctx, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdjustQuantityRequest carries the +/- button delta from list views.
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// AdjustQuantity applies a direct delta to an item's quantity. The write
// is atomic at the gateway and the stored value clamps at zero; the
// response carries the authoritative new quantity.
func (h *ItemHandlers) AdjustQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	var req AdjustQuantityRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	quantity, err := h.inventorySvc.AdjustQuantity(ctx, id, req.Delta)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"quantity": quantity,
	})
}
