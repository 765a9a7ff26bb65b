package handlers

import (
	"net/http"

	"shopstock/internal/common"
	"shopstock/internal/services"

	"github.com/labstack/echo/v4"
)

// StockHandlers serves the low-stock alert views.
type StockHandlers struct {
	inventorySvc services.InventoryService
}

func NewStockHandlers(inventorySvc services.InventoryService) *StockHandlers {
	return &StockHandlers{inventorySvc: inventorySvc}
}

// ListLowStock returns every item at or below its reorder threshold,
// joined with category display fields, lowest quantity first.
func (h *StockHandlers) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.inventorySvc.LowStockItems(ctx)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// LowStockSummary returns the aggregate count for the alert banner.
func (h *StockHandlers) LowStockSummary(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.inventorySvc.LowStockTotal(ctx)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"low_stock_total": total,
	})
}
