// Package stock holds the pure stock-classification rules. Nothing here
// touches the database or mutates its inputs.
package stock

import (
	"sort"

	"shopstock/internal/models"
)

// Status is the derived three-way classification of an item's stock level.
type Status string

const (
	InStock    Status = "in_stock"
	LowStock   Status = "low_stock"
	OutOfStock Status = "out_of_stock"
)

// Classify derives an item's status from its quantity and reorder
// threshold. A zero quantity is always OutOfStock, even when min_stock
// is also zero.
func Classify(quantity, minStock int) Status {
	switch {
	case quantity == 0:
		return OutOfStock
	case quantity <= minStock:
		return LowStock
	default:
		return InStock
	}
}

// ClassifyItem is Classify over an item record.
func ClassifyItem(item *models.Item) Status {
	return Classify(item.Quantity, item.MinStock)
}

// NeedsReorder is the two-way predicate behind rollups and alert views.
// Unlike Classify it counts out-of-stock items as well.
func NeedsReorder(quantity, minStock int) bool {
	return quantity <= minStock
}

// Rollup computes the per-category counts shown on the dashboard. Items
// belonging to other categories (including orphans whose category was
// deleted out of band) are skipped, never a failure.
func Rollup(category *models.Category, items []*models.Item) *models.CategoryRollup {
	rollup := &models.CategoryRollup{Category: *category}
	for _, item := range items {
		if item == nil || item.CategoryID != category.ID {
			continue
		}
		rollup.ItemCount++
		if NeedsReorder(item.Quantity, item.MinStock) {
			rollup.LowStockCount++
		}
	}
	return rollup
}

// AggregateLowStock sums low-stock counts across rollups for the
// top-level alert banner.
func AggregateLowStock(rollups []*models.CategoryRollup) int {
	total := 0
	for _, rollup := range rollups {
		if rollup == nil {
			continue
		}
		total += rollup.LowStockCount
	}
	return total
}

// FilterLowStock returns the items needing reorder, ordered by quantity
// ascending. The sort is stable so equal quantities keep their fetch
// order. The input slice is left untouched.
func FilterLowStock(items []*models.Item) []*models.Item {
	var low []*models.Item
	for _, item := range items {
		if item != nil && NeedsReorder(item.Quantity, item.MinStock) {
			low = append(low, item)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

// Summary partitions a category's items by status for the header counts
// on the category page.
type Summary struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// Summarize counts items per status. The three counts always sum to the
// number of items.
func Summarize(items []*models.Item) Summary {
	var summary Summary
	for _, item := range items {
		if item == nil {
			continue
		}
		switch ClassifyItem(item) {
		case OutOfStock:
			summary.OutOfStock++
		case LowStock:
			summary.LowStock++
		default:
			summary.InStock++
		}
	}
	return summary
}
