package stock

import (
	"testing"

	"shopstock/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     Status
	}{
		{"zero quantity is out of stock", 0, 5, OutOfStock},
		{"zero quantity wins over zero threshold", 0, 0, OutOfStock},
		{"at threshold is low stock", 3, 3, LowStock},
		{"below threshold is low stock", 1, 5, LowStock},
		{"above threshold is in stock", 6, 5, InStock},
		{"positive quantity with zero threshold is in stock", 1, 0, InStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.quantity, tt.minStock))
		})
	}
}

func TestClassify_ReturnsExactlyOneStatus(t *testing.T) {
	for q := 0; q <= 20; q++ {
		for m := 0; m <= 20; m++ {
			status := Classify(q, m)
			assert.Contains(t, []Status{InStock, LowStock, OutOfStock}, status)
			if q == 0 {
				assert.Equal(t, OutOfStock, status)
			} else if q <= m {
				assert.Equal(t, LowStock, status)
			} else {
				assert.Equal(t, InStock, status)
			}
		}
	}
}

func item(categoryID uuid.UUID, name string, quantity, minStock int) *models.Item {
	return &models.Item{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       name,
		Quantity:   quantity,
		MinStock:   minStock,
	}
}

func TestRollup(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Filters"}
	other := uuid.New()

	items := []*models.Item{
		item(category.ID, "oil filter", 0, 2),  // out of stock, counted as low
		item(category.ID, "air filter", 3, 5),  // low
		item(category.ID, "fuel filter", 10, 2), // fine
		item(other, "wiper", 0, 1),             // different category, skipped
		nil,
	}

	rollup := Rollup(category, items)
	assert.Equal(t, 3, rollup.ItemCount)
	assert.Equal(t, 2, rollup.LowStockCount)
	assert.Equal(t, category.ID, rollup.Category.ID)
}

func TestRollup_LowStockCountIncludesOutOfStock(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Belts"}
	items := []*models.Item{
		item(category.ID, "a", 0, 0),
		item(category.ID, "b", 0, 3),
		item(category.ID, "c", 2, 2),
	}

	rollup := Rollup(category, items)
	outOfStock := Summarize(items).OutOfStock
	assert.GreaterOrEqual(t, rollup.LowStockCount, outOfStock)
	assert.Equal(t, 3, rollup.LowStockCount)
}

func TestAggregateLowStock(t *testing.T) {
	rollups := []*models.CategoryRollup{
		{LowStockCount: 2},
		{LowStockCount: 0},
		nil,
		{LowStockCount: 5},
	}
	assert.Equal(t, 7, AggregateLowStock(rollups))
	assert.Equal(t, 0, AggregateLowStock(nil))
}

func TestFilterLowStock(t *testing.T) {
	categoryID := uuid.New()
	a := item(categoryID, "a", 3, 5)
	b := item(categoryID, "b", 0, 2)
	c := item(categoryID, "c", 10, 2)

	input := []*models.Item{a, b, c}
	low := FilterLowStock(input)

	require.Len(t, low, 2)
	assert.Equal(t, b.ID, low[0].ID) // quantity 0 first
	assert.Equal(t, a.ID, low[1].ID)

	// input order untouched
	assert.Equal(t, []*models.Item{a, b, c}, input)
}

func TestFilterLowStock_StableOnTies(t *testing.T) {
	categoryID := uuid.New()
	first := item(categoryID, "first", 2, 5)
	second := item(categoryID, "second", 2, 5)

	low := FilterLowStock([]*models.Item{first, second})
	require.Len(t, low, 2)
	assert.Equal(t, first.ID, low[0].ID)
	assert.Equal(t, second.ID, low[1].ID)
}

func TestSummarize(t *testing.T) {
	categoryID := uuid.New()
	items := []*models.Item{
		item(categoryID, "a", 0, 2),
		item(categoryID, "b", 1, 2),
		item(categoryID, "c", 9, 2),
		item(categoryID, "d", 2, 2),
	}

	summary := Summarize(items)
	assert.Equal(t, 1, summary.OutOfStock)
	assert.Equal(t, 2, summary.LowStock)
	assert.Equal(t, 1, summary.InStock)
	assert.Equal(t, len(items), summary.InStock+summary.LowStock+summary.OutOfStock)
}
