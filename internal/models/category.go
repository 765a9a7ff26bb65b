package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Icon      *string   `json:"icon" db:"icon"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CategoryUpdate is a partial update. Nil fields keep their stored value.
type CategoryUpdate struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// CategoryRollup pairs a category with counts derived from its items.
// It is computed on read and never persisted.
type CategoryRollup struct {
	Category
	ItemCount     int `json:"item_count" db:"-"`
	LowStockCount int `json:"low_stock_count" db:"-"`
}
