package models

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	MinStock   int       `json:"min_stock" db:"min_stock"`
	Price      float64   `json:"price" db:"price"`
	ImageURL   *string   `json:"image_url" db:"image_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ItemWithCategory joins an item with its category's display fields.
// CategoryName is empty when the category row is gone.
type ItemWithCategory struct {
	Item
	CategoryName string  `json:"category_name" db:"category_name"`
	CategoryIcon *string `json:"category_icon" db:"category_icon"`
}

// ItemUpdate is a partial update. Nil fields keep their stored value.
type ItemUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	MinStock *int     `json:"min_stock,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	ImageURL *string  `json:"image_url,omitempty"`
}
