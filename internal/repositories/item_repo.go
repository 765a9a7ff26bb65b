package repositories

import (
	"context"
	"errors"
	"fmt"

	"shopstock/internal/common"
	"shopstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ItemWithCategory, error)
	Update(ctx context.Context, id uuid.UUID, update *models.ItemUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Item, error)
	ListAll(ctx context.Context) ([]*models.Item, error)
	ListAllWithCategory(ctx context.Context) ([]*models.ItemWithCategory, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepo(db Database) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, category_id, name, quantity, min_stock, price, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.CategoryID, item.Name, item.Quantity,
		item.MinStock, item.Price, item.ImageURL)
	if err != nil {
		return &common.GatewayError{Op: "create item", Err: err}
	}
	return nil
}

// GetByID returns the item joined with its category's display fields.
// The join is LEFT so an orphaned item still resolves; its category
// fields come back empty.
func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ItemWithCategory, error) {
	item := &models.ItemWithCategory{}
	var categoryName *string
	query := `
		SELECT i.id, i.category_id, i.name, i.quantity, i.min_stock, i.price, i.image_url, i.created_at,
		       c.name, c.icon
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.CategoryID, &item.Name,
		&item.Quantity, &item.MinStock, &item.Price, &item.ImageURL, &item.CreatedAt,
		&categoryName, &item.CategoryIcon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
		}
		return nil, &common.GatewayError{Op: "get item", Err: err}
	}
	item.CategoryName = common.SafeString(categoryName)
	return item, nil
}

func (r *itemRepo) Update(ctx context.Context, id uuid.UUID, update *models.ItemUpdate) error {
	query := `
		UPDATE items
		SET name = COALESCE($1, name),
		    quantity = COALESCE($2, quantity),
		    min_stock = COALESCE($3, min_stock),
		    price = COALESCE($4, price),
		    image_url = COALESCE($5, image_url)
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, update.Name, update.Quantity, update.MinStock, update.Price, update.ImageURL, id)
	if err != nil {
		return &common.GatewayError{Op: "update item", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return &common.GatewayError{Op: "delete item", Err: err}
	}
	return nil
}

func (r *itemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Item, error) {
	query := `
		SELECT id, category_id, name, quantity, min_stock, price, image_url, created_at
		FROM items
		WHERE category_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, &common.GatewayError{Op: "list items by category", Err: err}
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *itemRepo) ListAll(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT id, category_id, name, quantity, min_stock, price, image_url, created_at
		FROM items
		ORDER BY quantity ASC, created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, &common.GatewayError{Op: "list items", Err: err}
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListAllWithCategory feeds the low-stock view: every item joined with
// its category's display fields, lowest quantity first.
func (r *itemRepo) ListAllWithCategory(ctx context.Context) ([]*models.ItemWithCategory, error) {
	query := `
		SELECT i.id, i.category_id, i.name, i.quantity, i.min_stock, i.price, i.image_url, i.created_at,
		       c.name, c.icon
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		ORDER BY i.quantity ASC, i.created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, &common.GatewayError{Op: "list items with category", Err: err}
	}
	defer rows.Close()

	var items []*models.ItemWithCategory
	for rows.Next() {
		item := &models.ItemWithCategory{}
		var categoryName *string
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Quantity,
			&item.MinStock, &item.Price, &item.ImageURL, &item.CreatedAt,
			&categoryName, &item.CategoryIcon); err != nil {
			return nil, &common.GatewayError{Op: "scan item", Err: err}
		}
		item.CategoryName = common.SafeString(categoryName)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.GatewayError{Op: "list items with category", Err: err}
	}
	return items, nil
}

// AdjustQuantity applies a delta atomically at the gateway, clamping at
// zero, and returns the resulting quantity. Concurrent adjustments on
// the same item cannot lose updates this way.
func (r *itemRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var quantity int
	query := `
		UPDATE items
		SET quantity = GREATEST(0, quantity + $1)
		WHERE id = $2
		RETURNING quantity
	`
	err := r.db.QueryRow(ctx, query, delta, id).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
		}
		return 0, &common.GatewayError{Op: "adjust quantity", Err: err}
	}
	return quantity, nil
}

func scanItems(rows pgx.Rows) ([]*models.Item, error) {
	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Quantity,
			&item.MinStock, &item.Price, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, &common.GatewayError{Op: "scan item", Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.GatewayError{Op: "iterate items", Err: err}
	}
	return items, nil
}
