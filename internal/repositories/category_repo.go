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

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Category, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, icon, image_url, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.Icon, category.ImageURL)
	if err != nil {
		return &common.GatewayError{Op: "create category", Err: err}
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, name, icon, image_url, created_at
		FROM categories
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Icon,
		&category.ImageURL, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
		}
		return nil, &common.GatewayError{Op: "get category", Err: err}
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate) error {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    icon = COALESCE($2, icon),
		    image_url = COALESCE($3, image_url)
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, update.Name, update.Icon, update.ImageURL, id)
	if err != nil {
		return &common.GatewayError{Op: "update category", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// Delete removes the category; its items go with it via the gateway's
// ON DELETE CASCADE policy.
func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return &common.GatewayError{Op: "delete category", Err: err}
	}
	return nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, icon, image_url, created_at
		FROM categories
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, &common.GatewayError{Op: "list categories", Err: err}
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon,
			&category.ImageURL, &category.CreatedAt); err != nil {
			return nil, &common.GatewayError{Op: "scan category", Err: err}
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.GatewayError{Op: "list categories", Err: err}
	}
	return categories, nil
}
