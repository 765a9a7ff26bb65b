package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"shopstock/internal/common"
	"shopstock/internal/models"
	"shopstock/internal/repositories"
	"shopstock/internal/stock"

	"github.com/google/uuid"
)

// ImageUpload carries a pending file from a multipart form.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
	Size     int64
}

// CreateItemInput is the validated payload for item creation. Quantity
// and MinStock arrive already parsed as non-negative integers; form
// parsing failures never reach this layer.
type CreateItemInput struct {
	CategoryID uuid.UUID
	Name       string
	Quantity   int
	MinStock   int
	Image      *ImageUpload
}

// CreateCategoryInput is the validated payload for category creation.
type CreateCategoryInput struct {
	Name  string
	Icon  *string
	Image *ImageUpload
}

type InventoryService interface {
	CategoryRollups(ctx context.Context) ([]*models.CategoryRollup, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate, image *ImageUpload) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.ItemWithCategory, error)
	CreateItem(ctx context.Context, input *CreateItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, update *models.ItemUpdate, image *ImageUpload) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error)
	LowStockItems(ctx context.Context) ([]*models.ItemWithCategory, error)
	LowStockTotal(ctx context.Context) (int, error)
}

type inventoryService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
	imageService ImageService
}

func NewInventoryService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository, imageService ImageService) InventoryService {
	return &inventoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		imageService: imageService,
	}
}

// CategoryRollups fetches categories and items fresh from the gateway
// and derives per-category counts. Orphaned items match no category and
// simply drop out of the rollups.
func (s *inventoryService) CategoryRollups(ctx context.Context) ([]*models.CategoryRollup, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rollups := make([]*models.CategoryRollup, 0, len(categories))
	for _, category := range categories {
		rollups = append(rollups, stock.Rollup(category, items))
	}
	return rollups, nil
}

func (s *inventoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *inventoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*models.Category, error) {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:   uuid.New(),
		Name: strings.TrimSpace(input.Name),
		Icon: input.Icon,
	}

	if input.Image != nil {
		url, err := s.imageService.Upload(ctx, "category-"+input.Image.Filename, input.Image.Reader, input.Image.Size)
		if err != nil {
			return nil, err
		}
		category.ImageURL = &url
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *inventoryService) UpdateCategory(ctx context.Context, id uuid.UUID, update *models.CategoryUpdate, image *ImageUpload) error {
	if update.Name != nil {
		if err := common.ValidateRequiredString(*update.Name, "name"); err != nil {
			return err
		}
	}

	// Upload before touching the record; an upload failure aborts the write.
	if image != nil {
		url, err := s.imageService.Upload(ctx, "category-"+image.Filename, image.Reader, image.Size)
		if err != nil {
			return err
		}
		update.ImageURL = &url
	}

	return s.categoryRepo.Update(ctx, id, update)
}

func (s *inventoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *inventoryService) ItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Item, error) {
	return s.itemRepo.ListByCategory(ctx, categoryID)
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (*models.ItemWithCategory, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *inventoryService) CreateItem(ctx context.Context, input *CreateItemInput) (*models.Item, error) {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, common.NewValidationError("quantity", "cannot be negative")
	}
	if input.MinStock < 0 {
		return nil, common.NewValidationError("min_stock", "cannot be negative")
	}

	// The item must land in an existing category.
	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("category check: %w", err)
	}

	item := &models.Item{
		ID:         uuid.New(),
		CategoryID: input.CategoryID,
		Name:       strings.TrimSpace(input.Name),
		Quantity:   input.Quantity,
		MinStock:   input.MinStock,
		Price:      0,
	}

	if input.Image != nil {
		url, err := s.imageService.Upload(ctx, input.Image.Filename, input.Image.Reader, input.Image.Size)
		if err != nil {
			return nil, err
		}
		item.ImageURL = &url
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem is a last-write-wins partial update. When an image is
// attached it is uploaded first; a failed upload aborts the record write.
func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, update *models.ItemUpdate, image *ImageUpload) error {
	if update.Name != nil {
		if err := common.ValidateRequiredString(*update.Name, "name"); err != nil {
			return err
		}
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		return common.NewValidationError("quantity", "cannot be negative")
	}
	if update.MinStock != nil && *update.MinStock < 0 {
		return common.NewValidationError("min_stock", "cannot be negative")
	}
	if update.Price != nil && *update.Price < 0 {
		return common.NewValidationError("price", "cannot be negative")
	}

	if image != nil {
		url, err := s.imageService.Upload(ctx, image.Filename, image.Reader, image.Size)
		if err != nil {
			return err
		}
		update.ImageURL = &url
	}

	return s.itemRepo.Update(ctx, id, update)
}

func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}

// AdjustQuantity applies the delta atomically at the gateway and returns
// the clamped result. Any integer delta is accepted; the stored quantity
// never goes below zero.
func (s *inventoryService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	return s.itemRepo.AdjustQuantity(ctx, id, delta)
}

// LowStockItems returns every item at or below its reorder threshold,
// joined with category display fields, lowest quantity first. The
// quantity ordering comes from the gateway; filtering happens here.
func (s *inventoryService) LowStockItems(ctx context.Context) ([]*models.ItemWithCategory, error) {
	items, err := s.itemRepo.ListAllWithCategory(ctx)
	if err != nil {
		return nil, err
	}

	var low []*models.ItemWithCategory
	for _, item := range items {
		if stock.NeedsReorder(item.Quantity, item.MinStock) {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *inventoryService) LowStockTotal(ctx context.Context) (int, error) {
	rollups, err := s.CategoryRollups(ctx)
	if err != nil {
		return 0, err
	}
	return stock.AggregateLowStock(rollups), nil
}
