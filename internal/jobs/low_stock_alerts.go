package jobs

import (
	"context"
	"log"
	"time"

	"shopstock/internal/repositories"
	"shopstock/internal/stock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// alertRepeatWindow is how long a logged alert suppresses repeats for
// the same item.
const alertRepeatWindow = 24 * time.Hour

// LowStockAlertService periodically scans the inventory and logs items
// at or below their reorder threshold. Redis remembers which items were
// already reported so an hourly scan does not repeat itself all day.
type LowStockAlertService struct {
	itemRepo repositories.ItemRepository
	redis    *redis.Client
}

type LowStockAlert struct {
	ItemID   uuid.UUID
	Name     string
	Quantity int
	MinStock int
}

func NewLowStockAlertService(itemRepo repositories.ItemRepository, redisClient *redis.Client) *LowStockAlertService {
	return &LowStockAlertService{
		itemRepo: itemRepo,
		redis:    redisClient,
	}
}

// CheckLowStock collects the current alert candidates, lowest stock first.
func (a *LowStockAlertService) CheckLowStock(ctx context.Context) ([]LowStockAlert, error) {
	items, err := a.itemRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Failed to list items for low stock check: %v", err)
		return nil, err
	}

	low := stock.FilterLowStock(items)
	alerts := make([]LowStockAlert, 0, len(low))
	for _, item := range low {
		alerts = append(alerts, LowStockAlert{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			MinStock: item.MinStock,
		})
	}
	return alerts, nil
}

// Run executes one scan, logging alerts that were not already reported
// within the repeat window.
func (a *LowStockAlertService) Run(ctx context.Context) error {
	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		log.Println("No low stock alerts")
		return nil
	}

	for _, alert := range alerts {
		if a.alreadyReported(ctx, alert.ItemID) {
			continue
		}
		log.Printf("LOW STOCK: '%s' has %d units (threshold: %d)", alert.Name, alert.Quantity, alert.MinStock)
	}
	return nil
}

// alreadyReported marks the item as reported and tells whether it had
// been already. Without Redis every scan reports everything.
func (a *LowStockAlertService) alreadyReported(ctx context.Context, itemID uuid.UUID) bool {
	if a.redis == nil {
		return false
	}
	key := "lowstock:alerted:" + itemID.String()
	set, err := a.redis.SetNX(ctx, key, "1", alertRepeatWindow).Result()
	if err != nil {
		log.Printf("Alert dedup check failed for %s: %v", itemID.String(), err)
		return false
	}
	return !set
}
