package handlers

import (
	"context"
	"net/http"
	"time"

	"shopstock/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandlers reports connectivity to the backing services.
type HealthHandlers struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	imageSvc services.ImageService
	version  string
}

func NewHealthHandlers(db *pgxpool.Pool, redisClient *redis.Client, imageSvc services.ImageService, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		redis:    redisClient,
		imageSvc: imageSvc,
		version:  version,
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			health.Services["redis"] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services["redis"] = "healthy"
		}
	}

	if h.imageSvc != nil {
		if err := h.imageSvc.Healthy(ctx); err != nil {
			health.Services["object_storage"] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services["object_storage"] = "healthy"
		}
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
