package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"shopstock/internal/config"
	"shopstock/internal/handlers"
	"shopstock/internal/jobs"
	"shopstock/internal/jobs/background"
	"shopstock/internal/middleware"
	"shopstock/internal/repositories"
	"shopstock/internal/services"
	"shopstock/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis backs alert deduplication; the app works without it.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARNING: Redis unavailable, alert dedup disabled: %v", err)
		redisClient = nil
	}

	imageSvc, err := services.NewImageService(cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket)
	if err != nil {
		log.Fatalf("Failed to initialize image service: %v", err)
	}
	if err := imageSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARNING: could not ensure image bucket exists: %v", err)
	}

	// Repositories and services
	categoryRepo := repositories.NewCategoryRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	inventorySvc := services.NewInventoryService(categoryRepo, itemRepo, imageSvc)

	// Background low-stock scan
	alertSvc := jobs.NewLowStockAlertService(itemRepo, redisClient)
	scheduler, err := background.NewJobScheduler(alertSvc, cfg.AlertInterval)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers
	categoryHandlers := handlers.NewCategoryHandlers(inventorySvc)
	itemHandlers := handlers.NewItemHandlers(inventorySvc)
	stockHandlers := handlers.NewStockHandlers(inventorySvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient, imageSvc, version)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", healthHandlers.HealthCheck)

	api := e.Group("/api/v1")
	if cfg.AuthJWKSURL != "" {
		authMiddleware, err := middleware.RequireAuth(cfg.AuthJWKSURL)
		if err != nil {
			log.Fatalf("Failed to initialize auth middleware: %v", err)
		}
		api.Use(authMiddleware)
	} else {
		log.Println("WARNING: AUTH_JWKS_URL not set, API running without authentication")
	}

	api.GET("/categories", categoryHandlers.ListCategories)
	api.POST("/categories", categoryHandlers.CreateCategory)
	api.GET("/categories/:id", categoryHandlers.GetCategory)
	api.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	api.POST("/items", itemHandlers.CreateItem)
	api.GET("/items/:id", itemHandlers.GetItem)
	api.PUT("/items/:id", itemHandlers.UpdateItem)
	api.DELETE("/items/:id", itemHandlers.DeleteItem)
	api.POST("/items/:id/adjust", itemHandlers.AdjustQuantity)

	api.GET("/stock/low", stockHandlers.ListLowStock)
	api.GET("/stock/low/summary", stockHandlers.LowStockSummary)

	log.Fatal(e.Start(cfg.HTTPAddr))
}
