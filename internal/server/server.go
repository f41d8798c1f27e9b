// Package server assembles the reference REST API.
package server

import (
	"fmt"
	"time"

	"tokoadmin/internal/config"
	"tokoadmin/internal/handlers"
	"tokoadmin/internal/metrics"
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Deps are the collaborators New wires into the app. Publisher and Metrics may be nil.
type Deps struct {
	DB        *gorm.DB
	Config    config.Config
	Publisher services.EventPublisher
	Metrics   *metrics.Recorder
	// Quiet disables request logging and the startup banner.
	Quiet bool
}

// App is the assembled API with the services main needs at startup.
type App struct {
	Fiber *fiber.App
	Auth  *services.AuthService
}

// OpenDatabase connects gorm using the configured driver.
func OpenDatabase(cfg config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// New builds the fiber app with every route registered.
func New(deps Deps) *App {
	cfg := deps.Config

	productRepo := repositories.NewGORMProductRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	warehouseRepo := repositories.NewGORMWarehouseRepository(deps.DB)
	restockRepo := repositories.NewGORMRestockRepository(deps.DB)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	productService := services.NewProductService(productRepo)
	warehouseService := services.NewWarehouseService(warehouseRepo)
	restockService := services.NewRestockService(restockRepo, productRepo, warehouseRepo, deps.Publisher, deps.Metrics)

	app := fiber.New(fiber.Config{DisableStartupMessage: deps.Quiet})
	if !deps.Quiet {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": deps.Publisher != nil,
		})
	})
	if cfg.MetricsEnabled && deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewRestockHandler(restockService, cfg.PerPage).RegisterRoutes(protected)
	handlers.NewProductHandler(productService, cfg.PerPage).RegisterRoutes(protected)
	handlers.NewWarehouseHandler(warehouseService).RegisterRoutes(protected)
	handlers.NewUserHandler(authService, cfg.PerPage).RegisterRoutes(protected)

	return &App{Fiber: app, Auth: authService}
}
