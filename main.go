package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tokoadmin/internal/config"
	"tokoadmin/internal/metrics"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/server"
	"tokoadmin/pkg/rabbitmq"

	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, cleanup, err := setup(cfg, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// setup opens the database, connects the optional event broker and builds
// the app. cleanup releases the broker and database connections.
func setup(cfg config.Config, gormCfg *gorm.Config) (*server.App, func(), error) {
	db, err := server.OpenDatabase(cfg, gormCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.AutoMigrate(db); err != nil {
		closeDatabase(db)
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	deps := server.Deps{DB: db, Config: cfg}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}

	// Events are optional. The API keeps working without a broker.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, restock events disabled: %v", err)
		} else {
			deps.Publisher = mqClient
		}
	}

	app := server.New(deps)

	cleanup := func() {
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		}
		closeDatabase(db)
	}

	if cfg.AdminPassword != "" {
		if err := app.Auth.EnsureOwner(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create bootstrap owner: %w", err)
		}
	}

	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for restock events...")
		if err := mqClient.ConsumeRestockEvents(logRestockEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	return app, cleanup, nil
}

func closeDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// logRestockEvent is the audit consumer of restock events.
func logRestockEvent(event models.RestockEvent) error {
	log.Printf("Restock event %s: request %s at outlet %s is %s (%d items, by %s)",
		event.Type, event.RequestID, event.OutletID, event.Status, len(event.Items), event.Actor)
	return nil
}
