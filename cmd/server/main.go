// Package main implements the entry point for the AlaEltalab API server,
// the marketplace connecting customers with local service providers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/sohilaahmed2/AlaEltalab/internal/config"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	if err := run(*migrateOnly); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, wires the application together and starts the
// HTTP server. Split from main so it can return errors.
func run(migrateOnly bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if migrateOnly {
		appLogger.Info("Migrations applied, exiting")
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
		return nil
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
