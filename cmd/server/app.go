package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sohilaahmed2/AlaEltalab/internal/config"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/postgres"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	customerStore store.CustomerStore
	providerStore store.ProviderStore
	bookingStore  store.BookingStore
	ratingStore   store.RatingStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	bookingService   service.BookingService
	ratingService    service.RatingService
	directoryService service.DirectoryService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	_ context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordHasher = hasher
	app.passwordVerifier = hasher

	// Initialize stores
	app.customerStore = postgres.NewPostgresCustomerStore(db, logger)
	app.providerStore = postgres.NewPostgresProviderStore(db, logger)
	app.bookingStore = postgres.NewPostgresBookingStore(db, logger)
	app.ratingStore = postgres.NewPostgresRatingStore(db, logger)

	// Initialize booking service
	app.bookingService, err = service.NewBookingService(
		app.bookingStore,
		app.providerStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking service: %w", err)
	}

	// Initialize rating service
	app.ratingService, err = service.NewRatingService(
		db,
		app.bookingStore,
		app.ratingStore,
		app.providerStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rating service: %w", err)
	}

	// Initialize directory service
	app.directoryService, err = service.NewDirectoryService(
		app.customerStore,
		app.providerStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
