package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
)

// ProviderStore defines the interface for service-provider persistence.
type ProviderStore interface {
	// Create saves a new provider to the store.
	// Returns ErrEmailExists if the email is already registered.
	// Returns validation errors if the provider data is invalid.
	Create(ctx context.Context, provider *domain.Provider) error

	// GetByID retrieves a provider by its unique ID.
	// Returns ErrProviderNotFound if the provider does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)

	// GetByEmail retrieves a provider by email address.
	// Returns ErrProviderNotFound if no provider has that email.
	GetByEmail(ctx context.Context, email string) (*domain.Provider, error)

	// GetByIDForUpdate retrieves the provider and acquires its row lock for
	// the remainder of the transaction (SELECT ... FOR UPDATE). Concurrent
	// rating upserts for the same provider serialize on this lock, so each
	// average recomputation reads a consistent rating set.
	// Returns ErrProviderNotFound if the provider does not exist.
	// Must be called through WithTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Provider, error)

	// Update saves changes to an existing provider's profile fields.
	// Returns ErrProviderNotFound if the provider does not exist.
	Update(ctx context.Context, provider *domain.Provider) error

	// UpdateAverageRating persists a freshly recomputed average rating.
	// Returns ErrProviderNotFound if the provider does not exist.
	//
	// IMPORTANT: this must run in the same transaction as the rating write
	// that triggered the recomputation; use WithTx.
	UpdateAverageRating(ctx context.Context, id uuid.UUID, average float64) error

	// FindByServiceAndCity lists providers offering the given service
	// category in the given city. Returns an empty slice when none match.
	FindByServiceAndCity(
		ctx context.Context,
		serviceID int,
		city string,
	) ([]*domain.Provider, error)

	// Delete removes a provider from the store by ID.
	// Returns ErrProviderNotFound if the provider does not exist.
	// Returns ErrProviderHasRatings if ratings still reference the provider:
	// the ratings foreign key is RESTRICT, so the provider's rating history
	// must be handled before the account can be removed. Bookings without
	// ratings are removed by cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProviderStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProviderStore
}
