package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
)

// RatingStore defines the interface for rating persistence and aggregation.
type RatingStore interface {
	// Upsert inserts the rating, or overwrites the stored value in place if
	// the booking already has one. The rating's ProviderID is written only
	// on insert; an existing row keeps the provider it was created with.
	// Returns validation errors if the rating data is invalid.
	//
	// IMPORTANT: callers must pair Upsert with AverageForProvider and
	// ProviderStore.UpdateAverageRating inside one transaction so the stored
	// average never reflects a partial rating set.
	Upsert(ctx context.Context, rating *domain.Rating) error

	// GetByBookingID retrieves the rating for a booking.
	// Returns ErrRatingNotFound if the booking is unrated.
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Rating, error)

	// AverageForProvider computes the arithmetic mean of the provider's
	// rating values, or 0 when the provider has no ratings. This is always a
	// full recomputation over the current rating set, never an incremental
	// update.
	AverageForProvider(ctx context.Context, providerID uuid.UUID) (float64, error)

	// CountForProvider returns the number of ratings referencing a provider.
	CountForProvider(ctx context.Context, providerID uuid.UUID) (int, error)

	// WithTx returns a new RatingStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) RatingStore
}
