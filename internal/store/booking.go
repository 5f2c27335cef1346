package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
)

// CustomerBooking is the read model for a customer's booking list: the
// booking plus its rating value when one exists.
type CustomerBooking struct {
	domain.Booking

	// RatingValue is nil while the booking is unrated.
	RatingValue *int `json:"rating_value,omitempty"`
}

// BookingStore defines the interface for booking persistence.
type BookingStore interface {
	// Create saves a new booking to the store.
	// Returns ErrInvalidEntity if the customer or provider reference does
	// not exist (foreign key violation).
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by its unique ID.
	// Returns ErrBookingNotFound if the booking does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// Update persists the booking's current status and payment status.
	// Returns ErrBookingNotFound if the booking does not exist.
	Update(ctx context.Context, booking *domain.Booking) error

	// Delete removes a booking from the store by ID. This is the customer
	// cancellation path; the booking's rating, if any, is removed by the
	// ON DELETE CASCADE foreign key.
	// Returns ErrBookingNotFound if the booking does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCustomer returns the customer's bookings newest first, each with
	// its rating value when rated. Returns an empty slice when none exist.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*CustomerBooking, error)

	// ListByProvider returns the provider's bookings newest first, excluding
	// Cancelled and Rejected ones. Returns an empty slice when none exist.
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error)

	// WithTx returns a new BookingStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) BookingStore
}
