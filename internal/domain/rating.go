package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rating-specific validation errors
var (
	ErrRatingIDEmpty         = errors.New("rating ID cannot be empty")
	ErrRatingBookingIDEmpty  = errors.New("rating booking ID cannot be empty")
	ErrRatingProviderIDEmpty = errors.New("rating provider ID cannot be empty")
)

// MinRatingValue and MaxRatingValue bound the accepted rating scale.
const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// ValidRatingValue reports whether v is on the 1..5 scale.
func ValidRatingValue(v int) bool {
	return v >= MinRatingValue && v <= MaxRatingValue
}

// Rating is a customer's 1..5 score for a completed booking. Each booking has
// at most one rating (enforced by a unique constraint); submitting again
// overwrites the value in place.
//
// ProviderID is denormalized from the owning booking so the aggregation query
// never has to join through bookings. It is set once at creation and never
// updated afterward.
type Rating struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewRating creates a Rating for the given booking and its provider.
// Returns ErrInvalidRatingValue if the value is outside 1..5.
func NewRating(bookingID, providerID uuid.UUID, value int) (*Rating, error) {
	r := &Rating{
		ID:         uuid.New(),
		BookingID:  bookingID,
		ProviderID: providerID,
		Value:      value,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the Rating has valid data.
// Returns an error if any field fails validation.
func (r *Rating) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRatingIDEmpty
	}

	if r.BookingID == uuid.Nil {
		return ErrRatingBookingIDEmpty
	}

	if r.ProviderID == uuid.Nil {
		return ErrRatingProviderIDEmpty
	}

	if !ValidRatingValue(r.Value) {
		return ErrInvalidRatingValue
	}

	return nil
}
