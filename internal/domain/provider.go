package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Provider-specific validation errors
var (
	ErrProviderIDEmpty          = errors.New("provider ID cannot be empty")
	ErrProviderNameEmpty        = errors.New("provider name cannot be empty")
	ErrProviderEmailEmpty       = errors.New("provider email cannot be empty")
	ErrProviderCityEmpty        = errors.New("provider city cannot be empty")
	ErrProviderPriceNotPositive = errors.New("provider price must be positive")
)

// Provider represents a service provider account. A provider offers exactly
// one service category at a listed price and accumulates ratings through
// completed bookings.
//
// AverageRating is a derived, persisted cache: it always equals the
// arithmetic mean of the provider's rating values (1..5), or 0 when the
// provider has no ratings. It is recomputed in full, never incrementally,
// whenever the provider's rating set changes.
type Provider struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Phone          string    `json:"phone"`
	City           string    `json:"city"`
	ServiceID      int       `json:"service_id"`
	Price          float64   `json:"price"`
	AverageRating  float64   `json:"average_rating"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProvider creates a new Provider with a generated ID, zero average
// rating, and timestamps. The caller is responsible for hashing the password
// before storage.
func NewProvider(
	name, email, hashedPassword, phone, city string,
	serviceID int,
	price float64,
) (*Provider, error) {
	p := &Provider{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Phone:          phone,
		City:           city,
		ServiceID:      serviceID,
		Price:          price,
		AverageRating:  0,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Provider has valid data.
// Returns an error if any field fails validation.
func (p *Provider) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProviderIDEmpty
	}

	if p.Name == "" {
		return ErrProviderNameEmpty
	}

	if p.Email == "" {
		return ErrProviderEmailEmpty
	}

	if _, err := mail.ParseAddress(p.Email); err != nil {
		return ErrInvalidEmail
	}

	if p.City == "" {
		return ErrProviderCityEmpty
	}

	if !ValidServiceID(p.ServiceID) {
		return ErrInvalidServiceID
	}

	// The providers table enforces CHECK (price > 0); reject the same range
	// here so a bad price never reaches the database.
	if p.Price <= 0 {
		return ErrProviderPriceNotPositive
	}

	return nil
}
