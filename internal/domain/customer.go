package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Customer-specific validation errors
var (
	ErrCustomerIDEmpty    = errors.New("customer ID cannot be empty")
	ErrCustomerNameEmpty  = errors.New("customer name cannot be empty")
	ErrCustomerEmailEmpty = errors.New("customer email cannot be empty")
	ErrCustomerCityEmpty  = errors.New("customer city cannot be empty")
)

// Customer represents a registered customer account. Customers own bookings;
// deleting a customer cascades to their bookings (and through those, to any
// ratings) at the store level.
type Customer struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Phone          string    `json:"phone"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCustomer creates a new Customer with a generated ID and timestamps.
// The caller is responsible for hashing the password before storage; the
// HashedPassword field is expected to already hold the hash.
func NewCustomer(name, email, hashedPassword, phone, city string) (*Customer, error) {
	c := &Customer{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Phone:          phone,
		City:           city,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Customer has valid data.
// Returns an error if any field fails validation.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCustomerIDEmpty
	}

	if c.Name == "" {
		return ErrCustomerNameEmpty
	}

	if c.Email == "" {
		return ErrCustomerEmailEmpty
	}

	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ErrInvalidEmail
	}

	if c.City == "" {
		return ErrCustomerCityEmpty
	}

	return nil
}
