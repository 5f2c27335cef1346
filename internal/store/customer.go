package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
)

// CustomerStore defines the interface for customer account persistence.
type CustomerStore interface {
	// Create saves a new customer to the store.
	// Returns ErrEmailExists if the email is already registered.
	// Returns validation errors if the customer data is invalid.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by its unique ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByEmail retrieves a customer by email address.
	// Returns ErrCustomerNotFound if no customer has that email.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Update saves changes to an existing customer's profile fields.
	// Returns ErrCustomerNotFound if the customer does not exist.
	Update(ctx context.Context, customer *domain.Customer) error

	// Delete removes a customer from the store by ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	//
	// The store relies on ON DELETE CASCADE foreign keys to remove the
	// customer's bookings, and through those any ratings the bookings carry.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CustomerStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CustomerStore
}
