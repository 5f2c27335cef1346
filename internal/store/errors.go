package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is a generic version of the entity-specific not found
	// errors (e.g., ErrBookingNotFound, ErrProviderNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., an account with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrRestricted is returned when a delete is blocked by rows that still
	// reference the entity (e.g., a provider that still has ratings).
	ErrRestricted = errors.New("delete restricted by referencing entities")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrCustomerNotFound indicates that the requested customer does not exist.
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)

	// ErrProviderNotFound indicates that the requested provider does not exist.
	ErrProviderNotFound = fmt.Errorf("%w: provider", ErrNotFound)

	// ErrBookingNotFound indicates that the requested booking does not exist.
	ErrBookingNotFound = fmt.Errorf("%w: booking", ErrNotFound)

	// ErrRatingNotFound indicates that the requested rating does not exist.
	ErrRatingNotFound = fmt.Errorf("%w: rating", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that an account with the given email already
	// exists. Customer and provider emails live in separate tables but are
	// each unique within their role.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrProviderHasRatings indicates a provider delete was blocked because
	// ratings still reference the provider. Ratings must be handled before
	// the provider can be removed.
	ErrProviderHasRatings = fmt.Errorf("%w: provider has ratings", ErrRestricted)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "booking", "rating")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
