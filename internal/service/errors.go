// Package service implements the application's business logic on top of the
// store interfaces: the booking lifecycle, rating aggregation, provider
// discovery and account management.
package service

import "errors"

// Service-level sentinel errors. Handlers translate these into HTTP status
// codes; callers match them with errors.Is.
var (
	// ErrNotOwned indicates the acting account does not own the entity it is
	// trying to operate on (e.g. cancelling another customer's booking).
	ErrNotOwned = errors.New("entity not owned by acting account")

	// ErrBookingNotCompleted indicates a rating was attempted for a booking
	// that has not reached the completed state.
	ErrBookingNotCompleted = errors.New("only completed bookings can be rated")

	// ErrInvalidCredentials indicates an authentication attempt with an
	// unknown email or a wrong password. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
