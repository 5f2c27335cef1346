// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidBookingStatus is returned when a booking status is not one of
	// the known lifecycle states.
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus is returned when a payment status is not valid.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrBookingDateInPast is returned when a booking is scheduled for a date
	// strictly before the current date.
	ErrBookingDateInPast = errors.New("booking date cannot be in the past")

	// ErrInvalidRatingValue is returned when a rating value is outside 1..5.
	ErrInvalidRatingValue = errors.New("rating value must be between 1 and 5")

	// ErrInvalidServiceID is returned when a service category ID is not part
	// of the fixed catalog.
	ErrInvalidServiceID = errors.New("unknown service category")

	// ErrUnauthorized is returned when an operation is not permitted for the
	// acting principal.
	ErrUnauthorized = errors.New("unauthorized operation")
)
