package api

import (
	"errors"
	"net/http"

	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors. Every entity not-found sentinel wraps
	// store.ErrNotFound, so one check covers them all.
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrProviderHasRatings):
		return http.StatusConflict

	// Business rule violations on otherwise well-formed requests
	case errors.Is(err, service.ErrBookingNotCompleted):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrBookingDateInPast),
		errors.Is(err, domain.ErrInvalidRatingValue),
		errors.Is(err, domain.ErrInvalidServiceID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this booking"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Operation not permitted"

	// Not found errors
	case errors.Is(err, store.ErrCustomerNotFound):
		return "Customer not found"

	case errors.Is(err, store.ErrProviderNotFound):
		return "Provider not found"

	case errors.Is(err, store.ErrBookingNotFound):
		return "Booking not found"

	case errors.Is(err, store.ErrRatingNotFound):
		return "Rating not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrProviderHasRatings):
		return "Provider still has ratings and cannot be removed"

	// Business rule violations
	case errors.Is(err, service.ErrBookingNotCompleted):
		return "Only completed bookings can be rated"

	// Bad request errors
	case errors.Is(err, domain.ErrBookingDateInPast):
		return "Booking date cannot be in the past"

	case errors.Is(err, domain.ErrInvalidRatingValue):
		return "Rating value must be between 1 and 5"

	case errors.Is(err, domain.ErrInvalidServiceID):
		return "Unknown service category"

	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
