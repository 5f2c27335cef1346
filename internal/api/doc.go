// Package api implements the HTTP surface of the marketplace: request
// decoding and validation, handlers for auth, bookings, ratings, the
// provider directory and account management, and the central mapping from
// internal errors to HTTP status codes.
package api
