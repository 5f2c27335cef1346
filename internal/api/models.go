package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// Common request/response structures

// RegisterCustomerRequest defines the payload for customer registration.
type RegisterCustomerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone"    validate:"required,max=20"`
	City     string `json:"city"     validate:"required,max=100"`
}

// RegisterProviderRequest defines the payload for provider registration.
type RegisterProviderRequest struct {
	Name      string  `json:"name"       validate:"required,max=100"`
	Email     string  `json:"email"      validate:"required,email"`
	Password  string  `json:"password"   validate:"required,min=8,max=72"`
	Phone     string  `json:"phone"      validate:"required,max=20"`
	City      string  `json:"city"       validate:"required,max=100"`
	ServiceID int     `json:"service_id" validate:"required"`
	Price     float64 `json:"price"      validate:"required,gt=0"`
}

// LoginRequest defines the payload for the login endpoint. The same endpoint
// serves customers and providers; the role is resolved from the account.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Role      auth.Role `json:"role"`
	Token     string    `json:"token"`
}

// CreateBookingRequest defines the payload for placing a booking.
type CreateBookingRequest struct {
	ProviderID  uuid.UUID `json:"provider_id"  validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// RateBookingRequest defines the payload for rating a completed booking.
type RateBookingRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// UpdateCustomerRequest defines the payload for updating a customer profile.
type UpdateCustomerRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=20"`
	City  string `json:"city"  validate:"required,max=100"`
}

// UpdateProviderRequest defines the payload for updating a provider profile.
// The service category is fixed at registration and cannot be changed.
type UpdateProviderRequest struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Email string  `json:"email" validate:"required,email"`
	Phone string  `json:"phone" validate:"required,max=20"`
	City  string  `json:"city"  validate:"required,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// BookingResponse is the wire representation of a booking.
type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	ProviderID    uuid.UUID `json:"provider_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	RatingValue   *int      `json:"rating_value,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewBookingResponse converts a domain booking to its wire representation.
func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		ProviderID:    b.ProviderID,
		ScheduledAt:   b.ScheduledAt,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// NewCustomerBookingResponse converts a customer booking read model,
// including the rating the customer gave it, if any.
func NewCustomerBookingResponse(cb *store.CustomerBooking) BookingResponse {
	resp := NewBookingResponse(&cb.Booking)
	resp.RatingValue = cb.RatingValue
	return resp
}

// RatingResponse is the wire representation of a rating.
type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Value      int       `json:"value"`
}

// ProviderResponse is the public wire representation of a provider, as shown
// to customers browsing the directory.
type ProviderResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	ServiceID     int       `json:"service_id"`
	Price         float64   `json:"price"`
	AverageRating float64   `json:"average_rating"`
}

// NewProviderResponse converts a domain provider to its public representation.
func NewProviderResponse(p *domain.Provider) ProviderResponse {
	return ProviderResponse{
		ID:            p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		City:          p.City,
		ServiceID:     p.ServiceID,
		Price:         p.Price,
		AverageRating: p.AverageRating,
	}
}

// ServiceResponse is the wire representation of a service category.
type ServiceResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProfileResponse is the wire representation of the authenticated account's
// own profile. Provider-only fields are omitted for customers.
type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	Role          auth.Role `json:"role"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	ServiceID     *int      `json:"service_id,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	RatingsCount  *int      `json:"ratings_count,omitempty"`
}
