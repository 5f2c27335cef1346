package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Booking-specific validation errors
var (
	ErrBookingIDEmpty         = errors.New("booking ID cannot be empty")
	ErrBookingCustomerIDEmpty = errors.New("booking customer ID cannot be empty")
	ErrBookingProviderIDEmpty = errors.New("booking provider ID cannot be empty")
	ErrBookingDateZero        = errors.New("booking date cannot be zero")
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

// Booking lifecycle states.
const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingRejected   BookingStatus = "rejected"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known lifecycle state.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected,
		BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks payment independently of the lifecycle state.
type PaymentStatus string

// Payment states.
const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentNotPaid PaymentStatus = "not_paid"
)

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPaid || s == PaymentNotPaid
}

// Booking is the central transactional entity: a customer's appointment with
// a provider at a scheduled time. Status moves through the lifecycle state
// machine; PaymentStatus is tracked independently.
//
// Provider-side transitions are applied without checking that the current
// status is a legal predecessor. The original system behaves this way and the
// permissiveness is preserved deliberately; the service layer logs
// out-of-order transitions instead of rejecting them.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	ProviderID    uuid.UUID     `json:"provider_id"`
	ScheduledAt   time.Time     `json:"scheduled_at"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewBooking creates a Pending, Not_Paid booking for the given customer,
// provider and schedule. Returns ErrBookingDateInPast if the scheduled date
// (day precision) is strictly before today; booking for later today is
// allowed.
func NewBooking(customerID, providerID uuid.UUID, scheduledAt time.Time) (*Booking, error) {
	b := &Booking{
		ID:            uuid.New(),
		CustomerID:    customerID,
		ProviderID:    providerID,
		ScheduledAt:   scheduledAt.UTC(),
		Status:        BookingPending,
		PaymentStatus: PaymentNotPaid,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if b.ScheduledAt.Truncate(24 * time.Hour).Before(today) {
		return nil, ErrBookingDateInPast
	}

	return b, nil
}

// Validate checks if the Booking has valid data.
// Returns an error if any field fails validation.
func (b *Booking) Validate() error {
	if b.ID == uuid.Nil {
		return ErrBookingIDEmpty
	}

	if b.CustomerID == uuid.Nil {
		return ErrBookingCustomerIDEmpty
	}

	if b.ProviderID == uuid.Nil {
		return ErrBookingProviderIDEmpty
	}

	if b.ScheduledAt.IsZero() {
		return ErrBookingDateZero
	}

	if !ValidBookingStatus(b.Status) {
		return ErrInvalidBookingStatus
	}

	if !ValidPaymentStatus(b.PaymentStatus) {
		return ErrInvalidPaymentStatus
	}

	return nil
}

// Confirm moves the booking to Confirmed.
func (b *Booking) Confirm() {
	b.Status = BookingConfirmed
	b.touch()
}

// Reject moves the booking to Rejected.
func (b *Booking) Reject() {
	b.Status = BookingRejected
	b.touch()
}

// Start moves the booking to InProgress.
func (b *Booking) Start() {
	b.Status = BookingInProgress
	b.touch()
}

// Complete moves the booking to Completed and resets the payment status to
// Not_Paid: payment is always settled after the work is done.
func (b *Booking) Complete() {
	b.Status = BookingCompleted
	b.PaymentStatus = PaymentNotPaid
	b.touch()
}

// MarkPaid sets the payment status to Paid. The lifecycle status is untouched.
func (b *Booking) MarkPaid() {
	b.PaymentStatus = PaymentPaid
	b.touch()
}

// Cancellable reports whether the customer may still cancel (delete) the
// booking. Completed, Rejected and Cancelled bookings are kept for the
// record and cannot be removed through cancellation.
func (b *Booking) Cancellable() bool {
	switch b.Status {
	case BookingPending, BookingConfirmed, BookingInProgress:
		return true
	}
	return false
}

// Rateable reports whether the booking may receive a rating.
func (b *Booking) Rateable() bool {
	return b.Status == BookingCompleted
}

// canonicalPredecessors maps each provider-side target state to the statuses
// a well-behaved client would transition from. Used for diagnostics only;
// transitions are never rejected on this basis.
var canonicalPredecessors = map[BookingStatus][]BookingStatus{
	BookingConfirmed:  {BookingPending},
	BookingRejected:   {BookingPending},
	BookingInProgress: {BookingConfirmed},
	BookingCompleted:  {BookingInProgress},
}

// CanonicalTransition reports whether moving from to the target state follows
// the documented state machine.
func CanonicalTransition(from, to BookingStatus) bool {
	for _, p := range canonicalPredecessors[to] {
		if p == from {
			return true
		}
	}
	return false
}

func (b *Booking) touch() {
	b.UpdatedAt = time.Now().UTC()
}
