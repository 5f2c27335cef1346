package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/logger"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// BookingService drives the booking lifecycle: creation by customers,
// status transitions by providers, and cancellation by customers.
type BookingService interface {
	// Create places a new booking for the customer with the given provider
	// on the given date. The booking starts pending and unpaid.
	// Returns domain.ErrBookingDateInPast if the date is before today, and
	// store.ErrProviderNotFound if the provider does not exist.
	Create(ctx context.Context, customerID, providerID uuid.UUID, scheduledAt time.Time) (*domain.Booking, error)

	// Confirm marks the booking as accepted by the provider.
	Confirm(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)

	// Reject marks the booking as declined by the provider.
	Reject(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)

	// Start marks the booking's work as underway.
	Start(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)

	// Complete marks the booking's work as finished. Completion resets the
	// payment status to not paid; payment is recorded separately.
	Complete(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)

	// MarkPaid records that payment for the booking has been received.
	MarkPaid(ctx context.Context, providerID, bookingID uuid.UUID) (*domain.Booking, error)

	// Cancel removes the customer's booking if it is still cancellable
	// (pending, confirmed or in progress). Bookings in any other state are
	// left untouched and no error is returned.
	// Returns ErrNotOwned if the booking belongs to another customer.
	Cancel(ctx context.Context, customerID, bookingID uuid.UUID) error

	// ListForCustomer returns the customer's bookings, newest first, each
	// carrying the rating the customer gave it, if any.
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*store.CustomerBooking, error)

	// ListForProvider returns the provider's actionable bookings, newest
	// first. Cancelled and rejected bookings are excluded.
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error)
}

// bookingService implements BookingService against the booking and provider
// stores.
type bookingService struct {
	bookingStore  store.BookingStore
	providerStore store.ProviderStore
	logger        *slog.Logger
}

// Verify interface implementation at compile time.
var _ BookingService = (*bookingService)(nil)

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingStore store.BookingStore,
	providerStore store.ProviderStore,
	log *slog.Logger,
) (BookingService, error) {
	if bookingStore == nil {
		return nil, fmt.Errorf("booking store cannot be nil")
	}
	if providerStore == nil {
		return nil, fmt.Errorf("provider store cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &bookingService{
		bookingStore:  bookingStore,
		providerStore: providerStore,
		logger:        log.With(slog.String("component", "booking_service")),
	}, nil
}

// Create implements BookingService.Create
func (s *bookingService) Create(
	ctx context.Context,
	customerID, providerID uuid.UUID,
	scheduledAt time.Time,
) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Verify the provider exists before constructing the booking so the
	// caller gets a not-found instead of an opaque constraint error.
	if _, err := s.providerStore.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, store.ErrProviderNotFound) {
			log.Debug("booking creation for unknown provider",
				slog.String("provider_id", providerID.String()))
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up provider: %w", err)
	}

	booking, err := domain.NewBooking(customerID, providerID, scheduledAt)
	if err != nil {
		log.Warn("booking rejected by domain validation",
			slog.String("error", err.Error()),
			slog.String("customer_id", customerID.String()))
		return nil, err
	}

	if err := s.bookingStore.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("customer_id", customerID.String()),
		slog.String("provider_id", providerID.String()),
		slog.Time("scheduled_at", booking.ScheduledAt))
	return booking, nil
}

// Confirm implements BookingService.Confirm
func (s *bookingService) Confirm(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	return s.transition(ctx, providerID, bookingID, "confirm", (*domain.Booking).Confirm)
}

// Reject implements BookingService.Reject
func (s *bookingService) Reject(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	return s.transition(ctx, providerID, bookingID, "reject", (*domain.Booking).Reject)
}

// Start implements BookingService.Start
func (s *bookingService) Start(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	return s.transition(ctx, providerID, bookingID, "start", (*domain.Booking).Start)
}

// Complete implements BookingService.Complete
func (s *bookingService) Complete(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	return s.transition(ctx, providerID, bookingID, "complete", (*domain.Booking).Complete)
}

// MarkPaid implements BookingService.MarkPaid
func (s *bookingService) MarkPaid(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
) (*domain.Booking, error) {
	return s.transition(ctx, providerID, bookingID, "mark_paid", (*domain.Booking).MarkPaid)
}

// transition loads the booking, verifies it belongs to the acting provider,
// applies the state change and persists it. Transitions from a non-canonical
// predecessor state are applied anyway and logged, matching the lifecycle's
// deliberately permissive design.
func (s *bookingService) transition(
	ctx context.Context,
	providerID, bookingID uuid.UUID,
	action string,
	apply func(*domain.Booking),
) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			log.Debug("booking not found for transition",
				slog.String("booking_id", bookingID.String()),
				slog.String("action", action))
			return nil, err
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.ProviderID != providerID {
		log.Warn("provider attempted transition on foreign booking",
			slog.String("booking_id", bookingID.String()),
			slog.String("provider_id", providerID.String()),
			slog.String("action", action))
		return nil, ErrNotOwned
	}

	from := booking.Status
	apply(booking)

	if booking.Status != from && !domain.CanonicalTransition(from, booking.Status) {
		log.Warn("booking transition from non-canonical state",
			slog.String("booking_id", bookingID.String()),
			slog.String("action", action),
			slog.String("from", string(from)),
			slog.String("to", string(booking.Status)))
	}

	if err := s.bookingStore.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking transition: %w", err)
	}

	log.Info("booking transitioned",
		slog.String("booking_id", bookingID.String()),
		slog.String("action", action),
		slog.String("from", string(from)),
		slog.String("to", string(booking.Status)),
		slog.String("payment_status", string(booking.PaymentStatus)))
	return booking, nil
}

// Cancel implements BookingService.Cancel
func (s *bookingService) Cancel(ctx context.Context, customerID, bookingID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			log.Debug("booking not found for cancel",
				slog.String("booking_id", bookingID.String()))
			return err
		}
		return fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.CustomerID != customerID {
		log.Warn("customer attempted to cancel foreign booking",
			slog.String("booking_id", bookingID.String()),
			slog.String("customer_id", customerID.String()))
		return ErrNotOwned
	}

	if !booking.Cancellable() {
		// Completed, rejected or already-cancelled bookings are left as
		// they are. Cancellation of an uncancellable booking is a no-op.
		log.Debug("booking not cancellable, leaving untouched",
			slog.String("booking_id", bookingID.String()),
			slog.String("status", string(booking.Status)))
		return nil
	}

	if err := s.bookingStore.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	log.Info("booking cancelled",
		slog.String("booking_id", bookingID.String()),
		slog.String("customer_id", customerID.String()),
		slog.String("status", string(booking.Status)))
	return nil
}

// ListForCustomer implements BookingService.ListForCustomer
func (s *bookingService) ListForCustomer(
	ctx context.Context,
	customerID uuid.UUID,
) ([]*store.CustomerBooking, error) {
	bookings, err := s.bookingStore.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	return bookings, nil
}

// ListForProvider implements BookingService.ListForProvider
func (s *bookingService) ListForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.Booking, error) {
	bookings, err := s.bookingStore.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider bookings: %w", err)
	}
	return bookings, nil
}
