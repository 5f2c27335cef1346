package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/logger"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// RatingService records customer ratings for completed bookings and keeps
// each provider's stored average consistent with the full rating set.
type RatingService interface {
	// RateBooking stores the customer's rating for a booking and recomputes
	// the provider's average. Rating the same booking again overwrites the
	// previous value; the average always reflects one value per booking.
	//
	// Returns domain.ErrInvalidRatingValue if value is outside 1..5,
	// store.ErrBookingNotFound if the booking does not exist, ErrNotOwned if
	// the booking belongs to another customer, and ErrBookingNotCompleted if
	// the booking has not been completed.
	RateBooking(ctx context.Context, customerID, bookingID uuid.UUID, value int) (*domain.Rating, error)
}

// ratingService implements RatingService. It needs the raw *sql.DB in
// addition to the stores: the upsert and the average recomputation must
// commit atomically.
type ratingService struct {
	db            *sql.DB
	bookingStore  store.BookingStore
	ratingStore   store.RatingStore
	providerStore store.ProviderStore
	logger        *slog.Logger
}

// Verify interface implementation at compile time.
var _ RatingService = (*ratingService)(nil)

// NewRatingService creates a new RatingService.
func NewRatingService(
	db *sql.DB,
	bookingStore store.BookingStore,
	ratingStore store.RatingStore,
	providerStore store.ProviderStore,
	log *slog.Logger,
) (RatingService, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if bookingStore == nil {
		return nil, fmt.Errorf("booking store cannot be nil")
	}
	if ratingStore == nil {
		return nil, fmt.Errorf("rating store cannot be nil")
	}
	if providerStore == nil {
		return nil, fmt.Errorf("provider store cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &ratingService{
		db:            db,
		bookingStore:  bookingStore,
		ratingStore:   ratingStore,
		providerStore: providerStore,
		logger:        log.With(slog.String("component", "rating_service")),
	}, nil
}

// RateBooking implements RatingService.RateBooking
func (s *ratingService) RateBooking(
	ctx context.Context,
	customerID, bookingID uuid.UUID,
	value int,
) (*domain.Rating, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidRatingValue(value) {
		log.Warn("rating value out of range",
			slog.String("booking_id", bookingID.String()),
			slog.Int("value", value))
		return nil, domain.ErrInvalidRatingValue
	}

	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			log.Debug("booking not found for rating",
				slog.String("booking_id", bookingID.String()))
			return nil, err
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.CustomerID != customerID {
		log.Warn("customer attempted to rate foreign booking",
			slog.String("booking_id", bookingID.String()),
			slog.String("customer_id", customerID.String()))
		return nil, ErrNotOwned
	}

	if !booking.Rateable() {
		log.Debug("booking not rateable",
			slog.String("booking_id", bookingID.String()),
			slog.String("status", string(booking.Status)))
		return nil, ErrBookingNotCompleted
	}

	rating, err := domain.NewRating(bookingID, booking.ProviderID, value)
	if err != nil {
		return nil, err
	}

	var average float64
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txProviders := s.providerStore.WithTx(tx)
		txRatings := s.ratingStore.WithTx(tx)

		// Lock the provider row before touching the ratings so concurrent
		// recomputations for the same provider serialize and each one reads
		// the complete committed rating set.
		if _, err := txProviders.GetByIDForUpdate(ctx, booking.ProviderID); err != nil {
			return err
		}

		// An already-rated booking keeps its stored row; only the value
		// changes. Carry the persisted identity forward so the caller gets
		// the rating that actually exists in the database.
		existing, err := txRatings.GetByBookingID(ctx, bookingID)
		switch {
		case err == nil:
			rating.ID = existing.ID
			rating.CreatedAt = existing.CreatedAt
		case !errors.Is(err, store.ErrRatingNotFound):
			return err
		}

		if err := txRatings.Upsert(ctx, rating); err != nil {
			return err
		}

		average, err = txRatings.AverageForProvider(ctx, booking.ProviderID)
		if err != nil {
			return err
		}

		return txProviders.UpdateAverageRating(ctx, booking.ProviderID, average)
	})
	if err != nil {
		log.Error("rating transaction failed",
			slog.String("error", err.Error()),
			slog.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("failed to record rating: %w", err)
	}

	log.Info("booking rated",
		slog.String("booking_id", bookingID.String()),
		slog.String("provider_id", booking.ProviderID.String()),
		slog.Int("value", value),
		slog.Float64("average_rating", average))
	return rating, nil
}
