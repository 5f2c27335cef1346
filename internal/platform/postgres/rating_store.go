package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/logger"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// PostgresRatingStore implements the store.RatingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRatingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRatingStore creates a new PostgreSQL implementation of the
// RatingStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresRatingStore(db store.DBTX, logger *slog.Logger) *PostgresRatingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRatingStore{
		db:     db,
		logger: logger.With(slog.String("component", "rating_store")),
	}
}

// Ensure PostgresRatingStore implements store.RatingStore interface
var _ store.RatingStore = (*PostgresRatingStore)(nil)

// WithTx implements store.RatingStore.WithTx
func (s *PostgresRatingStore) WithTx(tx *sql.Tx) store.RatingStore {
	return &PostgresRatingStore{
		db:     tx,
		logger: s.logger,
	}
}

// Upsert implements store.RatingStore.Upsert
// The unique constraint on booking_id turns the insert into an in-place
// overwrite of the value when the booking is already rated. provider_id is
// never touched on conflict: it was set from the booking at creation and
// stays consistent with it.
func (s *PostgresRatingStore) Upsert(ctx context.Context, rating *domain.Rating) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rating.Validate(); err != nil {
		log.Warn("rating validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("booking_id", rating.BookingID.String()))
		return err
	}

	query := `
		INSERT INTO ratings (id, booking_id, provider_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (booking_id) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		rating.ID,
		rating.BookingID,
		rating.ProviderID,
		rating.Value,
		rating.CreatedAt,
		rating.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err, "") {
			log.Warn("foreign key violation during rating upsert",
				slog.String("booking_id", rating.BookingID.String()),
				slog.String("provider_id", rating.ProviderID.String()))
			return store.ErrInvalidEntity
		}

		log.Error("failed to upsert rating",
			slog.String("error", err.Error()),
			slog.String("booking_id", rating.BookingID.String()))
		return wrapStoreError("rating", "upsert", err)
	}

	log.Info("rating upserted successfully",
		slog.String("booking_id", rating.BookingID.String()),
		slog.String("provider_id", rating.ProviderID.String()),
		slog.Int("value", rating.Value))
	return nil
}

// GetByBookingID implements store.RatingStore.GetByBookingID
// Returns store.ErrRatingNotFound if the booking is unrated.
func (s *PostgresRatingStore) GetByBookingID(
	ctx context.Context,
	bookingID uuid.UUID,
) (*domain.Rating, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, booking_id, provider_id, value, created_at, updated_at
		FROM ratings
		WHERE booking_id = $1
	`

	var r domain.Rating
	err := s.db.QueryRowContext(ctx, query, bookingID).Scan(
		&r.ID,
		&r.BookingID,
		&r.ProviderID,
		&r.Value,
		&r.CreatedAt,
		&r.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("rating not found",
				slog.String("booking_id", bookingID.String()))
			return nil, store.ErrRatingNotFound
		}
		log.Error("failed to get rating by booking ID",
			slog.String("error", err.Error()),
			slog.String("booking_id", bookingID.String()))
		return nil, wrapStoreError("rating", "get_by_booking_id", err)
	}

	return &r, nil
}

// AverageForProvider implements store.RatingStore.AverageForProvider
// A full AVG over the provider's current rating set; COALESCE turns the
// empty set into 0 per the invariant.
func (s *PostgresRatingStore) AverageForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(AVG(value), 0)
		FROM ratings
		WHERE provider_id = $1
	`

	var average float64
	err := s.db.QueryRowContext(ctx, query, providerID).Scan(&average)
	if err != nil {
		log.Error("failed to compute average rating",
			slog.String("error", err.Error()),
			slog.String("provider_id", providerID.String()))
		return 0, wrapStoreError("rating", "average_for_provider", err)
	}

	log.Debug("computed average rating",
		slog.String("provider_id", providerID.String()),
		slog.Float64("average", average))
	return average, nil
}

// CountForProvider implements store.RatingStore.CountForProvider
func (s *PostgresRatingStore) CountForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM ratings WHERE provider_id = $1`

	var count int
	err := s.db.QueryRowContext(ctx, query, providerID).Scan(&count)
	if err != nil {
		log.Error("failed to count ratings",
			slog.String("error", err.Error()),
			slog.String("provider_id", providerID.String()))
		return 0, wrapStoreError("rating", "count_for_provider", err)
	}

	return count, nil
}
