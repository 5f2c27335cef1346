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

// PostgresBookingStore implements the store.BookingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookingStore creates a new PostgreSQL implementation of the
// BookingStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookingStore(db store.DBTX, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

// Ensure PostgresBookingStore implements store.BookingStore interface
var _ store.BookingStore = (*PostgresBookingStore)(nil)

// WithTx implements store.BookingStore.WithTx
func (s *PostgresBookingStore) WithTx(tx *sql.Tx) store.BookingStore {
	return &PostgresBookingStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.BookingStore.Create
// Returns store.ErrInvalidEntity if the customer or provider reference does
// not exist (foreign key violation).
func (s *PostgresBookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := booking.Validate(); err != nil {
		log.Warn("booking validation failed during create",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	query := `
		INSERT INTO bookings (id, customer_id, provider_id, scheduled_at,
			status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		booking.ID,
		booking.CustomerID,
		booking.ProviderID,
		booking.ScheduledAt,
		booking.Status,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err, "") {
			log.Warn("foreign key violation during booking creation",
				slog.String("booking_id", booking.ID.String()),
				slog.String("customer_id", booking.CustomerID.String()),
				slog.String("provider_id", booking.ProviderID.String()))
			return store.ErrInvalidEntity
		}

		log.Error("failed to create booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return wrapStoreError("booking", "create", err)
	}

	log.Info("booking created successfully",
		slog.String("booking_id", booking.ID.String()),
		slog.String("customer_id", booking.CustomerID.String()),
		slog.String("provider_id", booking.ProviderID.String()),
		slog.String("status", string(booking.Status)))
	return nil
}

// GetByID implements store.BookingStore.GetByID
// Returns store.ErrBookingNotFound if the booking does not exist.
func (s *PostgresBookingStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, customer_id, provider_id, scheduled_at, status,
			payment_status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var b domain.Booking
	var status, paymentStatus string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.CustomerID,
		&b.ProviderID,
		&b.ScheduledAt,
		&status,
		&paymentStatus,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("booking not found", slog.String("booking_id", id.String()))
			return nil, store.ErrBookingNotFound
		}
		log.Error("failed to get booking by ID",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return nil, wrapStoreError("booking", "get_by_id", err)
	}

	b.Status = domain.BookingStatus(status)
	b.PaymentStatus = domain.PaymentStatus(paymentStatus)

	return &b, nil
}

// Update implements store.BookingStore.Update
// It persists the booking's status and payment status.
// Returns store.ErrBookingNotFound if the booking does not exist.
func (s *PostgresBookingStore) Update(ctx context.Context, booking *domain.Booking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := booking.Validate(); err != nil {
		log.Warn("booking validation failed during update",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		booking.Status,
		booking.PaymentStatus,
		booking.UpdatedAt,
		booking.ID,
	)

	if err != nil {
		log.Error("failed to update booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()),
			slog.String("status", string(booking.Status)))
		return wrapStoreError("booking", "update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return wrapStoreError("booking", "update", err)
	}

	if rowsAffected == 0 {
		log.Debug("booking not found for update",
			slog.String("booking_id", booking.ID.String()))
		return store.ErrBookingNotFound
	}

	log.Info("booking updated successfully",
		slog.String("booking_id", booking.ID.String()),
		slog.String("status", string(booking.Status)),
		slog.String("payment_status", string(booking.PaymentStatus)))
	return nil
}

// Delete implements store.BookingStore.Delete
// The booking's rating, if any, is removed by the ON DELETE CASCADE foreign
// key in the schema.
// Returns store.ErrBookingNotFound if the booking does not exist.
func (s *PostgresBookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM bookings WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return wrapStoreError("booking", "delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return wrapStoreError("booking", "delete", err)
	}

	if rowsAffected == 0 {
		log.Debug("booking not found for delete",
			slog.String("booking_id", id.String()))
		return store.ErrBookingNotFound
	}

	log.Info("booking deleted successfully",
		slog.String("booking_id", id.String()))
	return nil
}

// ListByCustomer implements store.BookingStore.ListByCustomer
// It returns the customer's bookings newest first, each with its rating value
// when the booking has been rated.
func (s *PostgresBookingStore) ListByCustomer(
	ctx context.Context,
	customerID uuid.UUID,
) ([]*store.CustomerBooking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing bookings for customer",
		slog.String("customer_id", customerID.String()))

	query := `
		SELECT b.id, b.customer_id, b.provider_id, b.scheduled_at, b.status,
			b.payment_status, b.created_at, b.updated_at, r.value
		FROM bookings b
		LEFT JOIN ratings r ON r.booking_id = b.id
		WHERE b.customer_id = $1
		ORDER BY b.scheduled_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, customerID)
	if err != nil {
		log.Error("failed to query bookings by customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customerID.String()))
		return nil, wrapStoreError("booking", "list_by_customer", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	bookings := []*store.CustomerBooking{}
	for rows.Next() {
		var cb store.CustomerBooking
		var status, paymentStatus string
		var ratingValue sql.NullInt64

		if err := rows.Scan(
			&cb.ID,
			&cb.CustomerID,
			&cb.ProviderID,
			&cb.ScheduledAt,
			&status,
			&paymentStatus,
			&cb.CreatedAt,
			&cb.UpdatedAt,
			&ratingValue,
		); err != nil {
			log.Error("failed to scan booking row",
				slog.String("error", err.Error()))
			return nil, wrapStoreError("booking", "list_by_customer", err)
		}

		cb.Status = domain.BookingStatus(status)
		cb.PaymentStatus = domain.PaymentStatus(paymentStatus)
		if ratingValue.Valid {
			v := int(ratingValue.Int64)
			cb.RatingValue = &v
		}

		bookings = append(bookings, &cb)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, wrapStoreError("booking", "list_by_customer", err)
	}

	log.Debug("listed bookings for customer",
		slog.String("customer_id", customerID.String()),
		slog.Int("count", len(bookings)))
	return bookings, nil
}

// ListByProvider implements store.BookingStore.ListByProvider
// It returns the provider's bookings newest first. Cancelled bookings are
// gone from the table entirely; Rejected ones are filtered out so the work
// queue only shows actionable entries.
func (s *PostgresBookingStore) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing bookings for provider",
		slog.String("provider_id", providerID.String()))

	query := `
		SELECT id, customer_id, provider_id, scheduled_at, status,
			payment_status, created_at, updated_at
		FROM bookings
		WHERE provider_id = $1 AND status NOT IN ($2, $3)
		ORDER BY scheduled_at DESC
	`

	rows, err := s.db.QueryContext(
		ctx,
		query,
		providerID,
		domain.BookingCancelled,
		domain.BookingRejected,
	)
	if err != nil {
		log.Error("failed to query bookings by provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", providerID.String()))
		return nil, wrapStoreError("booking", "list_by_provider", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	bookings := []*domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		var status, paymentStatus string

		if err := rows.Scan(
			&b.ID,
			&b.CustomerID,
			&b.ProviderID,
			&b.ScheduledAt,
			&status,
			&paymentStatus,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			log.Error("failed to scan booking row",
				slog.String("error", err.Error()))
			return nil, wrapStoreError("booking", "list_by_provider", err)
		}

		b.Status = domain.BookingStatus(status)
		b.PaymentStatus = domain.PaymentStatus(paymentStatus)
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, wrapStoreError("booking", "list_by_provider", err)
	}

	log.Debug("listed bookings for provider",
		slog.String("provider_id", providerID.String()),
		slog.Int("count", len(bookings)))
	return bookings, nil
}
