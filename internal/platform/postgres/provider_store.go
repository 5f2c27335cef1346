package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/domain"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/logger"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// ratingsProviderFKConstraint is the RESTRICT foreign key from ratings to
// providers. A violation of it means the provider still has ratings.
const ratingsProviderFKConstraint = "ratings_provider_id_fkey"

// PostgresProviderStore implements the store.ProviderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProviderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProviderStore creates a new PostgreSQL implementation of the
// ProviderStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProviderStore(db store.DBTX, logger *slog.Logger) *PostgresProviderStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProviderStore{
		db:     db,
		logger: logger.With(slog.String("component", "provider_store")),
	}
}

// Ensure PostgresProviderStore implements store.ProviderStore interface
var _ store.ProviderStore = (*PostgresProviderStore)(nil)

// WithTx implements store.ProviderStore.WithTx
func (s *PostgresProviderStore) WithTx(tx *sql.Tx) store.ProviderStore {
	return &PostgresProviderStore{
		db:     tx,
		logger: s.logger,
	}
}

// providerColumns is the SELECT list shared by all provider queries.
const providerColumns = `id, name, email, hashed_password, phone, city,
	service_id, price, average_rating, created_at, updated_at`

// Create implements store.ProviderStore.Create
// Returns store.ErrEmailExists if the email is already registered.
// Returns store.ErrInvalidEntity if the service category does not exist.
func (s *PostgresProviderStore) Create(ctx context.Context, provider *domain.Provider) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := provider.Validate(); err != nil {
		log.Warn("provider validation failed during create",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return err
	}

	query := `
		INSERT INTO providers (id, name, email, hashed_password, phone, city,
			service_id, price, average_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		provider.ID,
		provider.Name,
		provider.Email,
		provider.HashedPassword,
		provider.Phone,
		provider.City,
		provider.ServiceID,
		provider.Price,
		provider.AverageRating,
		provider.CreatedAt,
		provider.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during provider creation",
				slog.String("provider_id", provider.ID.String()))
			return store.ErrEmailExists
		}
		if isForeignKeyViolation(err, "") {
			return store.ErrInvalidEntity
		}

		log.Error("failed to create provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return wrapStoreError("provider", "create", err)
	}

	log.Info("provider created successfully",
		slog.String("provider_id", provider.ID.String()),
		slog.Int("service_id", provider.ServiceID),
		slog.String("city", provider.City))
	return nil
}

// GetByID implements store.ProviderStore.GetByID
// Returns store.ErrProviderNotFound if the provider does not exist.
func (s *PostgresProviderStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Provider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`

	provider, err := scanProvider(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("provider not found", slog.String("provider_id", id.String()))
			return nil, store.ErrProviderNotFound
		}
		log.Error("failed to get provider by ID",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return nil, wrapStoreError("provider", "get_by_id", err)
	}

	return provider, nil
}

// GetByEmail implements store.ProviderStore.GetByEmail
// Returns store.ErrProviderNotFound if no provider has that email.
func (s *PostgresProviderStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Provider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + providerColumns + ` FROM providers WHERE email = $1`

	provider, err := scanProvider(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("provider not found by email")
			return nil, store.ErrProviderNotFound
		}
		log.Error("failed to get provider by email",
			slog.String("error", err.Error()))
		return nil, wrapStoreError("provider", "get_by_email", err)
	}

	return provider, nil
}

// GetByIDForUpdate implements store.ProviderStore.GetByIDForUpdate
// It acquires the provider's row lock for the remainder of the enclosing
// transaction, serializing concurrent rating recomputations.
// Returns store.ErrProviderNotFound if the provider does not exist.
func (s *PostgresProviderStore) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Provider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1 FOR UPDATE`

	provider, err := scanProvider(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("provider not found for locking",
				slog.String("provider_id", id.String()))
			return nil, store.ErrProviderNotFound
		}
		log.Error("failed to lock provider row",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return nil, wrapStoreError("provider", "get_by_id_for_update", err)
	}

	return provider, nil
}

// Update implements store.ProviderStore.Update
// It persists the provider's profile fields. AverageRating is deliberately
// not written here; it only changes through UpdateAverageRating.
// Returns store.ErrProviderNotFound if the provider does not exist.
func (s *PostgresProviderStore) Update(ctx context.Context, provider *domain.Provider) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := provider.Validate(); err != nil {
		log.Warn("provider validation failed during update",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return err
	}

	provider.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE providers
		SET name = $1, email = $2, phone = $3, city = $4, price = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		provider.Name,
		provider.Email,
		provider.Phone,
		provider.City,
		provider.Price,
		provider.UpdatedAt,
		provider.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return wrapStoreError("provider", "update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("provider_id", provider.ID.String()))
		return wrapStoreError("provider", "update", err)
	}

	if rowsAffected == 0 {
		log.Debug("provider not found for update",
			slog.String("provider_id", provider.ID.String()))
		return store.ErrProviderNotFound
	}

	log.Info("provider updated successfully",
		slog.String("provider_id", provider.ID.String()))
	return nil
}

// UpdateAverageRating implements store.ProviderStore.UpdateAverageRating
// Returns store.ErrProviderNotFound if the provider does not exist.
func (s *PostgresProviderStore) UpdateAverageRating(
	ctx context.Context,
	id uuid.UUID,
	average float64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE providers
		SET average_rating = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, average, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update provider average rating",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return wrapStoreError("provider", "update_average_rating", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return wrapStoreError("provider", "update_average_rating", err)
	}

	if rowsAffected == 0 {
		log.Debug("provider not found for average rating update",
			slog.String("provider_id", id.String()))
		return store.ErrProviderNotFound
	}

	log.Debug("provider average rating updated",
		slog.String("provider_id", id.String()),
		slog.Float64("average_rating", average))
	return nil
}

// FindByServiceAndCity implements store.ProviderStore.FindByServiceAndCity
// It lists providers offering the given service category in the given city.
// Returns an empty slice if no providers match the criteria.
func (s *PostgresProviderStore) FindByServiceAndCity(
	ctx context.Context,
	serviceID int,
	city string,
) ([]*domain.Provider, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding providers by service and city",
		slog.Int("service_id", serviceID),
		slog.String("city", city))

	query := `SELECT ` + providerColumns + `
		FROM providers
		WHERE service_id = $1 AND city = $2
		ORDER BY average_rating DESC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, serviceID, city)
	if err != nil {
		log.Error("failed to query providers by service and city",
			slog.String("error", err.Error()),
			slog.Int("service_id", serviceID))
		return nil, wrapStoreError("provider", "find_by_service_and_city", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	providers := []*domain.Provider{}
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.HashedPassword,
			&p.Phone,
			&p.City,
			&p.ServiceID,
			&p.Price,
			&p.AverageRating,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan provider row",
				slog.String("error", err.Error()))
			return nil, wrapStoreError("provider", "find_by_service_and_city", err)
		}
		providers = append(providers, &p)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, wrapStoreError("provider", "find_by_service_and_city", err)
	}

	log.Debug("found providers",
		slog.Int("service_id", serviceID),
		slog.Int("count", len(providers)))
	return providers, nil
}

// Delete implements store.ProviderStore.Delete
// Bookings without ratings are removed by cascade; the RESTRICT foreign key
// from ratings fails the delete while any rating still references the
// provider, surfaced as store.ErrProviderHasRatings.
// Returns store.ErrProviderNotFound if the provider does not exist.
func (s *PostgresProviderStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM providers WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err, ratingsProviderFKConstraint) {
			log.Warn("provider delete blocked by existing ratings",
				slog.String("provider_id", id.String()))
			return store.ErrProviderHasRatings
		}
		log.Error("failed to delete provider",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return wrapStoreError("provider", "delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()))
		return wrapStoreError("provider", "delete", err)
	}

	if rowsAffected == 0 {
		log.Debug("provider not found for delete",
			slog.String("provider_id", id.String()))
		return store.ErrProviderNotFound
	}

	log.Info("provider deleted successfully",
		slog.String("provider_id", id.String()))
	return nil
}

// scanProvider scans one provider row.
func scanProvider(row *sql.Row) (*domain.Provider, error) {
	var p domain.Provider
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.HashedPassword,
		&p.Phone,
		&p.City,
		&p.ServiceID,
		&p.Price,
		&p.AverageRating,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
