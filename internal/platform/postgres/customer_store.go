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

// PostgresCustomerStore implements the store.CustomerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCustomerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCustomerStore creates a new PostgreSQL implementation of the
// CustomerStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCustomerStore(db store.DBTX, logger *slog.Logger) *PostgresCustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerStore{
		db:     db,
		logger: logger.With(slog.String("component", "customer_store")),
	}
}

// Ensure PostgresCustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*PostgresCustomerStore)(nil)

// WithTx implements store.CustomerStore.WithTx
func (s *PostgresCustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	return &PostgresCustomerStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CustomerStore.Create
// It saves a new customer to the database, handling domain validation.
// Returns store.ErrEmailExists if the email is already registered.
func (s *PostgresCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	query := `
		INSERT INTO customers (id, name, email, hashed_password, phone, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.HashedPassword,
		customer.Phone,
		customer.City,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during customer creation",
				slog.String("customer_id", customer.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return wrapStoreError("customer", "create", err)
	}

	log.Info("customer created successfully",
		slog.String("customer_id", customer.ID.String()),
		slog.String("city", customer.City))
	return nil
}

// GetByID implements store.CustomerStore.GetByID
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, hashed_password, phone, city, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	customer, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("customer not found", slog.String("customer_id", id.String()))
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by ID",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return nil, wrapStoreError("customer", "get_by_id", err)
	}

	return customer, nil
}

// GetByEmail implements store.CustomerStore.GetByEmail
// Returns store.ErrCustomerNotFound if no customer has that email.
func (s *PostgresCustomerStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, hashed_password, phone, city, created_at, updated_at
		FROM customers
		WHERE email = $1
	`

	customer, err := scanCustomer(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("customer not found by email")
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by email",
			slog.String("error", err.Error()))
		return nil, wrapStoreError("customer", "get_by_email", err)
	}

	return customer, nil
}

// Update implements store.CustomerStore.Update
// It persists the customer's profile fields.
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during update",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	customer.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, city = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.City,
		customer.UpdatedAt,
		customer.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return wrapStoreError("customer", "update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return wrapStoreError("customer", "update", err)
	}

	if rowsAffected == 0 {
		log.Debug("customer not found for update",
			slog.String("customer_id", customer.ID.String()))
		return store.ErrCustomerNotFound
	}

	log.Info("customer updated successfully",
		slog.String("customer_id", customer.ID.String()))
	return nil
}

// Delete implements store.CustomerStore.Delete
// The customer's bookings, and through those any ratings, are removed by the
// ON DELETE CASCADE foreign keys in the schema.
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM customers WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return wrapStoreError("customer", "delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return wrapStoreError("customer", "delete", err)
	}

	if rowsAffected == 0 {
		log.Debug("customer not found for delete",
			slog.String("customer_id", id.String()))
		return store.ErrCustomerNotFound
	}

	log.Info("customer deleted successfully",
		slog.String("customer_id", id.String()))
	return nil
}

// scanCustomer scans one customer row.
func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.HashedPassword,
		&c.Phone,
		&c.City,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
