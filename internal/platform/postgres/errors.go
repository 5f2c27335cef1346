// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All stores accept a store.DBTX so they run identically on a
// plain connection or inside a transaction.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sohilaahmed2/AlaEltalab/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate email address.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign key
// violation. When constraint is non-empty, the violation must additionally be
// on that named constraint.
func isForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// wrapStoreError wraps a database failure that maps to no sentinel in a
// *store.StoreError so callers see which entity and operation failed.
// Constraint violations must be mapped to their sentinels before this runs.
func wrapStoreError(entity, operation string, err error) error {
	return store.NewStoreError(entity, operation, "database operation failed", err)
}
