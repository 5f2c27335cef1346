package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/sohilaahmed2/AlaEltalab/internal/platform/postgres"
)

// migrationTableName is the table used by goose to track applied migrations.
const migrationTableName = "schema_migrations"

// runMigrations applies any pending database migrations from the embedded
// migration files.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(postgres.MigrationsFS)
	goose.SetTableName(migrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied")
	return nil
}

// slogGooseLogger adapts goose's logger interface to structured logging.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
	os.Exit(1)
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}
