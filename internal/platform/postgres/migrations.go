package postgres

import "embed"

// MigrationsFS embeds the goose migration files so the binary can apply
// them at startup without a migrations directory on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
