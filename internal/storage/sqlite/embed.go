package sqlite

import "embed"

// migrationsFS contains the SQL migration files embedded at compile time.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS
