// Package db manages database connections and schema migrations.
//
// Two drivers are supported. PostgreSQL goes through a [github.com/jackc/pgx/v5/pgxpool]
// pool with startup retries; SQLite goes through database/sql with the pure-Go
// [modernc.org/sqlite] driver and is meant for development and tests. Either way
// [Open] returns a [Database] whose Conn field plugs straight into the model package.
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DATABASE_DRIVER             - "postgres" or "sqlite" (default: postgres)
//	DATABASE_CONN_URL           - PostgreSQL URL or SQLite file path
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 5)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Usage
//
//	database, err := db.Open(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer database.Close()
//
//	interests := model.New(database.Conn, "team_interests", columns)
//
// # Migrations
//
// Run migrations from an embedded directory with [github.com/pressly/goose/v3]:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	sub, _ := fs.Sub(migrations, "migrations")
//	err := db.Migrate(ctx, database, sub, cfg.MigrationsTable, logger)
//
// # Error Handling
//
// The package defines sentinel errors for common failure modes:
//
//   - [ErrInvalidConfig] - Invalid connection string
//   - [ErrConnect] - Connection failed after all retries
//   - [ErrUnsupportedDriver] - Unknown DATABASE_DRIVER value
//   - [ErrUnhealthy] - Database ping failed
//   - [ErrMigrationDialect] - Migration dialect configuration error
//   - [ErrMigrate] - Migration execution failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
