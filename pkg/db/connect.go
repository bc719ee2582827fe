package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/kiln/pkg/model"
)

// Database is an open storage handle together with its model adapter.
type Database struct {
	// Conn is what model.Table executes against.
	Conn model.Conn
	// Pool is set for the postgres driver.
	Pool *pgxpool.Pool
	// SQL is always set; for postgres it shares the pgx pool connections.
	SQL *sql.DB

	driver string
}

// Driver returns the configured driver name.
func (d *Database) Driver() string { return d.driver }

// Close releases every connection.
func (d *Database) Close() error {
	if d.Pool != nil {
		d.Pool.Close()
		return nil
	}
	return d.SQL.Close()
}

// Open connects using the driver named in cfg.
func Open(ctx context.Context, cfg Config) (*Database, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		pool, err := Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Database{
			Conn:   model.NewPgxConn(pool),
			Pool:   pool,
			SQL:    stdlib.OpenDBFromPool(pool),
			driver: DriverPostgres,
		}, nil
	case DriverSQLite:
		sqlDB, err := OpenSQLite(ctx, cfg.ConnectionString)
		if err != nil {
			return nil, err
		}
		return &Database{
			Conn:   model.NewSQLConn(sqlDB),
			SQL:    sqlDB,
			driver: DriverSQLite,
		}, nil
	default:
		return nil, errors.Join(ErrUnsupportedDriver, errors.New(cfg.Driver))
	}
}

// Connect establishes a PostgreSQL connection pool with retry logic.
// Uses linear backoff to handle transient network issues without overwhelming the database.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MinConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	// attempt 1 waits RetryInterval, attempt 2 waits 2x, attempt 3 waits 3x.
	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		conn, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrConnect, ctx.Err())
			case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
			}
			continue
		}

		// Ping catches authentication and permission issues early.
		if err := conn.Ping(ctx); err != nil {
			conn.Close()
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrConnect, ctx.Err())
			case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
			}
			continue
		}

		return conn, nil
	}

	return nil, ErrConnect
}

// OpenSQLite opens a SQLite database file with the pure-Go modernc driver.
// The handle is limited to one connection so that transactions and
// in-memory databases behave predictably.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("empty sqlite path"))
	}
	sqlDB, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Join(ErrConnect, err)
	}
	return sqlDB, nil
}
