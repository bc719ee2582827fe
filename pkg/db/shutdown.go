package db

import (
	"context"
	"errors"
)

// Shutdown returns a function that closes the database.
// Use with kiln.ShutdownHook().
//
// Example:
//
//	app.Run(":8080", kiln.ShutdownHook(db.Shutdown(database)))
func Shutdown(d *Database) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return d.Close()
	}
}

// Healthcheck returns a readiness check that pings the database.
//
// Example:
//
//	kiln.WithHealthChecks(
//	    kiln.WithReadinessCheck("db", db.Healthcheck(database.Conn)),
//	)
func Healthcheck(conn interface {
	Ping(ctx context.Context) error
}) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}
