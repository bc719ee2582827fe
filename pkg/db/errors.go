package db

import "errors"

// Errors are joined with the underlying driver error, so match them with errors.Is.
var (
	ErrInvalidConfig     = errors.New("db: invalid configuration")
	ErrUnsupportedDriver = errors.New("db: unsupported driver")
	ErrConnect           = errors.New("db: could not connect")
	ErrUnhealthy         = errors.New("db: ping failed")
	ErrMigrationDialect  = errors.New("db: unknown migration dialect")
	ErrMigrate           = errors.New("db: migration failed")
)
