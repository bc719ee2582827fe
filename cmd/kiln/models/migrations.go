package models

import (
	"embed"
	"io/fs"

	"github.com/dmitrymomot/kiln/pkg/db"
)

//go:embed migrations
var migrations embed.FS

// Migrations returns the goose migrations for driver.
func Migrations(driver string) (fs.FS, error) {
	dir := "migrations/postgres"
	if driver == db.DriverSQLite {
		dir = "migrations/sqlite"
	}
	return fs.Sub(migrations, dir)
}
