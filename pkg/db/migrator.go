package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Migrate applies every pending migration found at the root of migrations.
// The goose dialect follows the database driver.
func Migrate(ctx context.Context, d *Database, migrations fs.FS, migrationTable string, log *slog.Logger) error {
	dialect := "postgres"
	if d.Driver() == DriverSQLite {
		dialect = "sqlite3"
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Join(ErrMigrationDialect, err)
	}

	// d.SQL shares the pgx pool for postgres, so it must not be closed here.
	if err := goose.UpContext(ctx, d.SQL, "."); err != nil {
		return errors.Join(ErrMigrate, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	// goose returns the error as well; never exit the process from here.
	g.log.Error(fmt.Sprintf(format, args...))
}
