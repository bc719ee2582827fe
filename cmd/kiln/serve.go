package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrymomot/kiln"
	"github.com/dmitrymomot/kiln/cmd/kiln/controllers"
	"github.com/dmitrymomot/kiln/cmd/kiln/models"
	"github.com/dmitrymomot/kiln/middlewares"
	"github.com/dmitrymomot/kiln/pkg/db"
)

// serve opens the database, wires the controllers and blocks until shutdown.
func serve(ctx context.Context, cfg Config, log *slog.Logger) error {
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}

	interests := models.NewTeamInterests(database, log)
	app := newApp(cfg, log, database, interests)

	runOpts := []kiln.RunOption{
		kiln.WithContext(ctx),
		kiln.ShutdownHook(db.Shutdown(database)),
	}
	if cfg.AutoMigrate {
		runOpts = append(runOpts, kiln.StartupHook(func(ctx context.Context) error {
			return applyMigrations(ctx, database, cfg.Database.MigrationsTable, log)
		}))
	}
	runOpts = append(runOpts, kiln.StartupHook(interests.Ensure))

	return app.Run(cfg.Addr, runOpts...)
}

// newApp assembles the application. Split from serve so tests can drive it
// through httptest without a listener.
func newApp(cfg Config, log *slog.Logger, database *db.Database, interests *models.TeamInterests) *kiln.App {
	opts := []kiln.Option{
		kiln.WithCustomLogger(log),
		kiln.WithRouting(cfg.Routing),
		kiln.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(middlewares.WithAccessLogSkip(isProbe)),
			middlewares.Recover(),
		),
		kiln.WithController("home", controllers.NewHome(interests)),
		kiln.WithController("interests", controllers.NewInterests(interests)),
		kiln.WithHealthChecks(
			kiln.WithReadinessCheck("db", db.Healthcheck(database.Conn)),
		),
	}
	if cfg.StaticDir != "" {
		opts = append(opts, kiln.WithStaticFiles("/static/", os.DirFS(cfg.StaticDir), "."))
	}
	return kiln.New(opts...)
}

func isProbe(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/health/")
}
