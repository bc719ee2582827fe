package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kiln/cmd/kiln/models"
	"github.com/dmitrymomot/kiln/middlewares"
	"github.com/dmitrymomot/kiln/pkg/db"
	"github.com/dmitrymomot/kiln/pkg/logger"
)

// cli holds what the persistent flags and pre-run produce.
type cli struct {
	cfg        Config
	log        *slog.Logger
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "kiln",
		Short:         "Convention-routed web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			environ, err := environment(c.envFile)
			if err != nil {
				return err
			}
			c.cfg, err = loadConfig(c.configPath, environ)
			if err != nil {
				return err
			}
			c.log = logger.NewWithSentry(c.cfg.Log, c.cfg.Sentry, middlewares.RequestIDExtractor())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), c.cfg, c.log)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "Path to dotenv file")

	root.AddCommand(newServeCmd(c), newMigrateCmd(c))
	return root
}

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			return serve(cmd.Context(), c.cfg, c.log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func newMigrateCmd(c *cli) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), c.cfg, c.log, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "Insert default rows into empty tables")
	return cmd
}

// migrate applies the embedded migrations and optionally seeds.
func migrate(ctx context.Context, cfg Config, log *slog.Logger, seed bool) error {
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := applyMigrations(ctx, database, cfg.Database.MigrationsTable, log); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	return models.NewTeamInterests(database, log).Seed(ctx)
}

func applyMigrations(ctx context.Context, database *db.Database, table string, log *slog.Logger) error {
	fsys, err := models.Migrations(database.Driver())
	if err != nil {
		return err
	}
	return db.Migrate(ctx, database, fsys, table, log)
}
