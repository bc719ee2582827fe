package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" yaml:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"environment"`
	// MinLevel is "warn" (warnings stored as logs, errors as issues) or "error".
	MinLevel string `env:"SENTRY_MIN_LEVEL" envDefault:"warn" yaml:"min_level"`
}

// NewWithSentry creates a logger that writes to cfg's output and to Sentry.
// With an empty DSN, or when Sentry fails to initialize, only the stdout
// handler is used.
func NewWithSentry(cfg Config, sc SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	base := cfg.handler()

	if sc.DSN == "" {
		return slog.New(NewContextHandler(base, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: sc.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(base, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if ParseLevel(sc.MinLevel) == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	// extractors wrap the fanout so both destinations get the same attributes
	return slog.New(NewContextHandler(fanout{base, sentryHandler}, extractors...))
}
