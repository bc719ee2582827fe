// Package logger provides structured logging with context extraction and Sentry integration.
//
// Loggers are plain *slog.Logger values. The package adds two things on top of
// log/slog: context extractors that inject request-scoped attributes, and an
// optional Sentry fan-out for warnings and errors.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"},
//		middlewares.RequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "request dispatched", slog.String("target", "home"))
//	// time=... level=INFO msg="request dispatched" target=home request_id=01J...
//
// # Configuration
//
//	LOG_LEVEL          - debug, info, warn or error (default: info)
//	LOG_FORMAT         - json or text (default: json)
//	SENTRY_DSN         - enables Sentry when set
//	SENTRY_ENVIRONMENT - Sentry environment (default: production)
//	SENTRY_MIN_LEVEL   - warn or error (default: warn)
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(cfg, sentryCfg, extractors...)
//
// Errors create Sentry issues; warnings are stored as Sentry logs unless
// SENTRY_MIN_LEVEL is error. If the DSN is empty the logger falls back to
// stdout only, so the same code path works in development and production.
//
// # Context Extractors
//
// A [ContextExtractor] returns an attribute and true, or false to skip:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// [NewContextHandler] wraps any slog.Handler with extractors.
package logger
