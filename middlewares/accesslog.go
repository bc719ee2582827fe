package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/kiln/internal"
)

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	// TimingHeader is set on the response with the time spent before the
	// header went out. Empty disables it.
	TimingHeader string
	// Skip excludes matching requests from logging (health probes, assets).
	Skip func(r *http.Request) bool
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithTimingHeader sets the response timing header name.
func WithTimingHeader(name string) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.TimingHeader = name
	}
}

// WithAccessLogSkip sets a predicate for requests that are not logged.
func WithAccessLogSkip(fn func(r *http.Request) bool) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Skip = fn
	}
}

// AccessLog returns middleware that logs one line per request with status,
// response size and duration. 5xx are logged at error level, 4xx at warn.
// Request ID is automatically included via RequestIDExtractor() if configured.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &AccessLogConfig{
		TimingHeader: "X-Response-Time",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if cfg.Skip != nil && cfg.Skip(r) {
				return next(c)
			}

			start := time.Now()
			rw := c.ResponseWriter()
			if cfg.TimingHeader != "" {
				rw.OnBeforeWrite(func() {
					rw.Header().Set(cfg.TimingHeader, time.Since(start).String())
				})
			}

			err := next(c)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("uri", r.URL.RequestURI()),
				slog.Int("status", rw.Status()),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			switch status := rw.Status(); {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
