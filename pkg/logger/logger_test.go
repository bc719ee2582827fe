package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln/pkg/logger"
)

type traceKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(traceKey{}).(string); ok && v != "" {
		return slog.String("trace_id", v), true
	}
	return slog.Attr{}, false
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: "info"}, traceExtractor, nil)

		ctx := context.WithValue(context.Background(), traceKey{}, "abc")
		log.InfoContext(ctx, "dispatched", slog.String("target", "home"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "dispatched", entry["msg"])
		require.Equal(t, "home", entry["target"])
		require.Equal(t, "abc", entry["trace_id"])
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: "warn"})

		log.Info("hidden")
		require.Zero(t, buf.Len())

		log.Warn("shown")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Format: "text"})
		log.Info("hello", slog.Int("n", 1))

		require.Contains(t, buf.String(), "msg=hello")
		require.Contains(t, buf.String(), "n=1")
	})

	t.Run("extractor survives With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf}, traceExtractor).With("component", "dispatcher")

		ctx := context.WithValue(context.Background(), traceKey{}, "xyz")
		log.InfoContext(ctx, "resolved")

		require.Contains(t, buf.String(), `"component":"dispatcher"`)
		require.Contains(t, buf.String(), `"trace_id":"xyz"`)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.Config{Output: &buf}, logger.SentryConfig{})
	log.Error("boom")

	require.Contains(t, buf.String(), "boom")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	log.Error("discarded")
}
