package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln/internal"
	"github.com/dmitrymomot/kiln/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	noop := func(c internal.Context) error { return nil }

	t.Run("generates a UUID when not present", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, middlewares.RequestID()(noop)(ctx))

		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, middlewares.GetRequestID(ctx))
	})

	t.Run("keeps upstream ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := httptest.NewRecorder()

		require.NoError(t, middlewares.RequestID()(noop)(newTestContext(rec, req)))
		require.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom headers in priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-456")
		req.Header.Set("X-Custom-ID", "custom-123")
		rec := httptest.NewRecorder()

		mw := middlewares.RequestID(middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"))
		require.NoError(t, mw(noop)(newTestContext(rec, req)))
		require.Equal(t, "custom-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("oversized upstream ID is replaced", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 500))
		rec := httptest.NewRecorder()

		mw := middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "fresh" }))
		require.NoError(t, mw(noop)(newTestContext(rec, req)))
		require.Equal(t, "fresh", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom response header", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mw := middlewares.RequestID(middlewares.WithRequestIDResponseHeader("X-Trace"))
		require.NoError(t, mw(noop)(newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))))
		require.NotEmpty(t, rec.Header().Get("X-Trace"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("GetRequestID without middleware", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, middlewares.GetRequestID(ctx))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, middlewares.RequestID()(func(c internal.Context) error { return nil })(ctx))

		attr, ok := middlewares.RequestIDExtractor()(ctx.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.Equal(t, middlewares.GetRequestID(ctx), attr.Value.String())
	})

	t.Run("skips when absent", func(t *testing.T) {
		t.Parallel()

		_, ok := middlewares.RequestIDExtractor()(httptest.NewRequest(http.MethodGet, "/", nil).Context())
		require.False(t, ok)
	})

	t.Run("visible to actions behind the dispatcher", func(t *testing.T) {
		t.Parallel()

		var seen string
		app := internal.New(
			internal.WithMiddleware(middlewares.RequestID()),
			internal.WithController("home", captureController(func(c internal.Context) error {
				seen = middlewares.GetRequestID(c)
				return c.NoContent(http.StatusNoContent)
			})),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "from-proxy")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "from-proxy", seen)
		require.Equal(t, "from-proxy", w.Header().Get("X-Request-ID"))
	})
}

type captureController func(c internal.Context) error

func (fn captureController) Actions(a *internal.ActionSet) {
	a.Handle("index", func(c internal.Context, _ internal.Args) error { return fn(c) })
}
