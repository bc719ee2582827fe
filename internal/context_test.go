package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln/internal"
)

// captureController runs fn inside its index action.
type captureController struct {
	fn func(c internal.Context, args internal.Args) error
}

func (cc captureController) Actions(a *internal.ActionSet) {
	a.Handle("index", cc.fn, internal.Optional("first", ""))
}

// requestVia creates an App whose default controller runs fn, and sends req to it.
// This lets tests exercise the real requestContext without accessing unexported symbols.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context, args internal.Args) error) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithController("home", captureController{fn: fn}))
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

type ctxKey struct{}

func TestContextImplementsContextInterface(t *testing.T) {
	t.Parallel()

	t.Run("Deadline delegates to request context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context, _ internal.Args) error {
			deadline, ok := c.Deadline()
			require.True(t, ok)
			expected, _ := ctx.Deadline()
			require.Equal(t, expected, deadline)
			return nil
		})
	})

	t.Run("Done and Err follow cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context, _ internal.Args) error {
			select {
			case <-c.Done():
			default:
				t.Fatal("Done() not closed")
			}
			require.ErrorIs(t, c.Err(), context.Canceled)
			return nil
		})
	})

	t.Run("Value sees values set through Set", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context, _ internal.Args) error {
			c.Set(ctxKey{}, "v")
			require.Equal(t, "v", c.Value(ctxKey{}))
			require.Equal(t, "v", c.Get(ctxKey{}))
			require.Equal(t, "v", internal.ContextValue[string](c, ctxKey{}))
			require.Equal(t, 0, internal.ContextValue[int](c, ctxKey{}))
			return nil
		})
	})
}

func TestContextRequestAccess(t *testing.T) {
	t.Parallel()

	t.Run("parsed request and arguments", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?limit=5&flag=true&name=kiln", nil)
		req.Header.Set("X-Custom", "abc")

		w := requestVia(t, req, nil, func(c internal.Context, args internal.Args) error {
			parsed := c.Parsed()
			require.NotNil(t, parsed)
			require.Same(t, parsed, internal.ParsedRequest(c))
			require.Equal(t, "home", parsed.Target)
			require.Equal(t, internal.Args{""}, parsed.Params)
			require.Equal(t, "", args.String(0))

			require.Equal(t, "kiln", c.Query("name"))
			require.Equal(t, "fallback", c.QueryDefault("missing", "fallback"))
			require.Equal(t, 5, internal.Query[int](c, "limit"))
			require.True(t, internal.Query[bool](c, "flag"))
			require.Equal(t, 20, internal.QueryDefault(c, "page", 20))
			require.Equal(t, 20, internal.QueryDefault(c, "name", 20))
			require.Equal(t, "abc", c.Header("X-Custom"))

			v, ok := internal.NewExtractor(internal.FromQuery("missing"), internal.FromArg("name")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "kiln", v)

			return c.NoContent(http.StatusNoContent)
		})
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("decoded body and form values", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"description":"Go","count":3}`))
		req.Header.Set("Content-Type", "application/json")

		w := requestVia(t, req, nil, func(c internal.Context, _ internal.Args) error {
			require.Equal(t, "Go", c.Form("description"))
			require.Equal(t, map[string]any{"description": "Go", "count": float64(3)}, c.Body())

			count, ok := internal.BodyValue[int](c, "count")
			require.True(t, ok)
			require.Equal(t, 3, count)

			_, ok = internal.BodyValue[int](c, "missing")
			require.False(t, ok)

			v, ok := internal.NewExtractor(internal.FromBody("missing"), internal.FromBody("count")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "3", v)

			return c.String(http.StatusCreated, "ok")
		})
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("form body on PUT", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("description=Rust"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		requestVia(t, req, nil, func(c internal.Context, _ internal.Args) error {
			v, ok := internal.NewExtractor(internal.FromHeader("X-Missing"), internal.FromForm("description")).Extract(c)
			require.True(t, ok)
			require.Equal(t, "Rust", v)
			return nil
		})
	})
}

func TestContextResponses(t *testing.T) {
	t.Parallel()

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context, _ internal.Args) error {
			c.SetHeader("X-Extra", "1")
			return c.JSON(http.StatusAccepted, map[string]int{"n": 1})
		})
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		require.Equal(t, "1", w.Header().Get("X-Extra"))
		require.JSONEq(t, `{"n":1}`, w.Body.String())
	})

	t.Run("HTML", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context, _ internal.Args) error {
			return c.HTML(http.StatusOK, "<p>hi</p>")
		})
		require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		require.Equal(t, "<p>hi</p>", w.Body.String())
	})

	t.Run("Redirect", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context, _ internal.Args) error {
			return c.Redirect(http.StatusSeeOther, "/interests")
		})
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/interests", w.Header().Get("Location"))
	})

	t.Run("Written tracks the response", func(t *testing.T) {
		t.Parallel()

		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context, _ internal.Args) error {
			require.False(t, c.Written())
			require.NoError(t, c.NoContent(http.StatusNoContent))
			require.True(t, c.Written())
			require.Equal(t, http.StatusNoContent, c.ResponseWriter().Status())
			return nil
		})
	})

	t.Run("error after write is ignored", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context, _ internal.Args) error {
			_ = c.String(http.StatusOK, "partial")
			return c.Error(http.StatusNotFound, "too late")
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "partial", w.Body.String())
	})
}

func TestMiddlewareChain(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				c.Set(ctxKey{}, name)
				return next(c)
			}
		}
	}
	deny := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if c.Header("X-Deny") != "" {
				return c.Error(http.StatusForbidden, "denied")
			}
			return next(c)
		}
	}

	opts := []internal.Option{internal.WithMiddleware(mw("outer"), mw("inner"), deny)}

	w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context, _ internal.Args) error {
		return c.String(http.StatusOK, internal.ContextValue[string](c, ctxKey{}))
	})
	require.Equal(t, []string{"outer", "inner"}, order)
	require.Equal(t, "inner", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Deny", "1")
	w = requestVia(t, req, opts, func(c internal.Context, _ internal.Args) error {
		t.Fatal("action must not run")
		return nil
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}
