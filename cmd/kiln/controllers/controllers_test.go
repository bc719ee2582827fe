package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln"
	"github.com/dmitrymomot/kiln/cmd/kiln/controllers"
	"github.com/dmitrymomot/kiln/cmd/kiln/models"
	"github.com/dmitrymomot/kiln/pkg/db"
	"github.com/dmitrymomot/kiln/pkg/logger"
)

func newTestApp(t *testing.T) *kiln.App {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, db.Config{
		Driver:           db.DriverSQLite,
		ConnectionString: filepath.Join(t.TempDir(), "kiln.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	interests := models.NewTeamInterests(database, logger.NewNope())
	require.NoError(t, interests.Ensure(ctx))

	return kiln.New(
		kiln.WithController("home", controllers.NewHome(interests)),
		kiln.WithController("interests", controllers.NewInterests(interests)),
	)
}

func do(t *testing.T, app *kiln.App, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func descriptions(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	var resp struct {
		Interests []struct {
			Description string `json:"description"`
		} `json:"interests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())

	out := make([]string, 0, len(resp.Interests))
	for _, i := range resp.Interests {
		out = append(out, i.Description)
	}
	return out
}

func TestHome(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	t.Run("index lists seeded interests", func(t *testing.T) {
		t.Parallel()

		w := do(t, app, http.MethodGet, "/", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.ElementsMatch(t, models.DefaultInterests, descriptions(t, w))
	})

	t.Run("restEx GET echoes arguments", func(t *testing.T) {
		t.Parallel()

		w := do(t, app, http.MethodGet, "/home/restEx/5/6?7&arg1=9", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode(t, w)
		require.Equal(t, true, resp["success"])
		require.Equal(t, "Retrieved via GET.", resp["message"])

		req := resp["request"].(map[string]any)
		require.Equal(t, "home", req["target"])
		require.Equal(t, "restEx", req["method"])
		require.Equal(t, map[string]any{"0": "5", "1": "6", "2": "7", "arg1": "9"}, req["args"])
	})

	t.Run("restEx POST echoes body", func(t *testing.T) {
		t.Parallel()

		w := do(t, app, http.MethodPost, "/home/restEx", strings.NewReader(`{"name":"kiln"}`), "application/json")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode(t, w)
		require.Equal(t, "Retrieved via POST.", resp["message"])
		require.Equal(t, map[string]any{"name": "kiln"}, resp["request"].(map[string]any)["body"])
	})

	t.Run("restEx with another verb falls back to index", func(t *testing.T) {
		t.Parallel()

		w := do(t, app, http.MethodPut, "/home/restEx", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, decode(t, w), "interests")
	})
}

func TestInterests(t *testing.T) {
	t.Parallel()

	t.Run("show", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)

		w := do(t, app, http.MethodGet, "/interests/show/1", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Motorsports", decode(t, w)["description"])

		w = do(t, app, http.MethodGet, "/interests/show?id=2", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Movies", decode(t, w)["description"])

		require.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/interests/show/99", nil, "").Code)
		require.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/interests/show/abc", nil, "").Code)
		require.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/interests/show", nil, "").Code)
	})

	t.Run("create from JSON and form bodies", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)

		w := do(t, app, http.MethodPost, "/interests/create", strings.NewReader(`{"description":" Go "}`), "application/json")
		require.Equal(t, http.StatusCreated, w.Code)
		require.EqualValues(t, 4, decode(t, w)["id"])

		w = do(t, app, http.MethodPost, "/interests/create", strings.NewReader("description=Rust"), "application/x-www-form-urlencoded")
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(t, app, http.MethodGet, "/interests", nil, "")
		require.ElementsMatch(t, append(models.DefaultInterests, "Go", "Rust"), descriptions(t, w))

		w = do(t, app, http.MethodPost, "/interests/create", strings.NewReader(`{}`), "application/json")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)

		w := do(t, app, http.MethodPut, "/interests/update/2", strings.NewReader(`{"description":"Film"}`), "application/json")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, app, http.MethodGet, "/interests/show/2", nil, "")
		require.Equal(t, "Film", decode(t, w)["description"])

		w = do(t, app, http.MethodPatch, "/interests/update/2", strings.NewReader(`{"bogus":1}`), "application/json")
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, app, http.MethodPut, "/interests/update/2", nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, app, http.MethodPut, "/interests/update/99", strings.NewReader(`{"description":"Film"}`), "application/json")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete is soft", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)

		w := do(t, app, http.MethodDelete, "/interests/delete/3", nil, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, app, http.MethodGet, "/interests", nil, "")
		require.ElementsMatch(t, []string{"Motorsports", "Movies"}, descriptions(t, w))

		w = do(t, app, http.MethodGet, "/interests?all=1", nil, "")
		require.ElementsMatch(t, models.DefaultInterests, descriptions(t, w))

		w = do(t, app, http.MethodDelete, "/interests/delete/99", nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("private seed action is forbidden", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)

		w := do(t, app, http.MethodGet, "/interests/seed", nil, "")
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
