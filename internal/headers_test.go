package internal_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln/internal"
)

func TestHeadersFromEnv(t *testing.T) {
	t.Parallel()

	h := internal.HeadersFromEnv(map[string]string{
		"HTTP_ACCEPT":     "application/json, text/html",
		"X_FORWARDED_FOR": "10.0.0.1",
		"CONTENT_TYPE":    "application/x-www-form-urlencoded; charset=utf-8",
		"content_length":  "12",
		"AUTH_TYPE":       "Basic",
		"PATH":            "/usr/bin",
		"SERVER_SOFTWARE": "kiln",
		"REQUEST_METHOD":  "GET",
		"HTTP_USER_AGENT": "curl/8.0",
		"DOCUMENT_ROOT":   "/srv",
	})

	require.Equal(t, internal.Headers{
		"HTTP_ACCEPT":     "application/json",
		"X_FORWARDED_FOR": "10.0.0.1",
		"CONTENT_TYPE":    "application/x-www-form-urlencoded",
		"CONTENT_LENGTH":  "12",
		"AUTH_TYPE":       "Basic",
		"HTTP_USER_AGENT": "curl/8.0",
	}, h)

	mt, ok := h.MediaType()
	require.True(t, ok)
	require.Equal(t, internal.MediaTypeFormData, mt)
}

func TestHeadersFromHTTP(t *testing.T) {
	t.Parallel()

	src := http.Header{}
	src.Set("Content-Type", "Application/JSON; charset=utf-8")
	src.Set("Accept-Language", "en-US,en;q=0.9")
	src.Set("X-Request-ID", "abc")
	src["Empty"] = nil

	h := internal.HeadersFromHTTP(src)

	require.Equal(t, "Application/JSON", h["CONTENT_TYPE"])
	require.Equal(t, "en-US", h["HTTP_ACCEPT_LANGUAGE"])
	require.Equal(t, "abc", h["HTTP_X_REQUEST_ID"])
	require.NotContains(t, h, "HTTP_EMPTY")

	require.Equal(t, "en-US", h.Get("Accept-Language"))
	require.Equal(t, "en-US", h.Get("HTTP_ACCEPT_LANGUAGE"))
	require.Equal(t, "", h.Get("Missing"))

	mt, ok := h.MediaType()
	require.True(t, ok)
	require.Equal(t, internal.MediaTypeJSON, mt)
}

func TestHeadersMediaTypeUnknown(t *testing.T) {
	t.Parallel()

	_, ok := internal.Headers{"CONTENT_TYPE": "multipart/form-data"}.MediaType()
	require.False(t, ok)

	_, ok = internal.Headers{}.MediaType()
	require.False(t, ok)
}
