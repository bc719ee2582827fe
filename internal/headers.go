package internal

import (
	"net/http"
	"strings"
)

// MediaType is a body content type the request parser knows how to decode.
type MediaType string

const (
	MediaTypeJSON     MediaType = "application/json"
	MediaTypeFormData MediaType = "application/x-www-form-urlencoded"
)

// unprefixedHeaders are environment keys kept even without an HTTP_ or X_ prefix.
var unprefixedHeaders = map[string]struct{}{
	"AUTH_TYPE":      {},
	"CONTENT_LENGTH": {},
	"CONTENT_TYPE":   {},
	"REMOTE_USER":    {},
}

// Headers is a normalized, CGI-style header bag: keys look like HTTP_ACCEPT,
// X_FORWARDED_FOR or CONTENT_TYPE, and every value is cut at its first ';' or ','.
type Headers map[string]string

// HeadersFromEnv filters an environment-style bag down to header entries.
func HeadersFromEnv(env map[string]string) Headers {
	h := make(Headers)
	for k, v := range env {
		key := strings.ToUpper(k)
		_, plain := unprefixedHeaders[key]
		if !plain && !strings.HasPrefix(key, "HTTP_") && !strings.HasPrefix(key, "X_") {
			continue
		}
		h[key] = headerValue(v)
	}
	return h
}

// HeadersFromHTTP converts net/http headers into the CGI-style bag.
// Content-Type and Content-Length keep their bare names; everything else gets HTTP_.
func HeadersFromHTTP(src http.Header) Headers {
	h := make(Headers, len(src))
	for name, values := range src {
		if len(values) == 0 {
			continue
		}
		h[headerKey(name)] = headerValue(values[0])
	}
	return h
}

// Get looks a header up by either its HTTP name ("Content-Type") or its
// normalized key ("CONTENT_TYPE").
func (h Headers) Get(name string) string {
	if v, ok := h[strings.ToUpper(name)]; ok {
		return v
	}
	return h[headerKey(name)]
}

// MediaType returns the declared body type if it is one the parser decodes.
func (h Headers) MediaType() (MediaType, bool) {
	switch mt := MediaType(strings.ToLower(h.Get("Content-Type"))); mt {
	case MediaTypeJSON, MediaTypeFormData:
		return mt, true
	default:
		return "", false
	}
}

func headerKey(name string) string {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if _, ok := unprefixedHeaders[key]; ok {
		return key
	}
	return "HTTP_" + key
}

func headerValue(v string) string {
	if i := strings.IndexAny(v, ";,"); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
