package internal

import "fmt"

// ExtractorSource extracts a value from the request context.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Header(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Query(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromForm returns a source that reads from a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Form(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromArg returns a source that reads a named argument of the dispatched request.
func FromArg(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		req := c.Parsed()
		if req == nil {
			return "", false
		}
		v, ok := req.Args.Lookup(name)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// FromBody returns a source that reads a field of the decoded request body.
// Non-string values are formatted with fmt.Sprint.
func FromBody(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		val, ok := c.Body()[name]
		if !ok || val == nil {
			return "", false
		}
		if s, ok := val.(string); ok {
			if s == "" {
				return "", false
			}
			return s, true
		}
		s := fmt.Sprint(val)
		if s == "" {
			return "", false
		}
		return s, true
	}
}
