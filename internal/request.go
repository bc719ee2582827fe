package internal

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxBodySize is the largest request body the parser accepts.
const maxBodySize = 10 << 20 // 10MB

// Verb is an HTTP method the dispatcher understands.
type Verb string

const (
	VerbGet     Verb = http.MethodGet
	VerbPost    Verb = http.MethodPost
	VerbPut     Verb = http.MethodPut
	VerbPatch   Verb = http.MethodPatch
	VerbDelete  Verb = http.MethodDelete
	VerbHead    Verb = http.MethodHead
	VerbOptions Verb = http.MethodOptions
)

// ParseVerb maps a raw method name to a Verb.
func ParseVerb(method string) (Verb, bool) {
	switch v := Verb(strings.ToUpper(strings.TrimSpace(method))); v {
	case VerbGet, VerbPost, VerbPut, VerbPatch, VerbDelete, VerbHead, VerbOptions:
		return v, true
	default:
		return "", false
	}
}

// HasBody reports whether requests with this verb get their body decoded.
func (v Verb) HasBody() bool {
	return v != VerbGet && v != VerbHead
}

// disallowedChars matches everything a path segment or query token may not contain.
var disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9~%.:_-]+`)

// RawInput is the transport-level material a Request is parsed from.
type RawInput struct {
	Body     io.Reader
	Headers  Headers
	Method   string
	URI      string
	BasePath string
}

// NewRawInput captures the parts of an *http.Request the parser needs.
// The URI keeps its escaped form so encoded separators survive until decoding.
func NewRawInput(r *http.Request, basePath string) RawInput {
	return RawInput{
		Body:     r.Body,
		Headers:  HeadersFromHTTP(r.Header),
		Method:   r.Method,
		URI:      r.URL.RequestURI(),
		BasePath: basePath,
	}
}

// ArgBag holds the arguments a request carries besides target and method.
type ArgBag struct {
	Named      map[string]string
	Positional []string
}

// Lookup returns the named argument.
func (b ArgBag) Lookup(name string) (string, bool) {
	v, ok := b.Named[name]
	return v, ok
}

// At returns the positional argument at index i.
func (b ArgBag) At(i int) (string, bool) {
	if i < 0 || i >= len(b.Positional) {
		return "", false
	}
	return b.Positional[i], true
}

// Len returns the total number of arguments.
func (b ArgBag) Len() int {
	return len(b.Positional) + len(b.Named)
}

// Map flattens the bag: positional arguments keyed by index, named by name.
func (b ArgBag) Map() map[string]string {
	m := make(map[string]string, b.Len())
	for i, v := range b.Positional {
		m[strconv.Itoa(i)] = v
	}
	for k, v := range b.Named {
		m[k] = v
	}
	return m
}

// prepend returns a copy of the bag with v inserted as positional argument 0.
func (b ArgBag) prepend(v string) ArgBag {
	positional := make([]string, 0, len(b.Positional)+1)
	positional = append(positional, v)
	positional = append(positional, b.Positional...)
	return ArgBag{Named: b.Named, Positional: positional}
}

// Request is the parsed form of one inbound call.
// Only the dispatcher mutates it, by recording the bound parameters.
type Request struct {
	Headers  Headers
	Post     url.Values
	Body     map[string]any
	Verb     Verb
	Target   string
	Class    string
	Method   string
	BodyType MediaType
	RawBody  []byte
	Args     ArgBag
	Params   Args
}

// ParseRequest builds a Request from raw transport input.
// An empty path resolves to defaultTarget.
func ParseRequest(in RawInput, defaultTarget string) (*Request, error) {
	verb, ok := ParseVerb(in.Method)
	if !ok {
		return nil, ErrMethodNotAllowed("Unsupported request method: " + disallowedChars.ReplaceAllString(in.Method, ""))
	}

	rawPath, rawQuery, _ := strings.Cut(in.URI, "?")

	positional, err := pathSegments(rawPath, in.BasePath)
	if err != nil {
		return nil, err
	}

	named := make(map[string]string)
	queryPositional, err := queryTokens(rawQuery, named)
	if err != nil {
		return nil, err
	}
	positional = append(positional, queryPositional...)

	if len(positional) == 0 {
		positional = []string{defaultTarget}
	}

	req := &Request{
		Headers: in.Headers,
		Verb:    verb,
		Target:  strings.ToLower(positional[0]),
		Args:    ArgBag{Named: named},
	}
	if req.Headers == nil {
		req.Headers = make(Headers)
	}
	req.Class = capitalize(req.Target)
	if len(positional) > 1 {
		req.Method = positional[1]
	}
	if len(positional) > 2 {
		req.Args.Positional = positional[2:]
	}

	if err := req.decodeBody(in.Body); err != nil {
		return nil, err
	}

	return req, nil
}

// pathSegments returns the sanitized, decoded segments of rawPath that do not
// also appear in basePath.
func pathSegments(rawPath, basePath string) ([]string, error) {
	base := make(map[string]struct{})
	for _, seg := range strings.Split(basePath, "/") {
		if seg = sanitize(seg); seg != "" {
			base[seg] = struct{}{}
		}
	}

	var segments []string
	for _, seg := range strings.Split(rawPath, "/") {
		seg = sanitize(seg)
		if seg == "" {
			continue
		}
		if _, ok := base[seg]; ok {
			continue
		}
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrBadRequest("Malformed request path.", WithError(err))
		}
		if decoded != "" {
			segments = append(segments, decoded)
		}
	}
	return segments, nil
}

// queryTokens splits rawQuery on '&'. Tokens with '=' go into named; the rest
// are returned in order as positional arguments.
func queryTokens(rawQuery string, named map[string]string) ([]string, error) {
	var positional []string
	for _, token := range strings.Split(rawQuery, "&") {
		key, value, hasValue := strings.Cut(token, "=")

		key, err := url.QueryUnescape(sanitize(key))
		if err != nil {
			return nil, ErrBadRequest("Malformed query string.", WithError(err))
		}
		if key == "" {
			continue
		}
		if !hasValue {
			positional = append(positional, key)
			continue
		}

		value, err = url.QueryUnescape(sanitize(value))
		if err != nil {
			return nil, ErrBadRequest("Malformed query string.", WithError(err))
		}
		named[key] = value
	}
	return positional, nil
}

func (r *Request) decodeBody(body io.Reader) error {
	if body == nil || !r.Verb.HasBody() {
		return nil
	}
	mt, ok := r.Headers.MediaType()
	if !ok {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		return ErrBadRequest("Unable to read request body.", WithError(err))
	}
	if len(raw) > maxBodySize {
		return ErrRequestTooLarge("Request body too large.")
	}
	r.RawBody = raw
	r.BodyType = mt
	r.Body = make(map[string]any)

	switch mt {
	case MediaTypeJSON:
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return ErrBadRequest("Malformed JSON body.", WithError(err))
		}
		switch v := decoded.(type) {
		case map[string]any:
			r.Body = v
		case []any:
			for i, item := range v {
				r.Body[strconv.Itoa(i)] = item
			}
		default:
			r.Body["0"] = v
		}
	case MediaTypeFormData:
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return ErrBadRequest("Malformed form body.", WithError(err))
		}
		for k, v := range values {
			if len(v) == 1 {
				r.Body[k] = v[0]
			} else {
				r.Body[k] = v
			}
		}
		if r.Verb == VerbPost {
			r.Post = values
		}
	}
	return nil
}

func sanitize(s string) string {
	return disallowedChars.ReplaceAllString(s, "")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
