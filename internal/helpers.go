package internal

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// ParsedRequest returns the Request being dispatched, or nil.
func ParsedRequest(c Context) *Request {
	return c.Parsed()
}

func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	v, _ := convertParam[T](c.Query(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// BodyValue returns the decoded body field name converted to T.
// Numbers decoded from JSON arrive as float64 and are converted as needed.
func BodyValue[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) (T, bool) {
	body := c.Body()
	if body == nil {
		var zero T
		return zero, false
	}
	v, ok := body[name]
	if !ok {
		var zero T
		return zero, false
	}
	if f, isFloat := v.(float64); isFloat {
		if i := int64(f); float64(i) == f {
			v = i
		}
	}
	return convertArg[T](v)
}
