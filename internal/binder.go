package internal

import (
	"fmt"
	"strconv"
)

// Param declares one action parameter. Its position is its index in the
// action's parameter list.
type Param struct {
	Default    any
	Name       string
	HasDefault bool
}

// Required declares a parameter without a default.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter that falls back to def.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Args is the bound argument vector handed to an action.
// It may be shorter than the declared parameter list.
type Args []any

// Len returns the number of bound arguments.
func (a Args) Len() int {
	return len(a)
}

// Get returns argument i, or nil when it was not bound.
func (a Args) Get(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// String returns argument i formatted as a string; unbound and nil arguments yield "".
func (a Args) String(i int) string {
	switch v := a.Get(i).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Bind produces the argument vector for params from bag.
// Per parameter: named argument, then positional argument at the parameter's
// index, then the declared default. Positional arguments beyond the declared
// parameters are dropped. Unfilled parameters before a filled one hold nil;
// trailing unfilled parameters are trimmed.
func Bind(params []Param, bag ArgBag) Args {
	out := make(Args, len(params))
	last := -1
	for i, p := range params {
		if v, ok := bag.Lookup(p.Name); ok {
			out[i] = v
		} else if v, ok := bag.At(i); ok {
			out[i] = v
		} else if p.HasDefault {
			out[i] = p.Default
		} else {
			continue
		}
		last = i
	}
	return out[:last+1]
}

// Arg returns argument i converted to T.
// Returns the zero value if the argument is missing or cannot be converted.
func Arg[T ~string | ~int | ~int64 | ~float64 | ~bool](args Args, i int) T {
	v, _ := convertArg[T](args.Get(i))
	return v
}

// ArgDefault returns argument i converted to T, or defaultValue if it is
// missing or cannot be converted.
func ArgDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](args Args, i int, defaultValue T) T {
	v, ok := convertArg[T](args.Get(i))
	if !ok {
		return defaultValue
	}
	return v
}

func convertArg[T ~string | ~int | ~int64 | ~float64 | ~bool](v any) (T, bool) {
	var zero T
	switch raw := v.(type) {
	case nil:
		return zero, false
	case T:
		return raw, true
	case string:
		return convertParam[T](raw)
	default:
		return convertParam[T](fmt.Sprint(raw))
	}
}

// convertParam converts a raw string to the target type T.
// Returns the converted value and true on success, or the zero value and false on failure.
func convertParam[T ~string | ~int | ~int64 | ~float64 | ~bool](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
