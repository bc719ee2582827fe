package model

import (
	"fmt"
	"net/url"
	"slices"
)

// Record maps column names to values. It is used for input rows,
// where filters and result rows alike.
type Record map[string]any

// Params are the named statement parameters handed to a Conn.
type Params map[string]any

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// String returns the value under key formatted as a string, or "" if absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

// ToRecord converts dynamic input into a Record.
// Anything that is not map-shaped yields a validation ExecutionError.
func ToRecord(v any) (Record, error) {
	switch m := v.(type) {
	case Record:
		return m, nil
	case map[string]any:
		return Record(m), nil
	case map[string]string:
		rec := make(Record, len(m))
		for k, val := range m {
			rec[k] = val
		}
		return rec, nil
	case url.Values:
		rec := make(Record, len(m))
		for k := range m {
			rec[k] = m.Get(k)
		}
		return rec, nil
	case Params:
		return Record(m), nil
	default:
		return nil, &ExecutionError{
			Kind:    KindValidation,
			Op:      "to_record",
			Message: fmt.Sprintf("cannot use %T as a record", v),
			Err:     ErrNotMapShaped,
		}
	}
}
