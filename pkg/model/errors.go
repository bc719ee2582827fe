package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the model package.
var (
	ErrValidation        = errors.New("model: validation failure")
	ErrStorage           = errors.New("model: storage failure")
	ErrNoRows            = errors.New("model: no rows in result set")
	ErrInvalidIdentifier = errors.New("model: invalid identifier")
	ErrNoColumns         = errors.New("model: no whitelisted columns")
	ErrNoPredicates      = errors.New("model: empty where clause")
	ErrMissingValue      = errors.New("model: missing value for statement parameter")
	ErrUnknownAction     = errors.New("model: unknown query action")
	ErrNotMapShaped      = errors.New("model: value is not map-shaped")
)

// Kind classifies an ExecutionError.
type Kind uint8

const (
	// KindValidation means the caller's input was rejected before storage was touched,
	// or a batch row could not be bound to the prepared statement.
	KindValidation Kind = iota + 1
	// KindStorage means the storage engine failed during prepare, execute or commit.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failure"
	case KindStorage:
		return "storage_failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindStorage:
		return ErrStorage
	default:
		return nil
	}
}

// ExecutionError is returned by every failed Table operation.
// errors.Is matches both the kind sentinel (ErrValidation, ErrStorage)
// and the wrapped cause.
type ExecutionError struct {
	Err     error  // underlying cause, may be nil
	Op      string // operation name, e.g. "insert_many"
	Table   string // table the operation targeted
	Message string // human-readable description
	Kind    Kind
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("model: %s %s: %s", e.Op, e.Table, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExecutionError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// AsExecutionError extracts the ExecutionError from an error if present.
func AsExecutionError(err error) (*ExecutionError, bool) {
	var ee *ExecutionError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
