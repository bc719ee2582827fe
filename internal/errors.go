package internal

import (
	"errors"
	"net/http"
)

// RouteError is a failure to turn a request into an action call, or an
// HTTP-level error returned by an action. It carries everything the error
// router needs to pick an override target or render a default response.
type RouteError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the internal description; shown only in debug mode.
	Message string

	// Code is the HTTP status code (e.g., 403, 404).
	Code int

	// State is where the dispatcher stopped.
	State State
}

func (e *RouteError) Error() string {
	return e.Message
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

func (e *RouteError) StatusCode() int {
	return e.Code
}

func (e *RouteError) StatusText() string {
	return http.StatusText(e.Code)
}

// RouteErrorOption configures a RouteError.
type RouteErrorOption func(*RouteError)

// NewRouteError creates a new RouteError with the given status code and message.
func NewRouteError(code int, message string, opts ...RouteErrorOption) *RouteError {
	e := &RouteError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithError(err error) RouteErrorOption {
	return func(e *RouteError) {
		e.Err = err
	}
}

func WithState(s State) RouteErrorOption {
	return func(e *RouteError) {
		e.State = s
	}
}

// Convenience constructors for the codes the runtime produces.

func ErrBadRequest(message string, opts ...RouteErrorOption) *RouteError {
	return NewRouteError(http.StatusBadRequest, message, opts...)
}

func ErrForbidden(message string, opts ...RouteErrorOption) *RouteError {
	return NewRouteError(http.StatusForbidden, message, append([]RouteErrorOption{WithState(StateForbidden)}, opts...)...)
}

func ErrNotFound(message string, opts ...RouteErrorOption) *RouteError {
	return NewRouteError(http.StatusNotFound, message, append([]RouteErrorOption{WithState(StateNotFound)}, opts...)...)
}

func ErrMethodNotAllowed(message string, opts ...RouteErrorOption) *RouteError {
	return NewRouteError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrRequestTooLarge(message string, opts ...RouteErrorOption) *RouteError {
	return NewRouteError(http.StatusRequestEntityTooLarge, message, opts...)
}

func ErrInternal(message string, opts ...RouteErrorOption) *RouteError {
	return NewRouteError(http.StatusInternalServerError, message, opts...)
}

// AsRouteError extracts the RouteError from an error chain if present.
// Returns nil if there is none.
func AsRouteError(err error) *RouteError {
	var re *RouteError
	if errors.As(err, &re) {
		return re
	}
	return nil
}

// IsForbidden reports whether err is a 403 routing error.
func IsForbidden(err error) bool {
	re := AsRouteError(err)
	return re != nil && re.Code == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 routing error.
func IsNotFound(err error) bool {
	re := AsRouteError(err)
	return re != nil && re.Code == http.StatusNotFound
}
