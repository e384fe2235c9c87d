// Package apperr defines the error kinds handlers return and how each one
// maps to an HTTP status at the boundary.
package apperr

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrAuthenticationRequired = errors.New("Authentication required")
	ErrAccessDenied           = errors.New("Access denied")
	ErrNotFound               = errors.New("Not found")
	ErrConflict               = errors.New("Conflict")
)

// kindError carries a caller-facing message while still matching one of the
// sentinel kinds through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func AccessDenied(msg string) error { return &kindError{kind: ErrAccessDenied, msg: msg} }
func NotFound(msg string) error     { return &kindError{kind: ErrNotFound, msg: msg} }
func Conflict(msg string) error     { return &kindError{kind: ErrConflict, msg: msg} }

// ValidationError holds field-level messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns e as an error only when at least one field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Status maps err onto the response status. Anything unclassified is an
// upstream failure.
func Status(err error) int {
	var verr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
