package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure and fixes its HTTP status.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single failure value every handler path produces. Title and
// Message map directly onto the wire error body; Details carries optional
// field-level reasons.
type Error struct {
	Kind    Kind
	Title   string
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, title, message string) *Error {
	return &Error{Kind: kind, Title: title, Message: message}
}

// Validation builds a plain 400 with the canonical "Validation failed" title.
func Validation(message string) *Error {
	return New(KindValidation, "Validation failed", message)
}

// ValidationDetails is Validation with per-field reasons attached.
func ValidationDetails(message string, details map[string]string) *Error {
	e := Validation(message)
	e.Details = details
	return e
}

// Internal is the catch-all surfaced for faults that escaped every domain
// check. It never carries internals to the caller.
func Internal() *Error {
	return New(KindInternal, "Internal server error", "Something went wrong on the server")
}

// From coerces any error into a taxonomy value; unknown errors become
// Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal()
}
