package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error with an HTTP status code.
// The services translate these into coded domain errors; the status code is
// kept so infrastructure failures can pass through an API layer unmapped.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Sentinel errors. Store implementations return these values directly so
// callers can compare with errors.Is.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	// ErrSubPath is returned when a base path registration would nest a
	// registered root inside another.
	ErrSubPath = &Error{
		Code:    http.StatusConflict,
		Message: "path is contained in a registered base path",
	}

	// ErrInUse is returned when a delete is blocked by dependent rows.
	ErrInUse = &Error{
		Code:    http.StatusConflict,
		Message: "resource is referenced by dependent rows",
	}

	// ErrNotTagged is returned when removing an association that does not exist.
	ErrNotTagged = &Error{
		Code:    http.StatusConflict,
		Message: "media does not carry this tag",
	}
)
