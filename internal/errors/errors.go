// Package errors provides standardized domain errors with codes for the
// media catalog layer.
//
// Usage:
//
//	// In services - return typed errors
//	if inUse {
//	    return errors.InUse("base path has media files")
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrAlreadyExists) {
//	    ...
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeNotFound:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the catalog. Each enumerated failure mode of
// the registries has its own code so callers can tell, say, an over-long
// name from an over-long description without parsing messages.
const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeInUse         Code = "IN_USE"
	CodeValidation    Code = "VALIDATION"
	CodeInternal      Code = "INTERNAL"

	// Identifier and reference validation.
	CodeInvalidID         Code = "INVALID_ID"
	CodeInvalidCategoryID Code = "INVALID_CATEGORY_ID"
	CodeInvalidBasePathID Code = "INVALID_BASE_PATH_ID"

	// String field validation.
	CodeInvalidName        Code = "INVALID_NAME"
	CodeNameTooLong        Code = "NAME_TOO_LONG"
	CodeNameTooShort       Code = "NAME_TOO_SHORT"
	CodeDescriptionTooLong Code = "DESCRIPTION_TOO_LONG"
	CodeInvalidColor       Code = "INVALID_COLOR"

	// Base path registration.
	CodeInvalidPath   Code = "INVALID_PATH"
	CodePathNotFound  Code = "PATH_NOT_FOUND"
	CodeNotADirectory Code = "NOT_A_DIRECTORY"
	CodeNotAbsolute   Code = "NOT_ABSOLUTE"
	CodeSubPath       Code = "SUB_PATH"

	// Media fields.
	CodeInvalidRelativePath Code = "INVALID_RELATIVE_PATH"
	CodeInvalidWidth        Code = "INVALID_WIDTH"
	CodeInvalidHeight       Code = "INVALID_HEIGHT"
	CodeInvalidSize         Code = "INVALID_SIZE"
	CodeInvalidMark         Code = "INVALID_MARK"

	// Tagging.
	CodeAlreadyTagged Code = "ALREADY_TAGGED"
	CodeNotTagged     Code = "NOT_TAGGED"
	CodeNoTags        Code = "NO_TAGS"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
// The catalog itself has no HTTP surface; this is for the API layer above.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodePathNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeInUse, CodeSubPath, CodeAlreadyTagged, CodeNotTagged:
		return http.StatusConflict
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Error is a domain error with a code, message, and optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrInUse         = &Error{Code: CodeInUse, Message: "in use"}
	ErrValidation    = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &Error{Code: CodeInternal, Message: "internal error"}

	ErrInvalidID         = &Error{Code: CodeInvalidID, Message: "invalid id"}
	ErrInvalidCategoryID = &Error{Code: CodeInvalidCategoryID, Message: "invalid category id"}
	ErrInvalidBasePathID = &Error{Code: CodeInvalidBasePathID, Message: "invalid base path id"}

	ErrInvalidName        = &Error{Code: CodeInvalidName, Message: "invalid name"}
	ErrNameTooLong        = &Error{Code: CodeNameTooLong, Message: "name too long"}
	ErrNameTooShort       = &Error{Code: CodeNameTooShort, Message: "name to search too short"}
	ErrDescriptionTooLong = &Error{Code: CodeDescriptionTooLong, Message: "description too long"}
	ErrInvalidColor       = &Error{Code: CodeInvalidColor, Message: "invalid color"}

	ErrInvalidPath   = &Error{Code: CodeInvalidPath, Message: "invalid path"}
	ErrPathNotFound  = &Error{Code: CodePathNotFound, Message: "path does not exist"}
	ErrNotADirectory = &Error{Code: CodeNotADirectory, Message: "path is not a directory"}
	ErrNotAbsolute   = &Error{Code: CodeNotAbsolute, Message: "path is not absolute"}
	ErrSubPath       = &Error{Code: CodeSubPath, Message: "path is contained in a registered base path"}

	ErrInvalidRelativePath = &Error{Code: CodeInvalidRelativePath, Message: "invalid relative path"}
	ErrInvalidWidth        = &Error{Code: CodeInvalidWidth, Message: "invalid width"}
	ErrInvalidHeight       = &Error{Code: CodeInvalidHeight, Message: "invalid height"}
	ErrInvalidSize         = &Error{Code: CodeInvalidSize, Message: "invalid size"}
	ErrInvalidMark         = &Error{Code: CodeInvalidMark, Message: "invalid mark"}

	ErrAlreadyTagged = &Error{Code: CodeAlreadyTagged, Message: "media already tagged"}
	ErrNotTagged     = &Error{Code: CodeNotTagged, Message: "media not tagged"}
	ErrNoTags        = &Error{Code: CodeNoTags, Message: "no tags provided"}
)

// Constructor functions for creating errors with custom messages.

// New creates an error with an arbitrary code.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an error with an arbitrary code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// AlreadyExistsf creates an already exists error with formatted message.
func AlreadyExistsf(format string, args ...any) *Error {
	return &Error{Code: CodeAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// InUse creates an in use error.
func InUse(msg string) *Error {
	return &Error{Code: CodeInUse, Message: msg}
}

// InUsef creates an in use error with formatted message.
func InUsef(format string, args ...any) *Error {
	return &Error{Code: CodeInUse, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a generic validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a generic validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
