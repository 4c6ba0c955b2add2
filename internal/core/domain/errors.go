package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The web adapter maps each kind to an
// HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	}
	return "internal"
}

// Error is the domain error type. Field is set when the failure is tied to a
// single input field.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a domain error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
)

// NewFieldError creates a validation error bound to a field.
func NewFieldError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound creates a not found error for the named resource.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Forbidden creates a forbidden error with a message.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Unauthorized creates an unauthorized error with a message.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Internal wraps an infrastructure failure.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// FieldError is a single field message in a validation response.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// FieldErrors collects several field failures. It satisfies error and
// matches ErrValidation.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("%s: %s", fe[0].Field, fe[0].Message)
}

func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// AsFieldErrors extracts field level messages from err. The boolean is false
// when err carries no field information.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	var de *Error
	if errors.As(err, &de) && de.Kind == KindValidation && de.Field != "" {
		return FieldErrors{{Message: de.Message, Field: de.Field}}, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for unknown errors.
func KindOf(err error) Kind {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return KindValidation
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
