package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error unwraps to exactly one of these, so callers can
// classify a failure with errors.Is without knowing the concrete error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("access forbidden")
	ErrValidation   = errors.New("validation failed")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Error is a typed domain failure carrying a caller-facing message.
type Error struct {
	kind error
	msg  string
}

// NewError returns an error of the given kind with msg as its text.
func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the sentinel this error belongs to.
func (e *Error) Kind() error { return e.kind }

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) error {
	return NewError(ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidStatef builds an invalid-state error from a format string.
func InvalidStatef(format string, args ...any) error {
	return NewError(ErrInvalidState, fmt.Sprintf(format, args...))
}

// Forbiddenf builds a forbidden error from a format string.
func Forbiddenf(format string, args ...any) error {
	return NewError(ErrForbidden, fmt.Sprintf(format, args...))
}

var (
	ErrVisitorNotFound     = NewError(ErrNotFound, "visitor not found")
	ErrAppointmentNotFound = NewError(ErrNotFound, "appointment not found")
	ErrPassNotFound        = NewError(ErrNotFound, "pass not found")
	ErrUserNotFound        = NewError(ErrNotFound, "user not found")

	ErrVisitorNotApproved     = NewError(ErrInvalidState, "visitor not approved")
	ErrAppointmentNotApproved = NewError(ErrInvalidState, "appointment not approved")
	ErrPassExpiredImmutable   = NewError(ErrInvalidState, "pass has expired and can only be revoked")

	ErrPassExpired = NewError(ErrForbidden, "pass expired")
	ErrPassRevoked = NewError(ErrForbidden, "pass revoked")

	ErrInvalidPhone = NewError(ErrValidation, "phone must be a valid phone number")
)
