package services

import "errors"

// ErrorKind classifies failures raised by the accounting core and the auth
// service. The HTTP layer maps kinds to status codes; the core never retries.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInvalidEvent      ErrorKind = "invalid_event"
	KindInsufficientUnits ErrorKind = "insufficient_units"
	KindArithmetic        ErrorKind = "arithmetic"
	KindUnauthorized      ErrorKind = "unauthorized"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the error kind, if err (or anything it wraps) is a service
// error.
func KindOf(err error) (ErrorKind, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind, true
	}
	return "", false
}
