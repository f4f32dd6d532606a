package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. NotFound covers a missing child, a child
// owned by another user and a missing sub-record alike.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal failure")
)

// Error carries a short user facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(resource string) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

func InvalidInput(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// PublicMessage returns the message safe to show to the caller. Anything that
// is not a classified domain error is reported generically.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != ErrInternal {
		return de.Message
	}
	return "Internal Server Error"
}
