package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrKindInvalidInput ErrorKind = "invalid_input"
	ErrKindNotFound     ErrorKind = "not_found"
	ErrKindConflict     ErrorKind = "conflict"
)

// Error is the failure type surfaced by the core operations. Every business
// failure carries a stable kind and a message suitable for the client.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

func IsInvalidInput(err error) bool {
	return IsKind(err, ErrKindInvalidInput)
}

func IsNotFound(err error) bool {
	return IsKind(err, ErrKindNotFound)
}

func IsConflict(err error) bool {
	return IsKind(err, ErrKindConflict)
}
