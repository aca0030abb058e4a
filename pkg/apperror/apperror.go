package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can decide how to recover from it.
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindReference          Kind = "REFERENCE"
	KindUniqueness         Kind = "UNIQUENESS"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindConflict           Kind = "CONFLICT"
	KindDependencyExists   Kind = "DEPENDENCY_EXISTS"
	KindForbidden          Kind = "FORBIDDEN"
	KindConfiguration      Kind = "CONFIGURATION"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
)

// Sentinels for errors.Is; matching is by Kind only.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrReference          = &Error{Kind: KindReference}
	ErrUniqueness         = &Error{Kind: KindUniqueness}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidTransition  = &Error{Kind: KindInvalidTransition}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrDependencyExists   = &Error{Kind: KindDependencyExists}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrConfiguration      = &Error{Kind: KindConfiguration}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
)

// Error is the single error type returned across the store boundary.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewReference(message string) *Error {
	return &Error{Kind: KindReference, Message: message}
}

func NewUniqueness(message string) *Error {
	return &Error{Kind: KindUniqueness, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewInvalidTransition(message string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewDependencyExists(message string) *Error {
	return &Error{Kind: KindDependencyExists, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewConfiguration(message string, err error) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Err: err}
}

func NewStorageUnavailable(message string, err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsRetryable reports whether the operation may succeed if repeated.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindStorageUnavailable, KindConflict:
		return true
	}
	return false
}
