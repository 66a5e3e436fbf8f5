package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the user-facing outcomes the API
// distinguishes. Every negative path in the services maps to exactly one kind.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// AppError is the application error carried from services to handlers.
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by kind so sentinel-style comparisons work.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// Unauthenticated carries a fixed message: callers must not be able to tell
// a missing credential from an expired or tampered one.
func Unauthenticated(err error) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: "could not validate credentials", Err: err}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf extracts the kind from any error; unclassified errors are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
