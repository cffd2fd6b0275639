// Package apperr carries the error taxonomy shared by services and
// controllers. Every user-visible error has a stable, translatable message
// key; internal causes are wrapped for logging and never shown to callers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindConflict
	// KindConfig marks configuration defects (an unmapped question type).
	// These are fatal to the operation and not caller-correctable.
	KindConfig
)

type Error struct {
	Kind    Kind
	Key     string // stable translatable message key, e.g. "form_not_found"
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Key, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(key, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Key: key, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(key, format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Key: key, Message: fmt.Sprintf(format, args...)}
}

func Conflict(key, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Key: key, Message: fmt.Sprintf(format, args...)}
}

func Configf(key, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Key: key, Message: fmt.Sprintf(format, args...)}
}

func Internal(key string, err error) *Error {
	return &Error{Kind: KindInternal, Key: key, Message: "internal error", Err: err}
}

// WithDetails attaches caller-facing detail strings (e.g. the invalid
// question list) and returns the same error.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

// KindOf classifies any error; non-apperr errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// KeyOf returns the stable message key, or "internal_error" for unknown errors.
func KeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	return "internal_error"
}

// DetailsOf returns attached details, if any.
func DetailsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
