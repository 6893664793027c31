package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on it without inspecting concrete types.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindInvalidAction     Kind = "INVALID_ACTION"
	KindNotFound          Kind = "NOT_FOUND"
	KindIllegalTransition Kind = "ILLEGAL_TRANSITION"
	KindConflict          Kind = "CONFLICT"
	KindPersistence       Kind = "PERSISTENCE"
)

// Error is the single error type returned across operation boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrInvalidAction     = &Error{Kind: KindInvalidAction}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrIllegalTransition = &Error{Kind: KindIllegalTransition}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrPersistence       = &Error{Kind: KindPersistence}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// Persistence wraps an underlying storage failure.
func Persistence(err error, format string, args ...any) *Error {
	return Wrap(KindPersistence, err, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors outside the taxonomy are reported as persistence failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}
