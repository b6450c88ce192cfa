package flush

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable scheduler error category.
type Kind string

const (
	KindInfeasible        Kind = "INFEASIBLE"
	KindMatrixOutOfBounds Kind = "MATRIX_OUT_OF_BOUNDS"
	KindInvalidInput      Kind = "INVALID_INPUT"
)

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrInfeasible        = &Error{Kind: KindInfeasible}
	ErrMatrixOutOfBounds = &Error{Kind: KindMatrixOutOfBounds}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
)

// Error is a scheduler error with a kind and optional cause.
type Error struct {
	Kind    Kind   // Machine-readable category
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message == "":
		return string(e.Kind)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf creates an Error with the given kind and formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the kind from err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
