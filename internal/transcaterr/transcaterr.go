// Package transcaterr defines the error-kind taxonomy shared by every core
// package: NotFound, InvalidInput, Corrupt, Internal.
//
// Callers branch on classification with errors.As against *Error, or with
// IsKind; never by comparing strings.
package transcaterr

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// KindNotFound marks an unknown stop/bus name or an unreachable route.
	KindNotFound Kind = iota
	// KindInvalidInput marks a malformed request (empty stop name, etc.).
	KindInvalidInput
	// KindCorrupt marks persistent state that cannot be parsed.
	KindCorrupt
	// KindInternal marks a logic invariant violation that should not occur.
	KindInternal
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindCorrupt:
		return "corrupt"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind, so callers can branch on
// classification without parsing message text.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

// Kind reports the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err classifies as kind: it walks the wrapped chain
// via single-cause Unwrap, stops at the first *Error it finds, and compares
// that error's kind.
func IsKind(err error, kind Kind) bool {
	var te *Error
	for err != nil {
		if asErr, ok := err.(*Error); ok {
			te = asErr

			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}

	return te != nil && te.kind == kind
}
