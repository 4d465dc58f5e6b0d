// Package errors provides typed application errors for the risk engine.
//
// The engine distinguishes recoverable failures (insufficient data, invalid
// input records, degenerate computations) from unexpected ones: recoverable
// kinds degrade a single sub-result and must never abort sibling
// computations.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind uint

const (
	// KindUnexpected is any failure outside the recoverable taxonomy.
	KindUnexpected Kind = iota
	// KindInsufficientData marks fewer observations than a stage's minimum.
	KindInsufficientData
	// KindInvalidInput marks a rejected input record (non-positive price,
	// negative quantity, unknown symbol).
	KindInvalidInput
	// KindDegenerate marks a computation that would divide by zero
	// (zero variance, zero portfolio value) and was replaced by a default.
	KindDegenerate
	// KindNotFound marks a missing stored entity.
	KindNotFound
)

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an unexpected error.
func New(message string) error {
	return &Error{Kind: KindUnexpected, Message: message}
}

// Newf creates an unexpected error with a formatted message.
func Newf(format string, args ...interface{}) error {
	return &Error{Kind: KindUnexpected, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a message, preserving its kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Message: message, Err: err}
}

// Wrapf wraps err with a formatted message, preserving its kind.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// InsufficientData creates a recoverable insufficient-data error.
func InsufficientData(message string) error {
	return &Error{Kind: KindInsufficientData, Message: message}
}

// InvalidInput creates a recoverable invalid-input error.
func InvalidInput(message string) error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// Degenerate creates a recoverable degenerate-computation error.
func Degenerate(message string) error {
	return &Error{Kind: KindDegenerate, Message: message}
}

// NotFound creates a not-found error.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf returns the kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Recoverable reports whether err should degrade a sub-result rather than
// surface as a top-level assessment error.
func Recoverable(err error) bool {
	switch KindOf(err) {
	case KindInsufficientData, KindInvalidInput, KindDegenerate:
		return true
	}
	return false
}
