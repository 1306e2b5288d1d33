// Package domainerrors provides coded domain errors. Services and domain
// logic return these so callers can branch on the failure class without
// string matching.
//
// For infrastructure facts (resource missing, wrong state), see
// pkg/platform/sentinel; those sentinels are typically wrapped with a code
// from this package before crossing a module boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// CodeValidation: a field failed a shape or range check.
	CodeValidation Code = "validation"

	// CodeInvalidInput: external input could not be parsed into a domain value.
	CodeInvalidInput Code = "invalid_input"

	// CodeInvariantViolation: an operation would break a domain invariant,
	// e.g. an illegal lifecycle transition. These are programmer errors and
	// are not expected to be retried.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeNotFound: the referenced entity does not exist.
	CodeNotFound Code = "not_found"

	// CodeConflict: the operation conflicts with existing state.
	CodeConflict Code = "conflict"

	// CodeInternal: an unexpected internal failure.
	CodeInternal Code = "internal"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/errors.As chains through the cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. Returns nil when
// err is nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	for errors.As(err, &domainErr) {
		if domainErr.Code == code {
			return true
		}
		err = domainErr.Unwrap()
		if err == nil {
			return false
		}
		domainErr = nil
	}
	return false
}

// Is delegates to errors.Is; kept here so call sites using this package
// don't need a second errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
