// Package errors provides coded, structured errors for the lime toolkit.
//
// Overview:
//   - Responsibility: Classify failures so callers can branch on a stable code
//   - Key Types: Code for classification, E for the structured error value
//   - Concurrency Model: All functions are safe for concurrent use
//   - Error Semantics: Compatible with errors.Is/As and %w wrapping
//   - Performance Notes: Single allocation per error value
//
// Usage:
//
//	err := errors.New(errors.CodeNotFound, "no factory registered for adapter")
//	if errors.CodeOf(err) == errors.CodeNotFound { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for programmatic handling.
type Code string

// Codes used across the toolkit.
const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnimplemented   Code = "UNIMPLEMENTED"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeInternal        Code = "INTERNAL"
	CodeAborted         Code = "ABORTED"
)

// E is a structured error carrying a code, the failing operation,
// a message, and an optional cause.
type E struct {
	Code Code   // Error classification code
	Op   string // Operation that failed (e.g., "registryx.Resolve")
	Msg  string // Human-readable message
	Err  error  // Underlying cause (may be nil)
}

// Error implements the error interface.
func (e *E) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
}

// Unwrap returns the underlying cause for errors.Is/As traversal.
func (e *E) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and message.
func New(code Code, msg string) error {
	return &E{Code: code, Msg: msg}
}

// Newf creates an error with the given code and a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &E{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and the operation that failed.
// Returns nil when err is nil.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{Code: code, Op: op, Err: err}
}

// CodeOf returns the code of err, walking the wrap chain.
// Errors without a code report CodeInternal; nil reports the empty code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *E
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
