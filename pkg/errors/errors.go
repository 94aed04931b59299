// Package errors provides structured error types for tabplot.
//
// Every failure raised while building, composing or rendering a plot carries
// a machine-readable [Code] plus enough context (builder, column, option) for
// a caller to tell which input was wrong. Errors are raised synchronously and
// abort the current call; no partially built plot is ever returned alongside
// an error.
//
// # Error Codes
//
// The data-facing codes are:
//   - COLUMN_NOT_FOUND: a selector names a column absent from the table
//   - TYPE_MISMATCH: the column exists but cannot be coerced to the required kind
//   - OPTION_INCONSISTENT: style options conflict with each other or with the data
//   - CELL_OVERLAP: two plots were placed in overlapping grid cells
//   - EMPTY_GROUP, EMPTY_FACET: a requested partition produced no rows
//
// # Usage
//
//	err := errors.New(errors.ErrCodeColumnNotFound, "column %q not found", name)
//	if errors.Is(err, errors.ErrCodeColumnNotFound) {
//	    // Handle missing column
//	}
//
//	// Attach the failing builder once it is known
//	return errors.InBuilder(err, "scatter")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data and option errors
	ErrCodeColumnNotFound     Code = "COLUMN_NOT_FOUND"
	ErrCodeTypeMismatch       Code = "TYPE_MISMATCH"
	ErrCodeOptionInconsistent Code = "OPTION_INCONSISTENT"
	ErrCodeEmptyGroup         Code = "EMPTY_GROUP"
	ErrCodeEmptyFacet         Code = "EMPTY_FACET"

	// Grid composition errors
	ErrCodeCellOverlap Code = "CELL_OVERLAP"
	ErrCodeInvalidGrid Code = "INVALID_GRID"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code, optional context and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Builder string // Chart family that failed (optional)
	Column  string // Offending column (optional)
	Option  string // Offending style option (optional)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if e.Builder != "" {
		b.WriteString("[" + e.Builder + "] ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// ColumnNotFound reports a selector that names a missing column.
func ColumnNotFound(column string) *Error {
	return &Error{
		Code:    ErrCodeColumnNotFound,
		Message: fmt.Sprintf("column %q not found", column),
		Column:  column,
	}
}

// TypeMismatch reports a column that cannot be read as the wanted kind.
func TypeMismatch(column, want, got string) *Error {
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("column %q is %s, want %s", column, got, want),
		Column:  column,
	}
}

// Inconsistent reports a style option that conflicts with other options or the data.
func Inconsistent(option, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeOptionInconsistent,
		Message: fmt.Sprintf(format, args...),
		Option:  option,
	}
}

// InBuilder records the failing builder on err if err is an *Error without one.
// Other errors are wrapped as INTERNAL_ERROR so the builder is never lost.
func InBuilder(err error, builder string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Builder == "" {
			e.Builder = builder
		}
		return err
	}
	return &Error{Code: ErrCodeInternal, Message: "build failed", Builder: builder, Cause: err}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, qualified
// by the builder when known. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Builder != "" {
			return e.Builder + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}
