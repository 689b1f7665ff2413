// Package errors provides the coded error type shared by beltgrid's script
// loader, render pipeline, CLI and preview server.
//
// Every error that reaches a user carries a [Code]. Codes group into a
// [Kind], and the outer surfaces translate kinds rather than individual
// codes: the CLI turns a kind into a process exit status with [ExitCode],
// and the preview server turns it into an HTTP status.
//
//	err := errors.New(errors.ErrCodeInvalidScript, "step %d: unknown op %q", i, op)
//	errors.KindOf(err) // errors.KindInvalid
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read script %s", path)
//	errors.UserMessage(err) // "read script loop.toml: open loop.toml: no such file or directory"
//
// Belt placement itself never returns errors: every grid operation is total,
// and the one invariant violation (a belt whose input equals its output) is
// a panic in package belt.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidScript    Code = "INVALID_SCRIPT"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind groups codes by who has to act on them.
type Kind int

const (
	// KindInternal covers uncoded errors and failures of beltgrid itself.
	KindInternal Kind = iota
	// KindUsage is a malformed request: bad flag, coordinate, path or format.
	KindUsage
	// KindInvalid is a well-formed request whose script or config is wrong.
	KindInvalid
	// KindNotFound is a missing file or an empty cell.
	KindNotFound
)

// Kind reports the group c belongs to.
func (c Code) Kind() Kind {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return KindUsage
	case ErrCodeInvalidScript, ErrCodeInvalidDirection, ErrCodeInvalidConfig:
		return KindInvalid
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return KindNotFound
	}
	return KindInternal
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// KindOf classifies err by its outermost code. Uncoded errors are internal.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for usage
// errors, 3 for invalid scripts or config, 4 for missing files and 1 for
// everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindUsage:
		return 2
	case KindInvalid:
		return 3
	case KindNotFound:
		return 4
	}
	return 1
}

// UserMessage renders err without codes, joining wrapped messages with ": ".
func UserMessage(err error) string {
	e, ok := outermost(err)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
