// Package errors defines the stable error code system for stencil.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string, part of the CLI output contract.
type Code string

const (
	EUsage Code = "E_USAGE"

	// Environment / tooling
	EGitNotInstalled Code = "E_GIT_NOT_INSTALLED"

	// Bootstrap workflow
	ENotARepo        Code = "E_NOT_A_REPO"
	ENothingToCommit Code = "E_NOTHING_TO_COMMIT"
	ERemoteExists    Code = "E_REMOTE_EXISTS"
	EAuthFailed      Code = "E_AUTH_FAILED"
	ENetwork         Code = "E_NETWORK"
	EPushRejected    Code = "E_PUSH_REJECTED"
	EInstallFailed   Code = "E_INSTALL_FAILED"

	// Scaffolding
	ETemplateNotFound Code = "E_TEMPLATE_NOT_FOUND"
	ETemplateInvalid  Code = "E_TEMPLATE_INVALID"
	EDestExists       Code = "E_DEST_EXISTS"

	// Persistence
	EStoreCorrupt Code = "E_STORE_CORRUPT"

	EInternal Code = "E_INTERNAL"
)

// Error is the standard error type carrying a stable code.
type Error struct {
	Code  Code
	Msg   string
	Cause error
}

// Error returns the stable "CODE: message" format.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping an underlying cause.
func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Cause: err}
}

// CodeOf extracts the code from err, or "" if err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode maps an error to the process exit code:
// 0 for nil, 2 for E_USAGE, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if CodeOf(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes err to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
//
// Errors without a code are printed as-is.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var e *Error
	if errors.As(err, &e) {
		fmt.Fprintf(w, "error_code: %s\n", e.Code)
		fmt.Fprintln(w, e.Msg)
		return
	}
	fmt.Fprintln(w, err.Error())
}
