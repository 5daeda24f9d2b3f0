// Package clierr defines structured errors for CLI commands: a stable
// machine-readable code, a human message and an exit code.
package clierr

import "fmt"

const (
	InvalidInput    = "INVALID_INPUT"
	ConfirmationReq = "CONFIRMATION_REQUIRED"
	ConfigError     = "CONFIG_ERROR"
	StorageError    = "STORAGE_ERROR"
	InternalError   = "INTERNAL_ERROR"
)

type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code to err, keeping err reachable through errors.Is/As.
func Wrap(code string, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// ExitCode returns 2 for internal and storage failures, 1 for everything
// the user can fix.
func (e *Error) ExitCode() int {
	switch e.Code {
	case InternalError, StorageError:
		return 2
	default:
		return 1
	}
}
