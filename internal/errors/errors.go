package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned to the operating system.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (bad input, missing or
	// invalid configuration).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrConfigNotFound indicates the project has no .rules.json.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownAgent indicates an agent name is not in the supported set.
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrUnknownRegistry indicates an unrecognized registry type.
	ErrUnknownRegistry = errors.New("unknown registry type")

	// ErrRegistryUnreachable indicates the registry source could not be read.
	ErrRegistryUnreachable = errors.New("registry unreachable")

	// ErrMalformedRule indicates a rule file's frontmatter could not be parsed.
	ErrMalformedRule = errors.New("malformed rule frontmatter")
)

// ExitError wraps an error with an exit code and optional suggestion for the CLI.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and the standard
// bootstrap suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: sr init",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
