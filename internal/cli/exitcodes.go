package cli

import (
	"errors"
	"strings"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected action failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, no --owner, bad arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Workspace, todo or subtask not found, unknown preview ID,
	// or a resource owned by somebody else.
	ExitNotFound = 3

	// ExitValidation indicates a validation error.
	// Use for: Empty or too long names, already at the top or bottom.
	ExitValidation = 5
)

// exitError carries the process exit code for a failed command
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Exit wraps err so that ExitCode reports code for it
func Exit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// Reported reports whether err was already written through an OutputFormatter
func Reported(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.reported
}

// ExitCode maps an error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if isUsageError(err) {
		return ExitUsage
	}
	return ExitError
}

// isUsageError recognizes the argument errors cobra builds itself
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"required flag", "unknown command", "unknown flag", "unknown shorthand flag", "accepts ", "requires at least", "invalid argument", "flag needs an argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
