package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by commands.
const (
	ExitCodeInvalidArgs = 1
	ExitCodeFailed      = 2
)

// NotImplementedError reports a feature that is recognised but not available for a given backend.
type NotImplementedError struct {
	MethodName string
	Backend    string
}

// Error implements the error interface for NotImplementedError.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("method %q is not implemented for %q", e.MethodName, e.Backend)
}

// NewNotImplementedError constructs a NotImplementedError.
func NewNotImplementedError(methodName, backend string) error {
	return &NotImplementedError{
		MethodName: methodName,
		Backend:    backend,
	}
}

// CommandResult is the machine-readable outcome attached to a failed command.
type CommandResult struct {
	Args    interface{} `json:"args"`
	Result  interface{} `json:"result"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// CommandError represents an error that occurred during command execution, storing relevant results.
type CommandError struct {
	ExitCode    int
	CommonError string
	Result      CommandResult
	err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.err
}

// NewCommandError creates a new CommandError instance, encapsulating args, result, and the error message.
func NewCommandError(args interface{}, result interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Result: CommandResult{
			Args:    args,
			Result:  result,
			Status:  "FAILED",
			Message: err.Error(),
		},
		err: err,
	}
}

// ExitCode extracts the exit code carried by err. Plain errors map to ExitCodeInvalidArgs.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return ExitCodeInvalidArgs
}
