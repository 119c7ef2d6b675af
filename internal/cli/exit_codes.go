package cli

import "fmt"

// Exit codes for the changeset CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates fragment validation failed
	ExitValidationFailed = 1

	// ExitConfigError indicates invalid or missing configuration
	ExitConfigError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingInput indicates required input files are missing
	ExitMissingInput = 4
)

// ExitError carries a process exit code through the cobra error path.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error carrying the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
// nil maps to ExitSuccess; non-exit errors map to ExitValidationFailed.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	return ExitValidationFailed
}
