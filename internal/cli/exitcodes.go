package cli

import "errors"

// Exit codes for mdscan.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitDiagnostics indicates errors --strict found diagnostics.
	ExitDiagnostics = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrDiagnosticsFound is returned by errors --strict when diagnostics exist.
	ErrDiagnosticsFound = errors.New("diagnostics found")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrInput wraps failures reading input documents.
	ErrInput = errors.New("failed to read input")

	// ErrUsage wraps invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrInput):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
