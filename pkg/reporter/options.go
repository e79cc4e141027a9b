package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowTrivia includes Whitespace and NewLine tokens.
	ShowTrivia bool

	// DetectLanguages annotates opening code fences with a resolved language.
	DetectLanguages bool

	// ShowContext prints the source line under each diagnostic (text format).
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:          os.Stdout,
		Format:          FormatText,
		Color:           "auto",
		ShowTrivia:      true,
		DetectLanguages: true,
		ShowContext:     true,
		ShowSummary:     true,
	}
}
