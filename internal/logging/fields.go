package logging

// Structured field names used across commands.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldFormat = "format"
	FieldConfig = "config"

	// Scan statistics.
	FieldBytes       = "bytes"
	FieldTokens      = "tokens"
	FieldDiagnostics = "diagnostics"
	FieldDuration    = "duration"

	// Diagnostic fields.
	FieldCode   = "code"
	FieldOffset = "offset"

	// Build info.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
