package configloader

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdscan/internal/logging"
	"github.com/yaklabco/mdscan/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "scanner.delimiter").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins all validation errors, or returns nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return joinErrors(errs)
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, table, json", cfg.Format))
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	if cfg.LogLevel != "" && !logging.IsValidLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel,
			fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel))
	}

	if d := cfg.Scanner.Delimiter; d != "" && utf8.RuneCountInString(d) != 1 {
		result.addError("scanner.delimiter", d,
			fmt.Sprintf("delimiter %q must be a single character", d))
	}

	if w := cfg.Scanner.TabWidth; w != 0 && w != config.TabWidth {
		result.addError("scanner.tab_width", w,
			fmt.Sprintf("tab_width is fixed at %d", config.TabWidth))
	}

	if cfg.Scanner.ReportErrors != nil && !*cfg.Scanner.ReportErrors && cfg.Format == config.FormatJSON {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "scanner.report_errors",
			Value:   false,
			Message: "diagnostics are disabled; json output will carry an empty diagnostics list",
		})
	}

	return result
}

// ValidateWithFile validates cfg and records filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}
