// Package config defines the configuration types for mdscan.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import "unicode/utf8"

// OutputFormat selects how token streams are rendered.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// TabWidth is the column tab stop used by the scanner. It is not configurable.
const TabWidth = 4

// DefaultDelimiter joins multi-fragment token values.
const DefaultDelimiter = " "

// ScannerConfig holds scanner settings. Nil pointers mean "not set" so
// layered configs can be merged.
type ScannerConfig struct {
	// Delimiter is the single character placed between collapsed value fragments.
	Delimiter string `yaml:"delimiter,omitempty"`

	// ReportErrors enables diagnostic collection.
	ReportErrors *bool `yaml:"report_errors,omitempty"`

	// TabWidth is informational and must equal TabWidth when set.
	TabWidth int `yaml:"tab_width,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Format is the default output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Color controls styled output.
	Color ColorMode `yaml:"color,omitempty"`

	// LogLevel is the default log level.
	LogLevel string `yaml:"log_level,omitempty"`

	// ShowTrivia includes whitespace and newline tokens in output.
	ShowTrivia *bool `yaml:"show_trivia,omitempty"`

	// DetectLanguages annotates code fences with a resolved language.
	DetectLanguages *bool `yaml:"detect_languages,omitempty"`

	// Scanner configures the scanning engine.
	Scanner ScannerConfig `yaml:"scanner,omitempty"`
}

// NewConfig returns a Config with every field set to its default.
func NewConfig() *Config {
	return &Config{
		Format:          FormatText,
		Color:           ColorAuto,
		LogLevel:        "info",
		ShowTrivia:      boolPtr(true),
		DetectLanguages: boolPtr(true),
		Scanner: ScannerConfig{
			Delimiter:    DefaultDelimiter,
			ReportErrors: boolPtr(true),
			TabWidth:     TabWidth,
		},
	}
}

// DelimiterRune returns the configured delimiter, or the default space when
// unset or not exactly one character.
func (c *Config) DelimiterRune() rune {
	d := c.Scanner.Delimiter
	if utf8.RuneCountInString(d) != 1 {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(d)
	return r
}

// ReportErrors reports whether diagnostics are collected. Defaults to true.
func (c *Config) ReportErrors() bool {
	return boolOr(c.Scanner.ReportErrors, true)
}

// ShowTriviaTokens reports whether trivia tokens are rendered. Defaults to true.
func (c *Config) ShowTriviaTokens() bool {
	return boolOr(c.ShowTrivia, true)
}

// DetectFenceLanguages reports whether fences are annotated. Defaults to true.
func (c *Config) DetectFenceLanguages() bool {
	return boolOr(c.DetectLanguages, true)
}

func boolPtr(b bool) *bool { return &b }

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
