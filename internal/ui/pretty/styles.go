// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/mdscan/pkg/token"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token kinds
	Markup   lipgloss.Style
	Trivia   lipgloss.Style
	HTML     lipgloss.Style
	Fence    lipgloss.Style
	Literal  lipgloss.Style
	EOF      lipgloss.Style
	Value    lipgloss.Style
	Flags    lipgloss.Style
	Language lipgloss.Style

	// Diagnostic components
	Error      lipgloss.Style
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Code       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Markup:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Trivia:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		HTML:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Fence:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Literal:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		EOF:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flags:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true),

		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Markup:         plain,
		Trivia:         plain,
		HTML:           plain,
		Fence:          plain,
		Literal:        plain,
		EOF:            plain,
		Value:          plain,
		Flags:          plain,
		Language:       plain,
		Error:          plain,
		FilePath:       plain,
		Location:       plain,
		Code:           plain,
		Message:        plain,
		SourceLine:     plain,
		Caret:          plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// KindStyle returns the style used for a token kind.
func (s *Styles) KindStyle(kind token.Kind) lipgloss.Style {
	switch {
	case kind == token.EndOfFile:
		return s.EOF
	case kind.IsTrivia():
		return s.Trivia
	case kind.IsFence():
		return s.Fence
	case kind.IsHTML():
		return s.HTML
	case kind == token.Text || kind == token.Identifier || kind == token.Unknown:
		return s.Literal
	default:
		return s.Markup
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
