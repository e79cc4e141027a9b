package pretty

import (
	"fmt"
	"strings"
)

// FormatDiagnostic formats one scanner diagnostic as
// "  path:line:col  error  message  (code)".
func (s *Styles) FormatDiagnostic(path string, line, column int, code, message string) string {
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), line, column)
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(message),
		s.Code.Render("("+code+")"),
	)
}

// FormatSourceContext formats the source line with a caret under column (1-based).
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int, noun string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, noun)))
	}
	return header
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
