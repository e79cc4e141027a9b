package pretty

import (
	"fmt"
	"strings"
	"time"
)

// ScanStats summarizes one or more scanned documents.
type ScanStats struct {
	Files       int
	Bytes       int
	Tokens      int
	Diagnostics int
	Duration    time.Duration
}

// FormatSummaryOneLine formats scan statistics as a single line.
// Example: "152 tokens, 1 diagnostic in 2 files (3.1KB, 1.2ms)".
func (s *Styles) FormatSummaryOneLine(stats ScanStats) string {
	parts := []string{fmt.Sprintf("%d %s", stats.Tokens, plural(stats.Tokens, "token"))}

	if stats.Diagnostics == 0 {
		parts = append(parts, s.Success.Render("no diagnostics"))
	} else {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s", stats.Diagnostics, plural(stats.Diagnostics, "diagnostic"))))
	}

	line := strings.Join(parts, ", ") + fmt.Sprintf(" in %d %s", stats.Files, plural(stats.Files, "file"))

	var details []string
	if stats.Bytes > 0 {
		details = append(details, formatBytes(stats.Bytes))
	}
	if stats.Duration > 0 {
		details = append(details, stats.Duration.Round(time.Microsecond).String())
	}
	if len(details) > 0 {
		line += s.Dim.Render(" (" + strings.Join(details, ", ") + ")")
	}

	return line + "\n"
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGTPE"[exp])
}
