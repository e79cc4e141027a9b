package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdscan/pkg/token"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // LOC, KIND, TEXT, VALUE, FLAGS
	minLocWidth      = 7
	minKindWidth     = 10
	minTextWidth     = 16
	minValueWidth    = 8
	minFlagsWidth    = 8
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TokenRow is one row of the token table. Text and Value are already quoted.
type TokenRow struct {
	Location string
	Kind     token.Kind
	Text     string
	Value    string
	Flags    string
}

// TableFormatter formats token streams as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	loc, kind, text, value, flags int
}

// FormatTable renders rows with a header and separators. No rows yield "".
func (t *TableFormatter) FormatTable(rows []TokenRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.line(widths, "LOC", "KIND", "TEXT", "VALUE", "FLAGS")))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		kindCell := fmt.Sprintf("%-*s", widths.kind, truncateString(row.Kind.String(), widths.kind))
		fmt.Fprintf(&builder, " %-*s  %s  %-*s  %s  %s\n",
			widths.loc, truncateString(row.Location, widths.loc),
			t.styles.KindStyle(row.Kind).Render(kindCell),
			widths.text, truncateString(row.Text, widths.text),
			t.styles.Value.Render(fmt.Sprintf("%-*s", widths.value, truncateString(row.Value, widths.value))),
			t.styles.Flags.Render(truncateString(row.Flags, widths.flags)),
		)
	}

	builder.WriteString(t.separator(widths))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) line(widths columnWidths, loc, kind, text, value, flags string) string {
	return fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.loc, loc,
		widths.kind, kind,
		widths.text, text,
		widths.value, value,
		widths.flags, flags,
	)
}

func (t *TableFormatter) separator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth(widths)))
}

// calculateColumnWidths sizes columns to content, then shrinks the free-text
// columns (flags, value, text) to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TokenRow) columnWidths {
	widths := columnWidths{
		loc:   minLocWidth,
		kind:  minKindWidth,
		text:  minTextWidth,
		value: minValueWidth,
		flags: minFlagsWidth,
	}

	for _, row := range rows {
		widths.loc = max(widths.loc, len(row.Location))
		widths.kind = max(widths.kind, len(row.Kind.String()))
		widths.text = max(widths.text, len(row.Text))
		widths.value = max(widths.value, len(row.Value))
		widths.flags = max(widths.flags, len(row.Flags))
	}

	for _, shrink := range []struct {
		col *int
		min int
	}{
		{&widths.flags, minFlagsWidth},
		{&widths.value, minValueWidth},
		{&widths.text, minTextWidth},
	} {
		if excess := totalWidth(widths) - t.termWidth; excess > 0 {
			*shrink.col = max(shrink.min, *shrink.col-excess)
		}
	}

	return widths
}

func totalWidth(widths columnWidths) int {
	return widths.loc + widths.kind + widths.text + widths.value + widths.flags +
		tablePadding*tableColumnCount
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
