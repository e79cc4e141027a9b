package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/mdscan/internal/ui/pretty"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats token streams as a styled table per document.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	text      *TextReporter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		text:      NewTextReporter(opts),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportTokens implements Reporter.
func (r *TableReporter) ReportTokens(ctx context.Context, docs []*Document) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var total int
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report tokens: %w", err)
		}

		shown := visible(doc.Tokens, r.opts.ShowTrivia)
		languages := languagesFor(doc, r.opts.DetectLanguages)

		rows := make([]pretty.TokenRow, 0, len(shown))
		for _, i := range shown {
			tk := doc.Tokens[i]
			line, _ := doc.Position(tk.StartOffset)

			row := pretty.TokenRow{
				Location: fmt.Sprintf("%d:%d", line, tk.Column+1),
				Kind:     tk.Kind,
				Text:     strconv.Quote(tk.Text(doc.Source)),
			}
			if isTokenValueShown(tk, doc.Source) {
				row.Value = strconv.Quote(tk.Value)
			}
			if tk.Flags != 0 {
				row.Flags = tk.Flags.String()
			}
			if lang := languages[i].Language; lang != "" {
				row.Flags += " lang=" + lang
			}
			rows = append(rows, row)
		}

		if len(docs) > 1 {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.Bold.Render(doc.displayPath()))
		}
		fmt.Fprint(r.bw, r.formatter.FormatTable(rows))
		total += len(rows)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats(docs, total)))
	}

	return total, nil
}

// ReportDiagnostics implements Reporter. Diagnostics are few and positional,
// so they use the text layout.
func (r *TableReporter) ReportDiagnostics(ctx context.Context, docs []*Document) (int, error) {
	return r.text.ReportDiagnostics(ctx, docs)
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
