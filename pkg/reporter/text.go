package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdscan/internal/ui/pretty"
	"github.com/yaklabco/mdscan/pkg/token"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportTokens implements Reporter.
func (r *TextReporter) ReportTokens(ctx context.Context, docs []*Document) (_ int, err error) {
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

		if len(docs) > 1 {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(doc.displayPath(), len(shown), "token"))
		}
		for _, i := range shown {
			r.writeToken(doc, doc.Tokens[i], languages[i].Language)
		}
		total += len(shown)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats(docs, total)))
	}

	return total, nil
}

func (r *TextReporter) writeToken(doc *Document, tk token.Token, language string) {
	line, _ := doc.Position(tk.StartOffset)
	location := fmt.Sprintf("%d:%d", line, tk.Column+1)

	var builder strings.Builder
	fmt.Fprintf(&builder, "  %s  %s  %s",
		r.styles.Location.Render(fmt.Sprintf("%-8s", location)),
		r.styles.KindStyle(tk.Kind).Render(fmt.Sprintf("%-22s", tk.Kind)),
		strconv.Quote(tk.Text(doc.Source)),
	)
	if isTokenValueShown(tk, doc.Source) {
		builder.WriteString("  " + r.styles.Value.Render("value="+strconv.Quote(tk.Value)))
	}
	if tk.ListStart != 0 {
		builder.WriteString("  " + r.styles.Value.Render("start="+strconv.Itoa(tk.ListStart)))
	}
	if tk.Flags != 0 {
		builder.WriteString("  " + r.styles.Flags.Render("["+tk.Flags.String()+"]"))
	}
	if language != "" {
		builder.WriteString("  " + r.styles.Language.Render("lang="+language))
	}
	fmt.Fprintln(r.bw, builder.String())
}

// ReportDiagnostics implements Reporter.
func (r *TextReporter) ReportDiagnostics(ctx context.Context, docs []*Document) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var total, tokens int
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report diagnostics: %w", err)
		}
		tokens += len(visible(doc.Tokens, r.opts.ShowTrivia))

		if len(doc.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(doc.displayPath(), len(doc.Diagnostics), "diagnostic"))
		for _, d := range doc.Diagnostics {
			line, column := doc.Position(d.Start)
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(doc.displayPath(), line, column, d.Code.String(), d.Message))
			if r.opts.ShowContext {
				fmt.Fprint(r.bw, r.styles.FormatSourceContext(doc.SourceLine(line), column))
			}
			total++
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		s := stats(docs, tokens)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(s))
	}

	return total, nil
}

func stats(docs []*Document, tokens int) pretty.ScanStats {
	s := pretty.ScanStats{Files: len(docs), Tokens: tokens}
	for _, doc := range docs {
		s.Bytes += len(doc.Source)
		s.Diagnostics += len(doc.Diagnostics)
		s.Duration += doc.Duration
	}
	return s
}
