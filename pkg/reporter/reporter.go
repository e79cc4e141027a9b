// Package reporter renders scanned token streams and scanner diagnostics.
package reporter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yaklabco/mdscan/pkg/scanner"
	"github.com/yaklabco/mdscan/pkg/token"
)

// Document is one scanned source.
type Document struct {
	// Path names the source; "-" or "" for stdin.
	Path string

	Source      string
	Tokens      []token.Token
	Diagnostics []scanner.Diagnostic

	// Duration is the time spent scanning, zero when not measured.
	Duration time.Duration

	lines []int
}

// Scan scans source with opts and returns the resulting Document.
func Scan(path, source string, opts scanner.Options) *Document {
	start := time.Now()
	tokens, diagnostics := scanner.Collect(source, opts)
	return &Document{
		Path:        path,
		Source:      source,
		Tokens:      tokens,
		Diagnostics: diagnostics,
		Duration:    time.Since(start),
	}
}

// Position converts a byte offset to a 1-based line and 1-based byte column.
func (d *Document) Position(offset int) (line, column int) {
	if d.lines == nil {
		d.lines = append(d.lines, 0)
		for i := 0; i < len(d.Source); i++ {
			switch d.Source[i] {
			case '\n':
				d.lines = append(d.lines, i+1)
			case '\r':
				if i+1 < len(d.Source) && d.Source[i+1] == '\n' {
					i++
				}
				d.lines = append(d.lines, i+1)
			}
		}
	}
	offset = min(max(offset, 0), len(d.Source))
	idx := sort.SearchInts(d.lines, offset+1) - 1
	return idx + 1, offset - d.lines[idx] + 1
}

// SourceLine returns the text of a 1-based line without its terminator.
func (d *Document) SourceLine(line int) string {
	d.Position(0)
	if line < 1 || line > len(d.lines) {
		return ""
	}
	start := d.lines[line-1]
	end := len(d.Source)
	if line < len(d.lines) {
		end = d.lines[line]
	}
	text := d.Source[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text
}

func (d *Document) displayPath() string {
	if d.Path == "" || d.Path == "-" {
		return "<stdin>"
	}
	return d.Path
}

// Reporter formats and writes scan results.
type Reporter interface {
	// ReportTokens writes token streams. It returns the number of tokens written.
	ReportTokens(ctx context.Context, docs []*Document) (int, error)

	// ReportDiagnostics writes diagnostics. It returns the number written.
	ReportDiagnostics(ctx context.Context, docs []*Document) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// visible returns the tokens to render, honoring ShowTrivia. EndOfFile is kept.
func visible(tokens []token.Token, showTrivia bool) []int {
	idx := make([]int, 0, len(tokens))
	for i, tk := range tokens {
		if !showTrivia && tk.Kind.IsTrivia() {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}
