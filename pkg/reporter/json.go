package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdscan/pkg/langdetect"
)

// jsonSchemaVersion versions the JSON document layout.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents a single document.
type JSONFile struct {
	Path        string           `json:"path"`
	Tokens      []JSONToken      `json:"tokens,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
}

// JSONToken represents a single token.
type JSONToken struct {
	Kind      string             `json:"kind"`
	Start     int                `json:"start"`
	End       int                `json:"end"`
	Line      int                `json:"line"`
	Column    int                `json:"column"`
	Text      string             `json:"text"`
	Value     *string            `json:"value,omitempty"`
	Flags     []string           `json:"flags,omitempty"`
	RunLength int                `json:"runLength,omitempty"`
	ListStart int                `json:"listStart,omitempty"`
	Language  *langdetect.Result `json:"language,omitempty"`
}

// JSONDiagnostic represents a single scanner diagnostic.
type JSONDiagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Files       int `json:"files"`
	Bytes       int `json:"bytes"`
	Tokens      int `json:"tokens"`
	Diagnostics int `json:"diagnostics"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportTokens implements Reporter.
func (r *JSONReporter) ReportTokens(ctx context.Context, docs []*Document) (int, error) {
	output := r.buildOutput(docs, true)
	if err := r.encode(ctx, output); err != nil {
		return 0, err
	}
	return output.Summary.Tokens, nil
}

// ReportDiagnostics implements Reporter.
func (r *JSONReporter) ReportDiagnostics(ctx context.Context, docs []*Document) (int, error) {
	output := r.buildOutput(docs, false)
	if err := r.encode(ctx, output); err != nil {
		return 0, err
	}
	return output.Summary.Diagnostics, nil
}

func (r *JSONReporter) encode(ctx context.Context, output *JSONOutput) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(docs []*Document, withTokens bool) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFile, 0, len(docs)),
	}

	for _, doc := range docs {
		file := JSONFile{
			Path:        doc.displayPath(),
			Diagnostics: make([]JSONDiagnostic, 0, len(doc.Diagnostics)),
		}

		if withTokens {
			file.Tokens = r.buildTokens(doc)
			output.Summary.Tokens += len(file.Tokens)
		}

		for _, d := range doc.Diagnostics {
			line, column := doc.Position(d.Start)
			file.Diagnostics = append(file.Diagnostics, JSONDiagnostic{
				Code:    d.Code.String(),
				Message: d.Message,
				Start:   d.Start,
				End:     d.End,
				Line:    line,
				Column:  column,
			})
		}

		output.Summary.Files++
		output.Summary.Bytes += len(doc.Source)
		output.Summary.Diagnostics += len(file.Diagnostics)
		output.Files = append(output.Files, file)
	}

	return output
}

func (r *JSONReporter) buildTokens(doc *Document) []JSONToken {
	shown := visible(doc.Tokens, r.opts.ShowTrivia)
	languages := languagesFor(doc, r.opts.DetectLanguages)

	tokens := make([]JSONToken, 0, len(shown))
	for _, i := range shown {
		tk := doc.Tokens[i]
		line, _ := doc.Position(tk.StartOffset)

		jt := JSONToken{
			Kind:      tk.Kind.String(),
			Start:     tk.StartOffset,
			End:       tk.EndOffset,
			Line:      line,
			Column:    tk.Column,
			Text:      tk.Text(doc.Source),
			Flags:     tk.Flags.Names(),
			RunLength: tk.Flags.RunLength(),
			ListStart: tk.ListStart,
		}
		if tk.HasValue {
			value := tk.Value
			jt.Value = &value
		}
		if lang, ok := languages[i]; ok {
			jt.Language = &lang
		}
		tokens = append(tokens, jt)
	}
	return tokens
}
