package runner

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdscan/pkg/fsutil"
	"github.com/yaklabco/mdscan/pkg/reporter"
)

// FileOutcome is the scan of one discovered file.
type FileOutcome struct {
	// Path is the absolute path that was discovered.
	Path string

	// Document holds the scan. Nil if Error is set.
	Document *reporter.Document

	// Info describes the file as it was read.
	Info *fsutil.FileInfo

	// Error is set if the file could not be read.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesScanned is the number of files successfully scanned.
	FilesScanned int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithDiagnostics is the number of files with at least one diagnostic.
	FilesWithDiagnostics int

	// Bytes is the total size of every scanned file.
	Bytes int

	// Tokens is the total number of tokens, including each EndOfFile.
	Tokens int

	// Diagnostics is the total number of diagnostics across all files.
	Diagnostics int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Documents returns the successfully scanned documents in path order.
func (r *Result) Documents() []*reporter.Document {
	if r == nil {
		return nil
	}
	docs := make([]*reporter.Document, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Document != nil {
			docs = append(docs, f.Document)
		}
	}
	return docs
}

// Err joins the read errors of every failed file, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Error))
		}
	}
	return errors.Join(errs...)
}

// HasDiagnostics reports whether any diagnostics were found.
func (r *Result) HasDiagnostics() bool {
	if r == nil {
		return false
	}
	return r.Stats.Diagnostics > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	doc := outcome.Document
	r.Stats.FilesScanned++
	r.Stats.Bytes += len(doc.Source)
	r.Stats.Tokens += len(doc.Tokens)
	r.Stats.Diagnostics += len(doc.Diagnostics)
	if len(doc.Diagnostics) > 0 {
		r.Stats.FilesWithDiagnostics++
	}
}
