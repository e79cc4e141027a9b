package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/mdscan/pkg/fsutil"
	"github.com/yaklabco/mdscan/pkg/reporter"
)

// Run discovers files under opts.Paths and scans them concurrently.
// Outcomes are ordered by path regardless of completion order. Unreadable
// files are recorded in their outcome; only discovery failures and
// cancellation return an error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, workDir, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, workDir string, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}

		content, info, err := fsutil.ReadFile(ctx, path, opts.Read)
		if err != nil {
			outcome.Error = err
		} else {
			doc := reporter.Scan(displayPath(path, workDir), string(content), opts.Scanner)
			if opts.DropDiagnostics {
				doc.Diagnostics = nil
			}
			outcome.Document = doc
			outcome.Info = info
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// displayPath shortens path relative to workDir when it lies inside it.
func displayPath(path, workDir string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
