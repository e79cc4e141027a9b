// Package runner discovers Markdown documents and scans them concurrently.
package runner

import (
	"github.com/yaklabco/mdscan/pkg/fsutil"
	"github.com/yaklabco/mdscan/pkg/scanner"
)

// Options controls multi-file scanning.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// collected from directories. Defaults to DefaultExtensions().
	// Files named explicitly in Paths are scanned regardless of extension.
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, used to skip
	// files or directories. "**" crosses directory boundaries and "*" does not.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Scanner configures each document scan.
	Scanner scanner.Options

	// Read limits the documents that are accepted.
	Read fsutil.ReadOptions

	// DropDiagnostics discards scanner diagnostics from every document.
	DropDiagnostics bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdx", ".mdown", ".mkd"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
