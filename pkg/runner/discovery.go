package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := walker.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Files named on the command line skip the extension filter.
		if !walker.excluded(absPath) {
			walker.add(absPath)
		}
	}

	sort.Strings(walker.files)

	return walker.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

type walker struct {
	workDir    string
	extensions []string
	excludes   []glob.Glob
	follow     bool
	seen       map[string]struct{}
	dirs       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// excluded matches path, relative to the working directory, against every
// exclude pattern. A bare pattern such as "*.txt" also matches the base name.
func (w *walker) excluded(path string) bool {
	if len(w.excludes) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(path)

	for _, g := range w.excludes {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

func (w *walker) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := w.dirs[real]; ok {
			return nil
		}
		w.dirs[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && w.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				return w.walk(ctx, realPath)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if w.hasMarkdownExtension(path) && !w.excluded(path) {
			w.add(path)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

func (w *walker) hasMarkdownExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
