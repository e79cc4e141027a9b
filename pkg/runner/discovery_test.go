package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdscan/pkg/runner"
)

// makeTree creates files (with parent directories) under a fresh temp dir.
func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
	return dir
}

func assertPaths(t *testing.T, dir string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(got), got)
	}
	for i, rel := range want {
		if expected := filepath.Join(dir, rel); got[i] != expected {
			t.Errorf("file[%d] = %s, want %s", i, got[i], expected)
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"readme.md": "# Test"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"readme.md"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "readme.md")
}

func TestDiscover_ExplicitFileIgnoresExtension(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"notes.txt": "*x*"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"notes.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "notes.txt")
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"readme.md":         "",
		"docs/guide.md":     "",
		"docs/api.markdown": "",
		"docs/page.MDX":     "",
		"src/main.go":       "",
		"notes.txt":         "",
		".hidden/secret.md": "",
		".draft.md":         "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "docs/api.markdown", "docs/guide.md", "docs/page.MDX", "readme.md")
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.md": "", "b.txt": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".txt"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "b.txt")
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"readme.md":             "",
		"CHANGELOG.md":          "",
		"vendor/lib/readme.md":  "",
		"docs/guide.md":         "",
		"docs/drafts/wip.md":    "",
		"docs/drafts/nested.md": "",
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "directory tree",
			patterns: []string{"vendor/**"},
			want:     []string{"CHANGELOG.md", "docs/drafts/nested.md", "docs/drafts/wip.md", "docs/guide.md", "readme.md"},
		},
		{
			name:     "directory itself",
			patterns: []string{"docs/drafts"},
			want:     []string{"CHANGELOG.md", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:     "base name",
			patterns: []string{"readme.md"},
			want:     []string{"CHANGELOG.md", "docs/drafts/nested.md", "docs/drafts/wip.md", "docs/guide.md"},
		},
		{
			name:     "single star stays in one directory",
			patterns: []string{"docs/*.md"},
			want:     []string{"CHANGELOG.md", "docs/drafts/nested.md", "docs/drafts/wip.md", "readme.md", "vendor/lib/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := makeTree(t, tree)
			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: tt.patterns,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			assertPaths(t, dir, files, tt.want...)
		})
	}
}

func TestDiscover_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	if err == nil {
		t.Fatal("expected error for invalid exclude pattern")
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"docs/a.md": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"docs", "docs/a.md", "."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "docs/a.md")
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"real/a.md": ""})
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(dir, filepath.Join(dir, "real", "loop")); err != nil {
		t.Fatalf("setup loop: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "real/a.md")

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() with FollowSymlinks error = %v", err)
	}
	assertPaths(t, dir, files, "real/a.md")
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
