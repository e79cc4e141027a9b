package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdscan/pkg/fsutil"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		content := []byte("# hello\n")
		path := writeTemp(t, content)

		got, info, err := fsutil.ReadFile(context.Background(), path, fsutil.ReadOptions{})
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}

		if info.ModTime.IsZero() {
			t.Error("ModTime should be set")
		}
	})

	t.Run("returns ErrNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"), fsutil.ReadOptions{})
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("returns ErrIsDirectory for directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir(), fsutil.ReadOptions{})
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("enforces size limit", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("0123456789"))

		_, _, err := fsutil.ReadFile(context.Background(), path, fsutil.ReadOptions{MaxBytes: 5})
		if !errors.Is(err, fsutil.ErrTooLarge) {
			t.Fatalf("expected ErrTooLarge, got %v", err)
		}

		if _, _, err := fsutil.ReadFile(context.Background(), path, fsutil.ReadOptions{MaxBytes: -1}); err != nil {
			t.Fatalf("negative limit should disable the check, got %v", err)
		}
	})

	t.Run("rejects binary content unless allowed", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("PK\x03\x04\x00\x00"))

		_, _, err := fsutil.ReadFile(context.Background(), path, fsutil.ReadOptions{})
		if !errors.Is(err, fsutil.ErrBinary) {
			t.Fatalf("expected ErrBinary, got %v", err)
		}

		if _, _, err := fsutil.ReadFile(context.Background(), path, fsutil.ReadOptions{AllowBinary: true}); err != nil {
			t.Fatalf("AllowBinary should accept NUL bytes, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("x"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, path, fsutil.ReadOptions{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	got, err := fsutil.ReadAll(strings.NewReader("abc"), fsutil.ReadOptions{})
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}

	if _, err := fsutil.ReadAll(strings.NewReader("abcdef"), fsutil.ReadOptions{MaxBytes: 3}); !errors.Is(err, fsutil.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}

	if _, err := fsutil.ReadAll(strings.NewReader("abc"), fsutil.ReadOptions{MaxBytes: 3}); err != nil {
		t.Errorf("input at the limit should be accepted, got %v", err)
	}

	if _, err := fsutil.ReadAll(strings.NewReader("a\x00b"), fsutil.ReadOptions{}); !errors.Is(err, fsutil.ErrBinary) {
		t.Errorf("expected ErrBinary, got %v", err)
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"empty", nil, false},
		{"text", []byte("# heading\n\n*emphasis*"), false},
		{"nul byte", []byte("a\x00b"), true},
		{"nul past sniff window", append([]byte(strings.Repeat("a", 9000)), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fsutil.IsBinary(tt.content); got != tt.want {
				t.Errorf("IsBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}
