// Package fsutil reads Markdown documents from disk for scanning.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultMaxBytes is the largest document ReadFile accepts by default.
const DefaultMaxBytes = 64 << 20

// sniffLen is how many leading bytes are checked for binary content.
const sniffLen = 8000

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the size limit.
	ErrTooLarge = errors.New("file too large")

	// ErrBinary indicates the file looks like binary data rather than text.
	ErrBinary = errors.New("file appears to be binary")
)

// FileInfo captures the state of a document when it was read.
type FileInfo struct {
	// Path is the path the document was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64
}

// ReadOptions limits what ReadFile accepts.
type ReadOptions struct {
	// MaxBytes rejects larger files. Zero means DefaultMaxBytes; negative disables the limit.
	MaxBytes int64

	// AllowBinary skips the NUL byte check.
	AllowBinary bool
}

// ReadFile reads a document and returns its content along with metadata.
func ReadFile(ctx context.Context, path string, opts ReadOptions) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	limit := opts.MaxBytes
	if limit == 0 {
		limit = DefaultMaxBytes
	}
	if limit > 0 && stat.Size() > limit {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, stat.Size(), limit)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	if !opts.AllowBinary && IsBinary(content) {
		return nil, nil, fmt.Errorf("%w: %s", ErrBinary, path)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
	}

	return content, info, nil
}

// ReadAll reads a document from r, applying the same limits as ReadFile.
func ReadAll(r io.Reader, opts ReadOptions) ([]byte, error) {
	limit := opts.MaxBytes
	if limit == 0 {
		limit = DefaultMaxBytes
	}
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if limit > 0 && int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrTooLarge, limit)
	}
	if !opts.AllowBinary && IsBinary(content) {
		return nil, fmt.Errorf("%w: input", ErrBinary)
	}
	return content, nil
}

// IsBinary reports whether content has a NUL byte near its start.
func IsBinary(content []byte) bool {
	if len(content) > sniffLen {
		content = content[:sniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
