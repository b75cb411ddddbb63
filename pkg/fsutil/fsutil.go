// Package fsutil reads source files as snapshots and writes them back
// atomically, refusing to overwrite a file that changed after it was read.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")

	// ErrConcurrentModification means the file changed between read and write.
	ErrConcurrentModification = errors.New("file modified during processing")
)

// Snapshot records the state of a file when it was read.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

// Read returns the content of path and a snapshot of its state.
func Read(ctx context.Context, path string) (string, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", nil, classify(path, err)
	}
	if stat.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, classify(path, err)
	}

	return string(content), &Snapshot{
		Path:    path,
		Mode:    stat.Mode().Perm(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file no longer matches the snapshot. A cheap
// metadata comparison runs first; the content hash settles the rest.
// A deleted file counts as changed.
func (s *Snapshot) Changed(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, classify(s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, classify(s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

// Replace writes content over the snapshotted file, keeping its permissions,
// unless the file changed since the snapshot was taken.
func (s *Snapshot) Replace(ctx context.Context, content string) error {
	changed, err := s.Changed(ctx)
	if err != nil {
		return err
	}
	if changed {
		return fmt.Errorf("%w: %s", ErrConcurrentModification, s.Path)
	}
	return WriteAtomic(ctx, s.Path, []byte(content), s.Mode)
}
