package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pdf-fusion/internal/domain"
)

// OutputStore writes finished documents to the local filesystem. Each file
// is written to a temporary sibling and renamed into place, so a failed
// write never leaves a truncated PDF behind.
type OutputStore struct {
	permFile os.FileMode
	permDir  os.FileMode
	bufSize  int
	logger   domain.Logger
}

// NewOutputStore creates a filesystem output store
func NewOutputStore(logger domain.Logger) *OutputStore {
	return &OutputStore{
		permFile: 0o644,
		permDir:  0o755,
		bufSize:  64 * 1024,
		logger:   logger,
	}
}

// Save writes src to path, creating the parent folder when needed and
// replacing any existing file.
func (s *OutputStore) Save(ctx context.Context, path string, src io.WriterTo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.permDir); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, s.permFile)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, s.bufSize)
	n, err := src.WriteTo(bw)
	if err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	s.logger.Debug("Output written", "path", path, "bytes", n)
	return nil
}
