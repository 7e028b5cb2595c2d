package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"pdf-fusion/internal/domain"
)

// MergeLogTimeFormat is the timestamp layout of merge log entries.
const MergeLogTimeFormat = "2006-01-02 15:04:05.000000"

// MergeLogRepository appends merge records to a plain-text audit log. The
// file is opened and closed for every entry.
type MergeLogRepository struct {
	path   string
	logger domain.Logger
	mu     sync.Mutex
}

// NewMergeLogRepository creates a repository writing to path
func NewMergeLogRepository(path string, logger domain.Logger) *MergeLogRepository {
	return &MergeLogRepository{
		path:   path,
		logger: logger,
	}
}

// Path returns the log file location
func (r *MergeLogRepository) Path() string {
	return r.path
}

// Append writes one entry: a header line with the timestamp and output path,
// then one line per source file.
func (r *MergeLogRepository) Append(ctx context.Context, record *domain.MergeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := FormatMergeRecord(record)

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open merge log: %w", err)
	}
	if _, err := f.WriteString(entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("append merge log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close merge log: %w", err)
	}

	r.logger.Debug("Merge record appended", "log", r.path, "output", record.OutputPath)
	return nil
}

// FormatMergeRecord renders a record the way it appears in the log,
// including the blank line that separates entries.
func FormatMergeRecord(record *domain.MergeRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n[%s] Merged into: %s\n", record.MergedAt.Format(MergeLogTimeFormat), record.OutputPath)
	for _, p := range record.SourcePaths {
		fmt.Fprintf(&sb, " - %s\n", p)
	}
	return sb.String()
}
