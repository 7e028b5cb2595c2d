package domain

import (
	"context"
	"strings"
	"time"
)

// MergeRequest describes one merge attempt.
type MergeRequest struct {
	Files        []SourceFile
	OutputName   string
	OutputFolder string
}

// Validate checks that every required input is present.
func (r MergeRequest) Validate() error {
	var missing []string
	if len(r.Files) == 0 {
		missing = append(missing, "files")
	}
	if strings.TrimSpace(r.OutputName) == "" {
		missing = append(missing, "output_name")
	}
	if strings.TrimSpace(r.OutputFolder) == "" {
		missing = append(missing, "output_folder")
	}
	if len(missing) > 0 {
		return &MissingInputError{Fields: missing}
	}
	return nil
}

// MergedFile reports how many pages a source contributed.
type MergedFile struct {
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	Pages     int    `json:"pages_merged"`
}

// MergeResult is returned by a successful merge.
type MergeResult struct {
	OutputPath string       `json:"output_path"`
	PageCount  int          `json:"page_count"`
	Files      []MergedFile `json:"files"`
	RemoteURL  string       `json:"remote_url,omitempty"`
}

// MergeRecord is the audit entry written after every successful merge.
type MergeRecord struct {
	MergedAt    time.Time `json:"merged_at"`
	OutputPath  string    `json:"output_path"`
	SourcePaths []string  `json:"source_paths"`
	PageCount   int       `json:"page_count"`
}

// MergeRecordRepository persists merge records. Records are append-only.
type MergeRecordRepository interface {
	Append(ctx context.Context, record *MergeRecord) error
}

// MergeService merges a selection into one document.
type MergeService interface {
	Merge(ctx context.Context, req MergeRequest) (*MergeResult, error)
}
