package repository

import (
	"context"
	"fmt"
	"time"

	"pdf-fusion/internal/domain"
)

const mergeRecordsTable = "merge_records"

// mergeRecordRow is the merge_records table layout
type mergeRecordRow struct {
	OutputPath  string   `json:"output_path"`
	SourcePaths []string `json:"source_paths"`
	PageCount   int      `json:"page_count"`
	MergedAt    string   `json:"merged_at"`
}

// SupabaseMergeRecordRepository mirrors merge records into a Supabase table.
// The table is write-only from this service's point of view.
type SupabaseMergeRecordRepository struct {
	client *SupabaseClient
	logger domain.Logger
}

// NewSupabaseMergeRecordRepository creates the mirror repository
func NewSupabaseMergeRecordRepository(client *SupabaseClient, logger domain.Logger) *SupabaseMergeRecordRepository {
	return &SupabaseMergeRecordRepository{
		client: client,
		logger: logger,
	}
}

// Append inserts one row per merge
func (r *SupabaseMergeRecordRepository) Append(ctx context.Context, record *domain.MergeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db := r.client.DB()
	if db == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := toMergeRecordRow(record)
	_, _, err := db.From(mergeRecordsTable).Insert(row, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("insert merge record: %w", err)
	}

	r.logger.Debug("Merge record mirrored", "table", mergeRecordsTable, "output", record.OutputPath)
	return nil
}

func toMergeRecordRow(record *domain.MergeRecord) mergeRecordRow {
	sources := record.SourcePaths
	if sources == nil {
		sources = []string{}
	}
	return mergeRecordRow{
		OutputPath:  record.OutputPath,
		SourcePaths: sources,
		PageCount:   record.PageCount,
		MergedAt:    record.MergedAt.UTC().Format(time.RFC3339Nano),
	}
}
