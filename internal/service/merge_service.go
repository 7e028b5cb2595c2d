package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-fusion/internal/domain"
)

// MergeService concatenates the pages of a selection into one document.
type MergeService struct {
	engine    domain.PDFEngine
	store     domain.OutputStore
	records   []domain.MergeRecordRepository
	publisher domain.OutputPublisher
	logger    domain.Logger
	now       func() time.Time
}

// NewMergeService creates a merge service. Every repository in records
// receives a MergeRecord after each successful merge.
func NewMergeService(
	engine domain.PDFEngine,
	store domain.OutputStore,
	logger domain.Logger,
	records ...domain.MergeRecordRepository,
) *MergeService {
	return &MergeService{
		engine:  engine,
		store:   store,
		records: records,
		logger:  logger,
		now:     time.Now,
	}
}

// WithPublisher makes the service copy every merged output to remote storage.
func (s *MergeService) WithPublisher(publisher domain.OutputPublisher) *MergeService {
	s.publisher = publisher
	return s
}

// OutputPath normalizes the output file name and joins it with folder.
func OutputPath(name, folder string) string {
	name = strings.TrimSpace(name)
	if !domain.HasPDFExt(name) {
		name += ".pdf"
	}
	return filepath.Join(strings.TrimSpace(folder), name)
}

// Merge writes the selected pages of every file, in selection order, to one
// output document. Nothing is written unless every file could be read and
// every range parsed. A merge that selects no page returns a
// *domain.NoContentWarning and writes nothing.
func (s *MergeService) Merge(ctx context.Context, req domain.MergeRequest) (*domain.MergeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	outputPath := OutputPath(req.OutputName, req.OutputFolder)
	s.logger.Info("Merge started", "files", len(req.Files), "output", outputPath)

	writer := s.engine.NewWriter()
	result := &domain.MergeResult{
		OutputPath: outputPath,
		Files:      make([]domain.MergedFile, 0, len(req.Files)),
	}

	for _, file := range req.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := s.engine.Open(file.Path)
		if err != nil {
			s.logger.Error("Failed to read source", err, "path", file.Path)
			return nil, &domain.DocumentReadError{Path: file.Path, Err: err}
		}

		total := doc.PageCount()
		pages, err := resolvePages(file, total)
		if err != nil {
			s.logger.Warn("Invalid page range", "path", file.Path, "range", *file.RangeSpec)
			return nil, err
		}

		if err := writer.AddPages(doc, pages); err != nil {
			return nil, &domain.DocumentReadError{Path: file.Path, Err: err}
		}

		s.logger.Debug("Source resolved", "path", file.Path, "total", total, "selected", len(pages))
		result.Files = append(result.Files, domain.MergedFile{
			Path:      file.Path,
			PageCount: total,
			Pages:     len(pages),
		})
	}

	if writer.PageCount() == 0 {
		s.logger.Warn("Merge produced no pages", "output", outputPath)
		return nil, &domain.NoContentWarning{Operation: "merge"}
	}

	if err := s.store.Save(ctx, outputPath, writer); err != nil {
		s.logger.Error("Failed to write merged document", err, "output", outputPath)
		return nil, &domain.WriteError{Path: outputPath, Err: err}
	}
	result.PageCount = writer.PageCount()

	s.record(ctx, req.Files, result)
	s.publish(ctx, result)

	s.logger.Info("Merge finished", "output", outputPath, "pages", result.PageCount)
	return result, nil
}

// resolvePages returns the pages of file to include: the clamped range when
// one is set, otherwise the whole document.
func resolvePages(file domain.SourceFile, total int) ([]int, error) {
	if !file.HasRange() {
		return domain.AllPages(total), nil
	}

	pages, err := domain.ResolvePageRange(*file.RangeSpec, total)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = file.Path
		}
		return nil, err
	}
	return pages, nil
}

// record failures never undo a merge; the output already exists.
func (s *MergeService) record(ctx context.Context, files []domain.SourceFile, result *domain.MergeResult) {
	sources := make([]string, len(files))
	for i, f := range files {
		sources[i] = f.Path
	}
	record := &domain.MergeRecord{
		MergedAt:    s.now(),
		OutputPath:  result.OutputPath,
		SourcePaths: sources,
		PageCount:   result.PageCount,
	}

	for _, repo := range s.records {
		if err := repo.Append(ctx, record); err != nil {
			s.logger.Error("Failed to append merge record", err, "output", result.OutputPath)
		}
	}
}

func (s *MergeService) publish(ctx context.Context, result *domain.MergeResult) {
	if s.publisher == nil {
		return
	}

	f, err := os.Open(result.OutputPath)
	if err != nil {
		s.logger.Error("Failed to reopen merged document for upload", err, "output", result.OutputPath)
		return
	}
	defer f.Close()

	location, err := s.publisher.Publish(ctx, filepath.Base(result.OutputPath), f)
	if err != nil {
		s.logger.Error("Failed to publish merged document", err, "output", result.OutputPath)
		return
	}
	result.RemoteURL = location
}
