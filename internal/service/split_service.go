package service

import (
	"context"
	"path/filepath"
	"strings"

	"pdf-fusion/internal/domain"
)

// SplitService writes one output document per page group of a source.
type SplitService struct {
	engine domain.PDFEngine
	store  domain.OutputStore
	logger domain.Logger
}

// NewSplitService creates a split service
func NewSplitService(engine domain.PDFEngine, store domain.OutputStore, logger domain.Logger) *SplitService {
	return &SplitService{
		engine: engine,
		store:  store,
		logger: logger,
	}
}

// Split partitions the source into groups and writes each group as soon as
// it is built. Groups written before a failure are kept; the returned result
// lists them alongside the error.
func (s *SplitService) Split(ctx context.Context, req domain.SplitRequest) (*domain.SplitResult, error) {
	size, err := req.GroupSize()
	if err != nil {
		return nil, err
	}

	doc, err := s.engine.Open(req.SourcePath)
	if err != nil {
		s.logger.Error("Failed to read source", err, "path", req.SourcePath)
		return nil, &domain.DocumentReadError{Path: req.SourcePath, Err: err}
	}

	total := doc.PageCount()
	result := &domain.SplitResult{
		SourcePath: req.SourcePath,
		PageCount:  total,
		Files:      []string{},
	}
	if total == 0 {
		return result, &domain.NoContentWarning{Operation: "split"}
	}

	folder := strings.TrimSpace(req.OutputFolder)
	base := baseName(req.SourcePath)
	s.logger.Info("Split started", "source", req.SourcePath, "mode", req.Mode, "size", size, "pages", total)

	for _, group := range domain.PartitionPages(total, size) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outputPath := filepath.Join(folder, req.Mode.OutputName(base, group))

		writer := s.engine.NewWriter()
		if err := writer.AddPages(doc, group.Pages()); err != nil {
			s.logger.Error("Failed to build split group", err, "output", outputPath)
			return result, &domain.WriteError{Path: outputPath, Err: err}
		}
		if err := s.store.Save(ctx, outputPath, writer); err != nil {
			s.logger.Error("Failed to write split group", err, "output", outputPath)
			return result, &domain.WriteError{Path: outputPath, Err: err}
		}
		result.Files = append(result.Files, outputPath)
	}

	s.logger.Info("Split finished", "source", req.SourcePath, "files", result.Count())
	return result, nil
}

// baseName strips the folder and the extension from path
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
