package handler

import (
	"net/http"

	"pdf-fusion/internal/domain"
)

// SplitHandler splits a single source document
type SplitHandler struct {
	splitter domain.SplitService
	logger   domain.Logger
}

// NewSplitHandler creates a new split handler
func NewSplitHandler(splitter domain.SplitService, logger domain.Logger) *SplitHandler {
	return &SplitHandler{
		splitter: splitter,
		logger:   logger,
	}
}

// Split writes one file per page or per group of N pages
func (h *SplitHandler) Split(w http.ResponseWriter, r *http.Request) {
	var req domain.SplitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	result, err := h.splitter.Split(r.Context(), req)
	if err != nil {
		writeAppError(w, h.logger, err, result)
		return
	}

	h.logger.Info("Split", "source", result.SourcePath, "files", result.Count())
	writeJSON(w, http.StatusOK, result)
}
