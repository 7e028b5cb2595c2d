package handler

import (
	"net/http"

	"pdf-fusion/internal/domain"
)

// MergeHandler runs merges of a session's selection
type MergeHandler struct {
	sessions domain.SessionService
	merger   domain.MergeService
	logger   domain.Logger
}

// NewMergeHandler creates a new merge handler
func NewMergeHandler(sessions domain.SessionService, merger domain.MergeService, logger domain.Logger) *MergeHandler {
	return &MergeHandler{
		sessions: sessions,
		merger:   merger,
		logger:   logger,
	}
}

// Merge writes the session's selection to its output file
func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(w, r, h.sessions, h.logger)
	if !ok {
		return
	}

	result, err := h.merger.Merge(r.Context(), session.MergeRequest())
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	h.logger.Info("Merged", "session_id", session.ID, "output", result.OutputPath, "pages", result.PageCount)
	writeJSON(w, http.StatusOK, result)
}
