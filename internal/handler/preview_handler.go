package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"pdf-fusion/internal/domain"
)

// PreviewHandler serves thumbnails and metadata of selected files
type PreviewHandler struct {
	sessions domain.SessionService
	preview  domain.PreviewService
	logger   domain.Logger
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(sessions domain.SessionService, preview domain.PreviewService, logger domain.Logger) *PreviewHandler {
	return &PreviewHandler{
		sessions: sessions,
		preview:  preview,
		logger:   logger,
	}
}

// RenderPage streams one page of a selected file as a PNG
func (h *PreviewHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	_, path, ok := lookupFile(w, r, h.sessions, h.logger)
	if !ok {
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	width, err := queryInt(r, "width", 0)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	// render fully before writing so failures can still be reported as JSON
	var buf bytes.Buffer
	if err := h.preview.RenderPNG(r.Context(), path, domain.PreviewOptions{Page: page, Width: width}, &buf); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetInfo returns page count and metadata of a selected file
func (h *PreviewHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	_, path, ok := lookupFile(w, r, h.sessions, h.logger)
	if !ok {
		return
	}

	info, err := h.preview.Info(r.Context(), path)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
