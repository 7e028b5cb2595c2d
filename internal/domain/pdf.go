package domain

import (
	"context"
	"io"
)

// DocumentInfo describes a selected PDF for display next to the file list.
type DocumentInfo struct {
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	FileSize  int64  `json:"file_size"`
}

// PreviewOptions selects the page (one-based) and thumbnail width in pixels.
type PreviewOptions struct {
	Page  int
	Width int
}

// PreviewService renders thumbnails and reads metadata of source documents.
type PreviewService interface {
	Info(ctx context.Context, path string) (*DocumentInfo, error)
	RenderPNG(ctx context.Context, path string, opts PreviewOptions, w io.Writer) error
}
