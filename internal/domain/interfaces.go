package domain

import (
	"context"
	"io"
	"time"
)

// PDFDocument is an opened source document.
type PDFDocument interface {
	Path() string
	PageCount() int
}

// PageWriter accumulates pages in memory until written.
type PageWriter interface {
	// AddPages appends the given zero-based pages of doc, in order.
	AddPages(doc PDFDocument, pages []int) error
	PageCount() int
	WriteTo(w io.Writer) (int64, error)
}

// PDFEngine is the document I/O collaborator backed by a PDF library.
type PDFEngine interface {
	Open(path string) (PDFDocument, error)
	NewWriter() PageWriter
}

// OutputStore persists finished documents on disk.
type OutputStore interface {
	Save(ctx context.Context, path string, w io.WriterTo) error
}

// OutputPublisher copies a finished document to remote storage and returns
// its location.
type OutputPublisher interface {
	Publish(ctx context.Context, name string, r io.Reader) (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMergeLogPath() string
	GetAllowedOrigins() []string
	GetPreviewMaxWidth() int
	GetSessionIdleTTL() time.Duration
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
}
