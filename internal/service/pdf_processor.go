package service

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"pdf-fusion/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor is the pdfcpu-backed document engine. Documents are read fully
// into memory and the source file handle is released before Open returns.
type PDFProcessor struct {
	conf   *model.Configuration
	logger domain.Logger
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger) *PDFProcessor {
	api.DisableConfigDir()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &PDFProcessor{
		conf:   conf,
		logger: logger,
	}
}

type pdfDocument struct {
	path string
	ctx  *model.Context
}

func (d *pdfDocument) Path() string   { return d.path }
func (d *pdfDocument) PageCount() int { return d.ctx.PageCount }

// Open parses the document at path
func (p *PDFProcessor) Open(path string) (domain.PDFDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.OpenReader(path, bytes.NewReader(data))
}

// OpenReader parses a document that is already in memory
func (p *PDFProcessor) OpenReader(name string, rs io.ReadSeeker) (domain.PDFDocument, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, p.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	p.logger.Debug("PDF opened", "path", name, "pages", ctx.PageCount)
	return &pdfDocument{path: name, ctx: ctx}, nil
}

// NewWriter returns an empty in-memory writer
func (p *PDFProcessor) NewWriter() domain.PageWriter {
	return &pageWriter{conf: p.conf}
}

// pageWriter keeps one serialized PDF per AddPages call and concatenates them
// on WriteTo.
type pageWriter struct {
	conf  *model.Configuration
	parts [][]byte
	pages int
}

func (w *pageWriter) AddPages(doc domain.PDFDocument, pages []int) error {
	if len(pages) == 0 {
		return nil
	}
	src, ok := doc.(*pdfDocument)
	if !ok {
		return fmt.Errorf("document %s was not opened by this engine", doc.Path())
	}

	// pdfcpu numbers pages from 1
	pageNrs := make([]int, len(pages))
	for i, p := range pages {
		if p < 0 || p >= src.ctx.PageCount {
			return fmt.Errorf("page index %d out of range for %s", p, src.path)
		}
		pageNrs[i] = p + 1
	}

	extracted, err := pdfcpu.ExtractPages(src.ctx, pageNrs, false)
	if err != nil {
		return fmt.Errorf("failed to extract pages: %w", err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(extracted, &buf); err != nil {
		return fmt.Errorf("failed to serialize pages: %w", err)
	}

	w.parts = append(w.parts, buf.Bytes())
	w.pages += len(pages)
	return nil
}

func (w *pageWriter) PageCount() int {
	return w.pages
}

func (w *pageWriter) WriteTo(out io.Writer) (int64, error) {
	if len(w.parts) == 0 {
		return 0, domain.ErrNoContent
	}

	cw := &countingWriter{w: out}
	if len(w.parts) == 1 {
		_, err := cw.Write(w.parts[0])
		return cw.n, err
	}

	readers := make([]io.ReadSeeker, len(w.parts))
	for i, part := range w.parts {
		readers[i] = bytes.NewReader(part)
	}
	if err := api.MergeRaw(readers, cw, false, w.conf); err != nil {
		return cw.n, fmt.Errorf("failed to merge pages: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
