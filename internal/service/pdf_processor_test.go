package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pdf-fusion/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestPDFProcessor_Open(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "a.pdf", 4)
	p := NewPDFProcessor(NewMockLogger())

	doc, err := p.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.PageCount() != 4 || doc.Path() != path {
		t.Fatalf("unexpected document %s with %d pages", doc.Path(), doc.PageCount())
	}
}

func TestPDFProcessor_OpenRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(path, []byte("just some text"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewPDFProcessor(NewMockLogger())

	if _, err := p.Open(path); err == nil {
		t.Fatal("expected error for a non-PDF file")
	}
	if _, err := p.Open(filepath.Join(dir, "missing.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestPageWriter_EmptyWriterHasNoContent(t *testing.T) {
	w := NewPDFProcessor(NewMockLogger()).NewWriter()
	if w.PageCount() != 0 {
		t.Fatal("new writer should be empty")
	}
	if _, err := w.WriteTo(&bytes.Buffer{}); !errors.Is(err, domain.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestPageWriter_RejectsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	p := NewPDFProcessor(NewMockLogger())
	doc, err := p.Open(writePDF(t, dir, "a.pdf", 2))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.NewWriter().AddPages(doc, []int{0, 2}); err == nil {
		t.Fatal("expected out of range error")
	}
	if err := p.NewWriter().AddPages(&fakeDoc{path: "x", pages: 1}, []int{0}); err == nil {
		t.Fatal("expected error for a foreign document")
	}
}

func TestPageWriter_MergesAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	p := NewPDFProcessor(NewMockLogger())
	a, err := p.Open(writePDF(t, dir, "a.pdf", 3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Open(writePDF(t, dir, "b.pdf", 2))
	if err != nil {
		t.Fatal(err)
	}

	w := p.NewWriter()
	if err := w.AddPages(a, []int{0, 2}); err != nil {
		t.Fatalf("AddPages a: %v", err)
	}
	if err := w.AddPages(b, []int{1}); err != nil {
		t.Fatalf("AddPages b: %v", err)
	}
	if w.PageCount() != 3 {
		t.Fatalf("expected 3 pages, got %d", w.PageCount())
	}

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("reported %d bytes, wrote %d", n, buf.Len())
	}

	merged, err := p.OpenReader("merged.pdf", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("merged output is not readable: %v", err)
	}
	if merged.PageCount() != 3 {
		t.Fatalf("merged output has %d pages", merged.PageCount())
	}
}

func TestMergeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 3)
	b := writePDF(t, dir, "b.pdf", 2)
	out := filepath.Join(dir, "out")

	p := NewPDFProcessor(NewMockLogger())
	svc := NewMergeService(p, newDiskStore(), NewMockLogger())

	result, err := svc.Merge(context.Background(), domain.MergeRequest{
		Files:        []domain.SourceFile{{Path: a, RangeSpec: strPtr("2-3")}, {Path: b}},
		OutputName:   "combined",
		OutputFolder: out,
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	doc, err := p.Open(result.OutputPath)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	if doc.PageCount() != 4 || result.PageCount != 4 {
		t.Fatalf("expected 4 pages, got %d / %d", doc.PageCount(), result.PageCount)
	}
}

// pageWidths reads the width of every page of the document at path
func pageWidths(t *testing.T, p *PDFProcessor, path string) []int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dims, err := api.PageDims(bytes.NewReader(data), p.conf)
	if err != nil {
		t.Fatalf("PageDims %s: %v", path, err)
	}
	widths := make([]int, len(dims))
	for i, d := range dims {
		widths[i] = int(d.Width)
	}
	return widths
}

func TestMergeEndToEnd_PageOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeSizedPDF(t, dir, "a.pdf", 4, 100) // widths 101..104
	b := writeSizedPDF(t, dir, "b.pdf", 3, 200) // widths 201..203

	p := NewPDFProcessor(NewMockLogger())
	svc := NewMergeService(p, newDiskStore(), NewMockLogger())

	result, err := svc.Merge(context.Background(), domain.MergeRequest{
		Files:        []domain.SourceFile{{Path: b}, {Path: a, RangeSpec: strPtr("4,1-2,9")}},
		OutputName:   "ordered",
		OutputFolder: dir,
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	want := []int{201, 202, 203, 101, 102, 104}
	if got := pageWidths(t, p, result.OutputPath); !reflect.DeepEqual(got, want) {
		t.Fatalf("page widths %v, want %v", got, want)
	}
}

func TestSplitEndToEnd_PageOrder(t *testing.T) {
	dir := t.TempDir()
	src := writeSizedPDF(t, dir, "scan.pdf", 5, 300)

	p := NewPDFProcessor(NewMockLogger())
	svc := NewSplitService(p, newDiskStore(), NewMockLogger())

	result, err := svc.Split(context.Background(), domain.SplitRequest{
		SourcePath: src, Mode: domain.SplitEveryNPages, N: "2", OutputFolder: filepath.Join(dir, "parts"),
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	want := [][]int{{301, 302}, {303, 304}, {305}}
	if len(result.Files) != len(want) {
		t.Fatalf("wrote %d files, want %d", len(result.Files), len(want))
	}
	for i, path := range result.Files {
		if got := pageWidths(t, p, path); !reflect.DeepEqual(got, want[i]) {
			t.Fatalf("%s widths %v, want %v", path, got, want[i])
		}
	}
}
