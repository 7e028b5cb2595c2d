package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pdf-fusion/internal/domain"
	"pdf-fusion/internal/repository"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{messages: []string{}}
}

func (m *MockLogger) add(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, s)
}

func (m *MockLogger) Info(msg string, args ...interface{})  { m.add("INFO: " + msg) }
func (m *MockLogger) Debug(msg string, args ...interface{}) { m.add("DEBUG: " + msg) }
func (m *MockLogger) Warn(msg string, args ...interface{})  { m.add("WARN: " + msg) }
func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + fmt.Sprint(err))
}

func (m *MockLogger) contains(s string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// fakeEngine serves documents by path with a fixed page count.
type fakeEngine struct {
	pages    map[string]int
	failOpen map[string]error
	failAdd  map[string]error
	opened   []string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		pages:    map[string]int{},
		failOpen: map[string]error{},
		failAdd:  map[string]error{},
	}
}

type fakeDoc struct {
	path  string
	pages int
}

func (d *fakeDoc) Path() string   { return d.path }
func (d *fakeDoc) PageCount() int { return d.pages }

func (e *fakeEngine) Open(path string) (domain.PDFDocument, error) {
	e.opened = append(e.opened, path)
	if err, ok := e.failOpen[path]; ok {
		return nil, err
	}
	n, ok := e.pages[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &fakeDoc{path: path, pages: n}, nil
}

func (e *fakeEngine) NewWriter() domain.PageWriter {
	return &fakeWriter{engine: e}
}

// fakeWriter serializes pages as "path#index" lines.
type fakeWriter struct {
	engine *fakeEngine
	pages  []string
}

func (w *fakeWriter) AddPages(doc domain.PDFDocument, pages []int) error {
	if err, ok := w.engine.failAdd[doc.Path()]; ok {
		return err
	}
	for _, p := range pages {
		w.pages = append(w.pages, fmt.Sprintf("%s#%d", doc.Path(), p))
	}
	return nil
}

func (w *fakeWriter) PageCount() int { return len(w.pages) }

func (w *fakeWriter) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, strings.Join(w.pages, "\n"))
	return int64(n), err
}

// memoryStore keeps saved outputs in memory; failAt makes the nth save fail.
type memoryStore struct {
	saved  map[string]string
	order  []string
	failAt int
	calls  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: map[string]string{}}
}

func (s *memoryStore) Save(ctx context.Context, path string, src io.WriterTo) error {
	s.calls++
	if s.failAt > 0 && s.calls == s.failAt {
		return errors.New("disk full")
	}
	var buf bytes.Buffer
	if _, err := src.WriteTo(&buf); err != nil {
		return err
	}
	s.saved[path] = buf.String()
	s.order = append(s.order, path)
	return nil
}

func (s *memoryStore) pages(path string) []string {
	content, ok := s.saved[path]
	if !ok || content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func newDiskStore() *repository.OutputStore {
	return repository.NewOutputStore(NewMockLogger())
}

type recordingRepo struct {
	records []*domain.MergeRecord
	err     error
}

func (r *recordingRepo) Append(ctx context.Context, record *domain.MergeRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

type fakePublisher struct {
	name string
	body string
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, name string, r io.Reader) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	p.name, p.body = name, string(data)
	return "bucket/merged/" + name, nil
}

// minimalPDF builds a valid PDF with n pages. Page i is baseWidth+i+1 points
// wide so pages can be told apart after a merge.
func minimalPDF(t *testing.T, n, baseWidth int) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := []int{}
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for i := 0; i < n; i++ {
		content := fmt.Sprintf("%d %d m %d %d l S", 10*i, 10, 10*i+50, 60)
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d 792] /Resources << >> /Contents %d 0 R >>", baseWidth+i+1, 4+2*i))
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func writePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	return writeSizedPDF(t, dir, name, pages, 600)
}

func writeSizedPDF(t *testing.T, dir, name string, pages, baseWidth int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, minimalPDF(t, pages, baseWidth), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
