package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SourceFile is one selected PDF. Path is its identity.
type SourceFile struct {
	Path      string  `json:"path"`
	RangeSpec *string `json:"range_spec,omitempty"`
}

// HasRange reports whether a page range was assigned to the file.
func (f SourceFile) HasRange() bool {
	return f.RangeSpec != nil
}

// Selection is the ordered list of files to merge. The order is the merge
// concatenation order and no two entries share a path.
type Selection struct {
	mu    sync.Mutex
	files []SourceFile
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Add appends path unless it is already selected. It reports whether the
// path was appended.
func (s *Selection) Add(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(path)
}

func (s *Selection) addLocked(path string) bool {
	if s.indexLocked(path) >= 0 {
		return false
	}
	s.files = append(s.files, SourceFile{Path: path})
	return true
}

// AddFolder adds every .pdf file directly inside dir, in directory listing
// order. Subdirectories are not scanned. It returns the number of files
// appended.
func (s *Selection) AddFolder(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("scan folder %s: %w", dir, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, entry := range entries {
		if entry.IsDir() || !HasPDFExt(entry.Name()) {
			continue
		}
		if s.addLocked(filepath.Join(dir, entry.Name())) {
			added++
		}
	}
	return added, nil
}

// MoveUp swaps the file at index with its predecessor.
func (s *Selection) MoveUp(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index <= 0 || index >= len(s.files) {
		return false
	}
	s.files[index-1], s.files[index] = s.files[index], s.files[index-1]
	return true
}

// MoveDown swaps the file at index with its successor.
func (s *Selection) MoveDown(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files)-1 {
		return false
	}
	s.files[index+1], s.files[index] = s.files[index], s.files[index+1]
	return true
}

// SetRange stores text verbatim as the page range of path. It is parsed at
// merge time.
func (s *Selection) SetRange(path, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(path)
	if i < 0 {
		return ErrFileNotSelected
	}
	s.files[i].RangeSpec = &text
	return nil
}

// ClearRange removes the page range of path so the whole document is used.
func (s *Selection) ClearRange(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(path)
	if i < 0 {
		return ErrFileNotSelected
	}
	s.files[i].RangeSpec = nil
	return nil
}

// PathAt returns the path at index.
func (s *Selection) PathAt(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return "", ErrFileNotSelected
	}
	return s.files[index].Path, nil
}

// Files returns a copy of the selection in order.
func (s *Selection) Files() []SourceFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SourceFile, len(s.files))
	for i, f := range s.files {
		out[i] = SourceFile{Path: f.Path}
		if f.RangeSpec != nil {
			spec := *f.RangeSpec
			out[i].RangeSpec = &spec
		}
	}
	return out
}

// Len returns the number of selected files.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func (s *Selection) indexLocked(path string) int {
	for i, f := range s.files {
		if f.Path == path {
			return i
		}
	}
	return -1
}

// HasPDFExt reports whether name ends in ".pdf", ignoring case.
func HasPDFExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
