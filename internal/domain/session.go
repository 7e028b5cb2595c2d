package domain

import (
	"strings"
	"sync"
	"time"
)

// Session is one interactive workspace: a selection plus the output name and
// folder the user typed.
type Session struct {
	ID        string
	Selection *Selection
	CreatedAt time.Time

	mu           sync.Mutex
	outputName   string
	outputFolder string
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Selection: NewSelection(),
		CreatedAt: time.Now(),
	}
}

// SetOutput stores the merge target fields.
func (s *Session) SetOutput(name, folder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputName = strings.TrimSpace(name)
	s.outputFolder = strings.TrimSpace(folder)
}

// Output returns the merge target fields.
func (s *Session) Output() (name, folder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputName, s.outputFolder
}

// MergeRequest snapshots the session into a merge request.
func (s *Session) MergeRequest() MergeRequest {
	name, folder := s.Output()
	return MergeRequest{
		Files:        s.Selection.Files(),
		OutputName:   name,
		OutputFolder: folder,
	}
}

// SessionView is the JSON shape of a session.
type SessionView struct {
	ID           string       `json:"id"`
	Files        []SourceFile `json:"files"`
	OutputName   string       `json:"output_name"`
	OutputFolder string       `json:"output_folder"`
	CreatedAt    time.Time    `json:"created_at"`
}

// View returns a snapshot for responses.
func (s *Session) View() SessionView {
	name, folder := s.Output()
	return SessionView{
		ID:           s.ID,
		Files:        s.Selection.Files(),
		OutputName:   name,
		OutputFolder: folder,
		CreatedAt:    s.CreatedAt,
	}
}

// SessionService keeps sessions alive between requests.
type SessionService interface {
	Create() *Session
	Get(id string) (*Session, error)
	Delete(id string) error
}
