// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"
	"strings"

	"pdf-fusion/internal/domain"

	"github.com/gorilla/mux"
)

// SessionHandler handles selection editing requests
type SessionHandler struct {
	sessions domain.SessionService
	logger   domain.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions domain.SessionService, logger domain.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type addFilesRequest struct {
	Paths []string `json:"paths"`
}

type addFolderRequest struct {
	Path string `json:"path"`
}

type setRangeRequest struct {
	Range string `json:"range"`
}

type setOutputRequest struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
}

type selectionResponse struct {
	Added   int                `json:"added"`
	Session domain.SessionView `json:"session"`
}

type moveResponse struct {
	Moved   bool               `json:"moved"`
	Session domain.SessionView `json:"session"`
}

// CreateSession starts a new empty selection
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()
	h.logger.Info("Session created", "session_id", session.ID)
	writeJSON(w, http.StatusCreated, session.View())
}

// GetSession returns the selection and output fields
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// DeleteSession discards a session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(mux.Vars(r)["id"]); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFiles appends paths to the selection, skipping duplicates
func (h *SessionHandler) AddFiles(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addFilesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	added, submitted := 0, 0
	for _, path := range req.Paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		submitted++
		if session.Selection.Add(path) {
			added++
		}
	}
	if submitted == 0 {
		writeAppError(w, h.logger, &domain.MissingInputError{Fields: []string{"paths"}}, nil)
		return
	}

	h.logger.Debug("Files added", "session_id", session.ID, "added", added)
	writeJSON(w, http.StatusOK, selectionResponse{Added: added, Session: session.View()})
}

// AddFolder appends every PDF directly inside a folder
func (h *SessionHandler) AddFolder(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	dir := strings.TrimSpace(req.Path)
	if dir == "" {
		writeAppError(w, h.logger, &domain.MissingInputError{Fields: []string{"path"}}, nil)
		return
	}

	added, err := session.Selection.AddFolder(dir)
	if err != nil {
		writeAppError(w, h.logger, &domain.InvalidParameterError{Param: "path", Value: dir, Message: err.Error()}, nil)
		return
	}

	h.logger.Debug("Folder added", "session_id", session.ID, "folder", dir, "added", added)
	writeJSON(w, http.StatusOK, selectionResponse{Added: added, Session: session.View()})
}

// MoveUp swaps a file with its predecessor; the first file stays put
func (h *SessionHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *domain.Selection, i int) bool { return s.MoveUp(i) })
}

// MoveDown swaps a file with its successor; the last file stays put
func (h *SessionHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *domain.Selection, i int) bool { return s.MoveDown(i) })
}

func (h *SessionHandler) move(w http.ResponseWriter, r *http.Request, fn func(*domain.Selection, int) bool) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	index, err := indexVar(r)
	if err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	moved := fn(session.Selection, index)
	writeJSON(w, http.StatusOK, moveResponse{Moved: moved, Session: session.View()})
}

// SetRange stores the page range text of one file without parsing it
func (h *SessionHandler) SetRange(w http.ResponseWriter, r *http.Request) {
	session, path, ok := h.fileAt(w, r)
	if !ok {
		return
	}

	var req setRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	if err := session.Selection.SetRange(path, req.Range); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// ClearRange makes the merge use every page of one file again
func (h *SessionHandler) ClearRange(w http.ResponseWriter, r *http.Request) {
	session, path, ok := h.fileAt(w, r)
	if !ok {
		return
	}
	if err := session.Selection.ClearRange(path); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// SetOutput stores the output file name and folder used by the next merge
func (h *SessionHandler) SetOutput(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req setOutputRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err, nil)
		return
	}

	session.SetOutput(req.Name, req.Folder)
	writeJSON(w, http.StatusOK, session.View())
}

// session resolves the {id} route variable, writing a 404 when unknown
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	return lookupSession(w, r, h.sessions, h.logger)
}

// fileAt resolves {id} and {index} to a session and the selected path
func (h *SessionHandler) fileAt(w http.ResponseWriter, r *http.Request) (*domain.Session, string, bool) {
	return lookupFile(w, r, h.sessions, h.logger)
}

func lookupSession(w http.ResponseWriter, r *http.Request, sessions domain.SessionService, logger domain.Logger) (*domain.Session, bool) {
	session, err := sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, logger, err, nil)
		return nil, false
	}
	return session, true
}

func lookupFile(w http.ResponseWriter, r *http.Request, sessions domain.SessionService, logger domain.Logger) (*domain.Session, string, bool) {
	session, ok := lookupSession(w, r, sessions, logger)
	if !ok {
		return nil, "", false
	}
	index, err := indexVar(r)
	if err != nil {
		writeAppError(w, logger, err, nil)
		return nil, "", false
	}
	path, err := session.Selection.PathAt(index)
	if err != nil {
		writeAppError(w, logger, err, nil)
		return nil, "", false
	}
	return session, path, true
}
