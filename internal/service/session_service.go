package service

import (
	"sync"
	"time"

	"pdf-fusion/internal/domain"

	"github.com/google/uuid"
)

const defaultSessionIdleTTL = 2 * time.Hour

type sessionEntry struct {
	session  *domain.Session
	lastUsed time.Time
}

// SessionService keeps one selection per client window. Sessions untouched
// for longer than the idle TTL are dropped the next time the store is used.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idleTTL  time.Duration
	now      func() time.Time
	logger   domain.Logger
}

// NewSessionService creates an empty session store
func NewSessionService(logger domain.Logger) *SessionService {
	return &SessionService{
		sessions: make(map[string]*sessionEntry),
		idleTTL:  defaultSessionIdleTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// WithIdleTTL sets how long a session may go unused. Non-positive values
// keep the default.
func (s *SessionService) WithIdleTTL(ttl time.Duration) *SessionService {
	if ttl > 0 {
		s.idleTTL = ttl
	}
	return s
}

// Create starts a new session with an empty selection
func (s *SessionService) Create() *domain.Session {
	session := domain.NewSession(uuid.New().String())

	s.mu.Lock()
	now := s.now()
	s.evictIdle(now)
	s.sessions[session.ID] = &sessionEntry{session: session, lastUsed: now}
	s.mu.Unlock()

	s.logger.Debug("Session created", "session_id", session.ID)
	return session
}

// Get returns the session with id and marks it as used
func (s *SessionService) Get(id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictIdle(now)
	entry, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	entry.lastUsed = now
	return entry.session, nil
}

// Delete discards the session with id
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Debug("Session deleted", "session_id", id)
	return nil
}

// Count returns the number of live sessions
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdle(s.now())
	return len(s.sessions)
}

// evictIdle must be called with mu held.
func (s *SessionService) evictIdle(now time.Time) {
	for id, entry := range s.sessions {
		if now.Sub(entry.lastUsed) > s.idleTTL {
			delete(s.sessions, id)
			s.logger.Info("Session expired", "session_id", id, "idle", now.Sub(entry.lastUsed).Round(time.Second))
		}
	}
}
