package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"adcheck/internal/domain"
)

// Store keeps live sessions in memory. Sessions are per-upload and never
// persisted; a process restart discards them, matching the no-checkpointing
// design.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*domain.Session)}
}

// Create registers a new session on the given track.
func (s *Store) Create(track domain.Track) *domain.Session {
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.New(),
		Stage:     domain.StageInitial,
		Track:     track,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session by ID.
func (s *Store) Get(id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session entirely.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
