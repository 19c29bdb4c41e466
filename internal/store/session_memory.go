package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

// memorySessionStore keeps sessions in process memory. Expired sessions are
// hidden from GetSession immediately and removed by PruneSessions.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	clock    utils.Clock
}

// NewMemorySessionStore returns an empty in-memory [SessionStore] that
// judges expiry with clock.
func NewMemorySessionStore(clock utils.Clock) SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]models.Session),
		clock:    clock,
	}
}

func (s *memorySessionStore) CreateSession(_ context.Context, session models.Session) error {
	if session.IsExpired(s.clock.Now()) {
		return fmt.Errorf("%w: %s", ErrSessionExpired, session.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return nil
}

func (s *memorySessionStore) GetSession(_ context.Context, id string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.IsExpired(s.clock.Now()) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) PruneSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}
