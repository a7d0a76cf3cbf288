package wizard

import (
	"context"
	"sync"
	"time"
)

// memoryStore is an in-process Store used by tests. Fences never
// expire; tests release them explicitly.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	fences   map[string]string
}

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]Session),
		fences:   make(map[string]string),
	}
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *memoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = time.Now()
	s.sessions[session.ID.String()] = *session
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *memoryStore) AcquireCommit(_ context.Context, sessionID, token string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.fences[sessionID]; held {
		return false, nil
	}
	s.fences[sessionID] = token
	return true, nil
}

func (s *memoryStore) ReleaseCommit(_ context.Context, sessionID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fences[sessionID] != token {
		return false, nil
	}
	delete(s.fences, sessionID)
	return true, nil
}
