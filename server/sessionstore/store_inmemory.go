package sessionstore

import (
	"errors"
	"sync"
	"time"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

// InMemoryStore is a thread-safe in-memory implementation of Store.
// Abandoned sessions are evicted lazily: a record older than the configured
// TTL is treated as absent and removed on the next access.
type InMemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Data
}

// NewInMemoryStore creates a new in-memory session store. A zero ttl
// disables expiry.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*Data),
	}
}

// Get retrieves the state for a browser session.
func (s *InMemoryStore) Get(sessionID string) (*Data, error) {
	if sessionID == "" {
		return nil, errors.New("sessionID cannot be empty")
	}

	s.mu.RLock()
	data, exists := s.sessions[sessionID]
	s.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrSessionNotFound
	}

	if s.expired(data) {
		s.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// replaced the record in the meantime.
		if current, ok := s.sessions[sessionID]; ok && s.expired(current) {
			delete(s.sessions, sessionID)
		}
		s.mu.Unlock()
		return nil, apperrors.ErrSessionExpired
	}

	// Return a copy to prevent external modifications
	return copyData(data), nil
}

// Set stores or replaces the state for a browser session.
func (s *InMemoryStore) Set(sessionID string, data *Data) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}
	if data == nil {
		return errors.New("data cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = copyData(data)
	return nil
}

// Delete removes all state for a browser session.
func (s *InMemoryStore) Delete(sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *InMemoryStore) expired(data *Data) bool {
	return s.ttl > 0 && time.Since(data.CreatedAt) > s.ttl
}

func copyData(data *Data) *Data {
	clone := *data
	if data.Attempt != nil {
		attempt := *data.Attempt
		clone.Attempt = &attempt
	}
	return &clone
}
