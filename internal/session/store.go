// Package session keeps the last recommendation text per browser session so
// the replay action can serve it without re-querying the completion service.
package session

import "sync"

// Store is an in-memory map of session ID to last recommendation text. It is
// written only when a recommendation succeeds and lives for the process
// lifetime.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]string),
	}
}

// Put records the last recommendation text for a session.
func (s *Store) Put(sessionID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = text
}

// Get returns the last recommendation text for a session, if any.
func (s *Store) Get(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.entries[sessionID]
	return text, ok
}
