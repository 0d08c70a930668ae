package session

import (
	"errors"
	"sync"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/internal/util"
)

// ErrNotFound is returned by Delete for ids that are not in the store.
var ErrNotFound = errors.New("session not found")

// InMemoryStore is a volatile SessionStore implementation storing sessions in
// a process local map. It is safe for concurrent access and best suited for a
// single-process assistant; sessions never expire. Each returned session is a
// clone to prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// GetOrCreate returns a clone of the stored session. When id is empty or
// unknown a fresh session with a newly generated id is created and stored.
func (s *InMemoryStore) GetOrCreate(id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess.Clone(), nil
		}
	}

	if id == "" {
		id = util.NewID()
	}

	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess.Clone(), nil
}

// Has reports whether a session with the given id exists.
func (s *InMemoryStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Put overwrites the stored session unconditionally, keeping a clone so the
// caller's copy stays independent.
func (s *InMemoryStore) Put(sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Delete removes a session, failing with ErrNotFound for unknown ids.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Clear removes all sessions.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*core.Session)
}

// ListIDs returns the ids of all stored sessions (unordered).
func (s *InMemoryStore) ListIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
