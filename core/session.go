package core

import "time"

// Session represents one conversation: an ordered message history plus a
// free-form state map owned by the agent variant. Sessions are passed around
// as clones; the store is the single place holding the authoritative copy.
//
// Contract:
//   - History is append-only within a turn (never reordered or rewritten)
//   - State is opaque to the conversation loop (read/written by tools or the
//     hosting boundary only)
//   - Clone performs deep copies of the state map so divergent copies are safe.
type Session struct {
	ID      string         `json:"id"`
	History []Message      `json:"history"`
	State   map[string]any `json:"state"`
	Created time.Time      `json:"created"`
	Updated time.Time      `json:"updated"`
}

// NewSession creates an empty session with the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, History: []Message{}, State: map[string]any{}, Created: now, Updated: now}
}

// Clone returns a copy of the session safe for independent mutation. The
// history spine is copied; messages themselves are treated as immutable.
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:      s.ID,
		History: make([]Message, len(s.History)),
		State:   make(map[string]any, len(s.State)),
		Created: s.Created,
		Updated: s.Updated,
	}
	copy(clone.History, s.History)
	for k, v := range s.State {
		clone.State[k] = v
	}
	return clone
}

// SessionStore persists sessions across request/response turns. Implementations
// must be safe for concurrent use; they provide no read-modify-write exclusion
// per id, so callers expecting concurrent clients serialize turns themselves.
type SessionStore interface {
	// GetOrCreate returns a clone of the stored session, creating a fresh one
	// (with a newly generated id when id is empty or unknown).
	GetOrCreate(id string) (*Session, error)

	// Has reports whether a session with the given id exists.
	Has(id string) bool

	// Put overwrites the stored session unconditionally.
	Put(session *Session) error

	// Delete removes a session; it fails when the id is unknown.
	Delete(id string) error

	// Clear removes all sessions.
	Clear()

	// ListIDs returns the ids of all stored sessions.
	ListIDs() []string
}
