package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mhpenta/imagestudio"
)

// SessionRegistry maps conversation ids to their refinement sessions. Each
// session is exclusively owned by the conversation that created it;
// independent conversations run concurrently with no shared state between
// them. Nothing survives a process restart.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*imagestudio.RefinementSession
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*imagestudio.RefinementSession),
	}
}

// Add registers a session and returns its conversation id.
func (r *SessionRegistry) Add(sess *imagestudio.RefinementSession) string {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = sess
	return id
}

// Get looks up a session by conversation id.
func (r *SessionRegistry) Get(id string) (*imagestudio.RefinementSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove tears a conversation down, releasing the session's resources.
// Returns false if the id is unknown.
func (r *SessionRegistry) Remove(id string) bool {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		sess.Close()
	}
	return ok
}

// Len returns the number of live conversations.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
