package payment

import "sync"

// registry tracks the active payment session per checkout session. Starting
// a new attempt replaces and closes the previous one.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newRegistry() *registry {
	return &registry{sessions: map[string]*Session{}}
}

func (r *registry) put(sessionID string, session *Session) {
	r.mu.Lock()
	previous := r.sessions[sessionID]
	r.sessions[sessionID] = session
	r.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
}

func (r *registry) get(sessionID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	return session, ok
}

func (r *registry) remove(sessionID string) {
	r.mu.Lock()
	session := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if session != nil {
		session.Close()
	}
}

func (r *registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*Session{}
	r.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
