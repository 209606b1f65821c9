package backend

import "sync"

// Session holds the admin bearer token for the process. Login initializes
// it and Logout tears it down.
type Session struct {
	mu    sync.RWMutex
	token string
}

func (s *Session) set(tok string) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}

func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Session) Clear() { s.set("") }
