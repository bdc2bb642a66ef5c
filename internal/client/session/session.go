// Package session keeps the identity of the logged-in user in memory.
//
// A Session is either empty or fully populated: username, role and bearer
// token are adopted together on login and dropped together on logout.
package session

import (
	"errors"
	"sync"
)

// ErrIncomplete is returned by Adopt when any identity field is empty.
var ErrIncomplete = errors.New("session: incomplete identity")

// Identity is the authenticated user as returned by the login endpoint.
type Identity struct {
	Username string
	Role     string
	Token    string
}

func (id Identity) complete() bool {
	return id.Username != "" && id.Role != "" && id.Token != ""
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.RWMutex
	id *Identity
}

// New returns an empty (logged out) session.
func New() *Session {
	return &Session{}
}

// Adopt replaces the current identity. An incomplete identity is rejected
// and the session keeps its previous state.
func (s *Session) Adopt(id Identity) error {
	if !id.complete() {
		return ErrIncomplete
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = &id
	return nil
}

// Clear logs the session out.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = nil
}

// Current returns the identity and whether the session is logged in.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.id == nil {
		return Identity{}, false
	}
	return *s.id, true
}

// LoggedIn reports whether an identity is held.
func (s *Session) LoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// Username returns the logged-in username or "".
func (s *Session) Username() string {
	id, _ := s.Current()
	return id.Username
}

// Token returns the bearer token or "" when logged out.
func (s *Session) Token() string {
	id, _ := s.Current()
	return id.Token
}
