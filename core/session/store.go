// Package session holds the process-wide authenticated principal and the
// login flow that is its only writer.
package session

import (
	"sync"

	"github.com/shulehub/shule/core/auth"
)

// Store holds at most one authenticated principal for the lifetime of the
// process. It starts empty, is populated only by a successful login and
// reset by logout; readers never observe a partially-populated principal.
//
// Writes are serialized behind a mutex; reads are cheap snapshots. The
// login controller is the single writer, everything else only reads.
type Store struct {
	mu        sync.RWMutex
	principal auth.Principal
	held      bool
}

func NewStore() *Store {
	return &Store{}
}

// Current returns a snapshot of the held principal, if any.
func (s *Store) Current() (auth.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal, s.held
}

// Adopt sets the held principal, overwriting any prior value. Adopting an
// equal principal twice is a no-op.
func (s *Store) Adopt(p auth.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = p
	s.held = true
}

// Clear resets the store to empty. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = auth.Principal{}
	s.held = false
}
