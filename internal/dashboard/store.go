package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultSessionTTL = 4 * time.Hour

// Store keeps one controller per analyst session, keyed by the session
// cookie. Idle sessions are dropped lazily on access.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session
	factory  func() *Controller
	now      func() time.Time
}

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// NewStore creates a session store. factory builds a fresh controller
// for each new session.
func NewStore(ttl time.Duration, factory func() *Controller) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*session),
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the controller for a session id, touching its idle timer.
func (s *Store) Get(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.controller, true
}

// Create registers a new session and returns its id and controller.
func (s *Store) Create() (string, *Controller) {
	controller := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	id := uuid.NewString()
	s.sessions[id] = &session{controller: controller, lastSeen: s.now()}
	return id, controller
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.sessions)
}

func (s *Store) purgeLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
