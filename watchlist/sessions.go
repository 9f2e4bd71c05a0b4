package watchlist

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions hands out one Store per browser session so independent watchlists
// never share state. Idle sessions are swept lazily on access.
type Sessions struct {
	mu        sync.Mutex
	stores    map[string]*session
	maxIdle   time.Duration
	lastSweep time.Time
}

type session struct {
	store    *Store
	lastSeen time.Time
}

// NewSessions creates a session manager. Sessions idle longer than maxIdle
// are dropped.
func NewSessions(maxIdle time.Duration) *Sessions {
	return &Sessions{
		stores:  make(map[string]*session),
		maxIdle: maxIdle,
	}
}

// NewSessionID mints an identifier for a new browser session.
func NewSessionID() string {
	return uuid.NewString()
}

// Store returns the watchlist for a session, creating it on first access.
func (s *Sessions) Store(sessionID string) *Store {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(now)

	sess, ok := s.stores[sessionID]
	if !ok {
		sess = &session{store: NewStore()}
		s.stores[sessionID] = sess
	}
	sess.lastSeen = now
	return sess.store
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// sweepLocked drops idle sessions, at most once per maxIdle interval.
func (s *Sessions) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.maxIdle {
		return
	}
	s.lastSweep = now
	for id, sess := range s.stores {
		if now.Sub(sess.lastSeen) > s.maxIdle {
			delete(s.stores, id)
		}
	}
}
