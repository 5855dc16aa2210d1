// Package session keeps the per-browser UI state in memory.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/yt-insights/ytwatch/internal/models"
)

// Session is one browser's state. State is read and replaced under mu; the
// in-flight flag is separate so a running search does not hold the lock.
type Session struct {
	ID string

	mu       sync.Mutex
	state    models.State
	lastSeen time.Time
	fresh    bool

	searching atomic.Bool
}

// State returns a snapshot of the session state.
func (s *Session) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state and stores the result.
func (s *Session) Update(fn func(models.State) models.State) models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// TryBeginSearch marks a search as in flight. It reports false when another
// search of this session has not finished yet.
func (s *Session) TryBeginSearch() bool {
	return s.searching.CompareAndSwap(false, true)
}

// EndSearch clears the in-flight mark.
func (s *Session) EndSearch() {
	s.searching.Store(false)
}

// Searching reports whether a search is in flight.
func (s *Session) Searching() bool {
	return s.searching.Load()
}

// TakeFresh reports true exactly once, on the first call for a new session.
func (s *Session) TakeFresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.fresh
	s.fresh = false
	return f
}

// Store holds sessions by id
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the live session for id, or creates a new one when id is
// unknown or expired. created reports whether a new session was made.
func (st *Store) Get(id string) (sess *Session, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if s, ok := st.sessions[id]; ok && now.Sub(s.touch(now)) < st.ttl {
		return s, false
	}
	if id != "" {
		delete(st.sessions, id)
	}

	s := &Session{ID: uuid.NewString(), lastSeen: now, fresh: true}
	st.sessions[s.ID] = s
	return s, true
}

// touch records now as the last access and returns the previous one.
func (s *Session) touch(now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.lastSeen
	s.lastSeen = now
	return prev
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed. Sessions with a search in flight are kept.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.seen()) >= st.ttl && !s.Searching() {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
