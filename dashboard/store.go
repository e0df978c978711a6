package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type entry struct {
	dashboard *Dashboard
	lastSeen  time.Time
}

// SessionStore keeps one Dashboard per visitor and closes the ones idle for longer
// than the TTL. At most limit sessions are live; a zero limit means no cap.
type SessionStore struct {
	mu           sync.Mutex
	sessions     map[string]*entry
	newDashboard func() *Dashboard
	ttl          time.Duration
	limit        int
	now          func() time.Time
	log          zerolog.Logger
}

func NewSessionStore(newDashboard func() *Dashboard, ttl time.Duration, limit int, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		sessions:     make(map[string]*entry),
		newDashboard: newDashboard,
		ttl:          ttl,
		limit:        limit,
		now:          time.Now,
		log:          log,
	}
}

// Get returns the dashboard for id, creating a new session when id is empty, malformed
// or expired. The returned id is the one the caller should use from now on.
func (s *SessionStore) Get(id string) (string, *Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.sessions[id]; ok {
		if now.Sub(e.lastSeen) <= s.ttl {
			e.lastSeen = now
			return id, e.dashboard
		}
		s.evict(id, e)
	}

	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.makeRoom(now)
	}

	id = uuid.NewString()
	s.sessions[id] = &entry{dashboard: s.newDashboard(), lastSeen: now}
	s.log.Debug().Str("session_id", id).Msg("session created")
	return id, s.sessions[id].dashboard
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and forgets idle sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweep(s.now())
}

func (s *SessionStore) sweep(now time.Time) int {
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			s.evict(id, e)
			removed++
		}
	}
	return removed
}

// makeRoom drops expired sessions, then the least recently seen one if the store is
// still full.
func (s *SessionStore) makeRoom(now time.Time) {
	s.sweep(now)
	if len(s.sessions) < s.limit {
		return
	}

	var oldestID string
	var oldest *entry
	for id, e := range s.sessions {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest != nil {
		s.evict(oldestID, oldest)
		s.log.Warn().Int("limit", s.limit).Msg("session limit reached, oldest session closed")
	}
}

func (s *SessionStore) evict(id string, e *entry) {
	delete(s.sessions, id)
	e.dashboard.Close()
	s.log.Debug().Str("session_id", id).Msg("session expired")
}

// Run sweeps every half TTL until ctx is done, then closes every session.
func (s *SessionStore) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Info().Int("expired", n).Msg("idle sessions closed")
			}
		}
	}
}

func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		delete(s.sessions, id)
		e.dashboard.Close()
	}
}
