// Package session keeps per-conversation state. Each browser conversation
// gets its own Session keyed by a UUID, replacing any notion of a single
// process-wide user: concurrent conversations never share identity.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felipe-tno/moneymate/internal/core"
)

// Session holds the conversational state for one caller: the registered user
// id and at most one expense draft awaiting category confirmation. Callers
// must hold the embedded mutex while reading or mutating state so that the
// registration -> confirmation -> interpretation precedence is applied
// atomically per message.
type Session struct {
	sync.Mutex

	ID       string
	UserID   string
	Pending  *core.Interpretation
	LastSeen time.Time
}

// Store is a mutex-guarded in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates the registry and starts the eviction loop.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

// GetOrCreate returns the session for id, minting a fresh one (with a new
// UUID) when id is empty or unknown. The second return reports creation.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			sess.Lock()
			sess.LastSeen = time.Now()
			sess.Unlock()
			return sess, false
		}
	}

	sess := &Session{
		ID:       uuid.NewString(),
		LastSeen: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, true
}

// Get returns the session for id, or nil when unknown.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the eviction loop.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) evictLoop() {
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictStale()
		}
	}
}

func (s *Store) evictStale() {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.Lock()
		stale := sess.LastSeen.Before(cutoff)
		sess.Unlock()
		if stale {
			delete(s.sessions, id)
		}
	}
}
