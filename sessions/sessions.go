package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL matches the 24h login cookie window.
const DefaultTTL = 24 * time.Hour

// Session is the identity projection attached to a logged-in browser. It is a
// subset copy of the User record taken at login time, not a live view.
type Session struct {
	UserID     string
	Name       string
	Email      string
	Batch      string
	Department string
}

type entry struct {
	session   Session
	expiresAt time.Time
}

// Store maps opaque tokens to sessions in process memory. Expiry is passive:
// entries are checked on Resolve, never swept, and a restart drops everything.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Create stores the session under a fresh random token and returns the token.
func (s *Store) Create(session Session) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.entries[token] = entry{session: session, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Resolve returns the session for token, removing and rejecting it when the
// TTL has elapsed.
func (s *Store) Resolve(token string) (Session, bool) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if s.now().After(e.expiresAt) {
		s.Destroy(token)
		return Session{}, false
	}
	return e.session, true
}

func (s *Store) Destroy(token string) {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
}
