package pos

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/application/cart"
)

var (
	// ErrSessionNotFound is returned when a session ID is unknown or expired
	ErrSessionNotFound = errors.New("pos session not found")
	// ErrCheckoutInFlight is returned when a checkout is already running on the session
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// Session is one register's cart plus submission state. Access goes through
// WithCart / BeginCheckout so concurrent requests on the same session
// serialize on the mutex.
type Session struct {
	ID         uuid.UUID
	Cart       *cart.Cart
	mu         sync.Mutex
	submitting bool
	lastSeen   time.Time
}

// StoreConfig holds configuration for the session store
type StoreConfig struct {
	SessionTTL      time.Duration // How long an idle session survives
	CleanupInterval time.Duration // How often to sweep expired sessions
}

// DefaultStoreConfig returns sensible defaults
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		SessionTTL:      8 * time.Hour,
		CleanupInterval: 15 * time.Minute,
	}
}

// Store keeps active POS sessions in memory, keyed by session ID
type Store struct {
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	tick     time.Duration
}

// NewStore creates a session store and starts the background cleanup goroutine
func NewStore(cfg StoreConfig) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      cfg.SessionTTL,
		tick:     cfg.CleanupInterval,
	}

	go s.cleanupLoop()

	return s
}

// Create opens a new session with an empty cart
func (s *Store) Create() *Session {
	session := &Session{
		ID:       uuid.New(),
		Cart:     cart.New(),
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session for the given ID
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	session, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	session.lastSeen = time.Now()
	session.mu.Unlock()

	return session, nil
}

// Delete removes a session
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cleanupLoop periodically removes idle sessions
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

// cleanup removes sessions idle past the TTL
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, session := range s.sessions {
		session.mu.Lock()
		stale := session.lastSeen.Before(cutoff) && !session.submitting
		session.mu.Unlock()
		if stale {
			delete(s.sessions, id)
		}
	}
}

// WithCart runs fn with exclusive access to the session's cart. Cart
// mutations are rejected while a checkout is in flight.
func (sess *Session) WithCart(fn func(c *cart.Cart) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitting {
		return ErrCheckoutInFlight
	}
	sess.lastSeen = time.Now()
	return fn(sess.Cart)
}

// BeginCheckout marks the session as submitting and hands the cart to the
// caller for exclusive use. It fails if another checkout already holds the
// flag, which is the double-submission guard.
func (sess *Session) BeginCheckout() (*cart.Cart, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitting {
		return nil, ErrCheckoutInFlight
	}
	sess.submitting = true
	sess.lastSeen = time.Now()
	return sess.Cart, nil
}

// EndCheckout releases the submission flag
func (sess *Session) EndCheckout() {
	sess.mu.Lock()
	sess.submitting = false
	sess.mu.Unlock()
}
