// Package flow tracks short-lived interactive sessions: a rendered
// message waiting for exactly one user to confirm or cancel. Each
// session is a small state machine with a wall-clock expiry instead of a
// UI-library timer callback.
package flow

import (
	"errors"
	"sync"
	"time"
)

// State of one confirm session.
type State int

const (
	StateAwaitingConfirmation State = iota
	StateConfirmed
	StateCancelled
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

var (
	// ErrNoSession means no live session exists for that message and
	// user; interactions from anyone but the original invoker land here.
	ErrNoSession = errors.New("no active session for this interaction")
	ErrExpired   = errors.New("session expired")
)

type key struct {
	messageID string
	userID    string
}

// Session is one pending confirmation, owned by the invoking user.
type Session struct {
	MessageID string
	UserID    string
	State     State
	Payload   any
	ExpiresAt time.Time
}

// Store holds live sessions. Sessions transition exactly once out of
// AwaitingConfirmation; expired sessions resolve lazily on access.
type Store struct {
	mu       sync.Mutex
	sessions map[key]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[key]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin opens a session for (messageID, userID). A prior session under
// the same key is replaced: the old message's buttons are dead anyway.
func (s *Store) Begin(messageID, userID string, payload any) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		MessageID: messageID,
		UserID:    userID,
		State:     StateAwaitingConfirmation,
		Payload:   payload,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.sessions[key{messageID, userID}] = sess
	return sess
}

// Confirm resolves the session to Confirmed and returns its payload.
// Only the original user's live, unexpired session can confirm.
func (s *Store) Confirm(messageID, userID string) (any, error) {
	return s.resolve(messageID, userID, StateConfirmed)
}

// Cancel resolves the session to Cancelled.
func (s *Store) Cancel(messageID, userID string) (any, error) {
	return s.resolve(messageID, userID, StateCancelled)
}

func (s *Store) resolve(messageID, userID string, to State) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{messageID, userID}
	sess, ok := s.sessions[k]
	if !ok || sess.State != StateAwaitingConfirmation {
		return nil, ErrNoSession
	}
	if s.now().After(sess.ExpiresAt) {
		sess.State = StateExpired
		delete(s.sessions, k)
		return nil, ErrExpired
	}
	sess.State = to
	delete(s.sessions, k)
	return sess.Payload, nil
}

// Sweep drops expired sessions and reports how many went. Run it
// periodically so abandoned flows do not accumulate.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var swept int
	for k, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			sess.State = StateExpired
			delete(s.sessions, k)
			swept++
		}
	}
	return swept
}

// Len reports live session count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
