package dashboard

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is the rolling idle expiry: every authenticated request
// pushes the deadline out again.
const SessionTTL = 15 * time.Minute

// SessionStore issues and validates signed session cookies. Tokens live
// server-side; the cookie carries token plus an HMAC so a forged value
// is rejected before the map lookup.
type SessionStore struct {
	mu       sync.Mutex
	secret   []byte
	ttl      time.Duration
	sessions map[string]time.Time
	now      func() time.Time
}

func NewSessionStore(secret string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionStore{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Issue creates a fresh session and returns the cookie value.
func (s *SessionStore) Issue() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = s.now().Add(s.ttl)
	s.mu.Unlock()
	return token + "." + s.sign(token)
}

// Validate checks a cookie value and, when live, rolls the expiry
// forward.
func (s *SessionStore) Validate(cookieValue string) bool {
	token, ok := s.verify(cookieValue)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(deadline) {
		delete(s.sessions, token)
		return false
	}
	s.sessions[token] = s.now().Add(s.ttl)
	return true
}

// Revoke drops the session, if any.
func (s *SessionStore) Revoke(cookieValue string) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *SessionStore) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *SessionStore) verify(cookieValue string) (string, bool) {
	token, sig, ok := strings.Cut(cookieValue, ".")
	if !ok || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(token))) {
		return "", false
	}
	return token, true
}
