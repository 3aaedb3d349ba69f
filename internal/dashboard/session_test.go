package dashboard

import (
	"strings"
	"testing"
	"time"
)

func TestSessionRollingExpiry(t *testing.T) {
	s := NewSessionStore("secret", 15*time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	cookie := s.Issue()

	// 10 minutes in: still live, and the deadline rolls forward.
	now = base.Add(10 * time.Minute)
	if !s.Validate(cookie) {
		t.Fatalf("session expired too early")
	}

	// Another 10 minutes: only live because the previous hit extended it.
	now = base.Add(20 * time.Minute)
	if !s.Validate(cookie) {
		t.Fatalf("rolling expiry did not extend session")
	}

	// 16 idle minutes past the last hit: gone.
	now = base.Add(36 * time.Minute)
	if s.Validate(cookie) {
		t.Fatalf("idle session survived past its deadline")
	}
}

func TestSessionForgedSignatureRejected(t *testing.T) {
	s := NewSessionStore("secret", time.Minute)
	cookie := s.Issue()

	token, _, _ := strings.Cut(cookie, ".")
	forged := token + "." + strings.Repeat("0", 64)
	if s.Validate(forged) {
		t.Fatalf("accepted cookie with forged signature")
	}
	if s.Validate(token) {
		t.Fatalf("accepted cookie without signature")
	}

	other := NewSessionStore("different", time.Minute)
	if other.Validate(cookie) {
		t.Fatalf("accepted cookie signed with another secret")
	}
}

func TestSessionRevoke(t *testing.T) {
	s := NewSessionStore("secret", time.Minute)
	cookie := s.Issue()
	if !s.Validate(cookie) {
		t.Fatalf("fresh session invalid")
	}
	s.Revoke(cookie)
	if s.Validate(cookie) {
		t.Fatalf("revoked session still valid")
	}
}
