package flow

import (
	"testing"
	"time"
)

func TestConfirmResolvesOnce(t *testing.T) {
	s := NewStore(time.Minute)
	s.Begin("msg1", "user1", "payload")

	got, err := s.Confirm("msg1", "user1")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got != "payload" {
		t.Fatalf("payload=%v", got)
	}
	if _, err := s.Confirm("msg1", "user1"); err != ErrNoSession {
		t.Fatalf("second confirm err=%v want ErrNoSession", err)
	}
}

func TestOnlyInvokingUserMayResolve(t *testing.T) {
	s := NewStore(time.Minute)
	s.Begin("msg1", "user1", nil)

	if _, err := s.Confirm("msg1", "intruder"); err != ErrNoSession {
		t.Fatalf("err=%v want ErrNoSession", err)
	}
	// The owner's session is untouched by the rejected attempt.
	if _, err := s.Cancel("msg1", "user1"); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
}

func TestExpiryBlocksResolution(t *testing.T) {
	s := NewStore(time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }
	s.Begin("msg1", "user1", nil)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Confirm("msg1", "user1"); err != ErrExpired {
		t.Fatalf("err=%v want ErrExpired", err)
	}
	if _, err := s.Confirm("msg1", "user1"); err != ErrNoSession {
		t.Fatalf("expired session should be gone, err=%v", err)
	}
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	s := NewStore(time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }
	s.Begin("old", "u", nil)

	s.now = func() time.Time { return base.Add(30 * time.Second) }
	s.Begin("fresh", "u", nil)

	s.now = func() time.Time { return base.Add(70 * time.Second) }
	if swept := s.Sweep(); swept != 1 {
		t.Fatalf("swept=%d want 1", swept)
	}
	if s.Len() != 1 {
		t.Fatalf("len=%d want 1", s.Len())
	}
	if _, err := s.Cancel("fresh", "u"); err != nil {
		t.Fatalf("fresh session should survive sweep: %v", err)
	}
}

func TestBeginReplacesExistingSession(t *testing.T) {
	s := NewStore(time.Minute)
	s.Begin("msg1", "user1", "first")
	s.Begin("msg1", "user1", "second")
	got, err := s.Confirm("msg1", "user1")
	if err != nil || got != "second" {
		t.Fatalf("got %v err=%v", got, err)
	}
	if s.Len() != 0 {
		t.Fatalf("len=%d want 0", s.Len())
	}
}
