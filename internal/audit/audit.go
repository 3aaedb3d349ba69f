// Package audit appends one JSON line per mutation to an append-only log
// file. The trail is write-only: nothing in the running system reads it
// back, and a failed append must never fail the mutation it records.
package audit

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one audit record. Amount and the balance pair are zero-valued
// for mutations that move no money.
type Entry struct {
	Timestamp     time.Time      `json:"timestamp"`
	Command       string         `json:"command"`
	UserID        string         `json:"userId"`
	Username      string         `json:"username,omitempty"`
	GuildID       string         `json:"guildId,omitempty"`
	Amount        int64          `json:"amount"`
	BalanceBefore *int64         `json:"balanceBefore,omitempty"`
	BalanceAfter  *int64         `json:"balanceAfter,omitempty"`
	Source        string         `json:"source,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Logger serializes appends to a single JSONL file.
type Logger struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

// New returns a logger that appends to path, creating the containing
// directory on first write.
func New(path string, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{path: path, log: logger}
}

// Append writes one entry, best effort. Failures are reported to the
// diagnostic logger and otherwise swallowed.
func (l *Logger) Append(e Entry) {
	if l == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.append(e); err != nil {
		l.log.Error("audit append failed", "path", l.path, "err", err)
	}
}

func (l *Logger) append(e Entry) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

// Int64 returns a pointer for the optional balance fields.
func Int64(v int64) *int64 {
	return &v
}
