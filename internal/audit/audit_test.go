package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestAppendWritesOneJSONLinePerEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "admin.log")
	l := New(path, nil)

	l.Append(Entry{
		Command:       "admin-add-cash",
		UserID:        "42",
		Username:      "tex",
		Amount:        250,
		BalanceBefore: Int64(100),
		BalanceAfter:  Int64(350),
		Source:        "Admin Give Cash",
	})
	l.Append(Entry{Command: "admin-remove-warrant", UserID: "42"})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var lines []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		lines = append(lines, e)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines want 2", len(lines))
	}
	if lines[0].Command != "admin-add-cash" || *lines[0].BalanceAfter != 350 {
		t.Fatalf("unexpected first entry: %+v", lines[0])
	}
	if lines[0].Timestamp.IsZero() {
		t.Fatalf("timestamp not filled in")
	}
	if lines[1].BalanceBefore != nil {
		t.Fatalf("optional balance should be omitted, got %v", *lines[1].BalanceBefore)
	}
}

func TestAppendFailureIsSwallowed(t *testing.T) {
	dir := t.TempDir()
	// A path whose parent is a regular file cannot be created.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	l := New(filepath.Join(blocker, "admin.log"), nil)
	l.Append(Entry{Command: "item-buy", UserID: "7"}) // must not panic
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Append(Entry{Command: "noop"})
}
