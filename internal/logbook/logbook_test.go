package logbook

import (
	"os"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	lb, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	lb.Info("Card added")
	lb.Warn("Invite failed: %s", "duplicate email")
	lb.Error("Card update failed")

	lines := lb.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Invite failed: duplicate email") {
		t.Fatalf("unexpected first tail line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Card update failed") {
		t.Fatalf("unexpected second tail line: %q", lines[1])
	}
}

func TestTailOrderIsOldestFirst(t *testing.T) {
	lb, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	lb.Info("first")
	lb.Info("second")
	lines := lb.Tail(10)
	if len(lines) != 2 || !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Fatalf("unexpected tail order: %v", lines)
	}
}

func TestEntriesArePersistedToFile(t *testing.T) {
	dir := t.TempDir()
	lb, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	lb.Info("Signed in as Ada")

	raw, err := os.ReadFile(lb.Path())
	if err != nil {
		t.Fatalf("read activity log: %v", err)
	}
	if !strings.Contains(string(raw), "INFO") || !strings.Contains(string(raw), "Signed in as Ada") {
		t.Fatalf("unexpected file contents: %q", raw)
	}
}

func TestRingDropsOldEntries(t *testing.T) {
	lb, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < keepEntries+10; i++ {
		lb.Info("entry %d", i)
	}
	lines := lb.Tail(keepEntries * 2)
	if len(lines) != keepEntries {
		t.Fatalf("expected ring capped at %d, got %d", keepEntries, len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "entry") {
		t.Fatalf("unexpected newest entry: %q", lines[len(lines)-1])
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Info("ignored")
	if lines := lb.Tail(5); lines != nil {
		t.Fatalf("nil logbook should tail nothing, got %v", lines)
	}
	if lb.Path() != "" {
		t.Fatal("nil logbook should have empty path")
	}
}
