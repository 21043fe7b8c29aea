// Package logbook records user-visible activity ("Card added", "Member
// invited") so the TUI can render a recent-activity panel. Entries also go to
// activity.log under the config directory so a session's history survives the
// terminal closing.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is the severity of an entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const keepEntries = 64

// Entry is one recorded event.
type Entry struct {
	At      time.Time
	Level   Level
	Message string
}

// Logbook keeps the most recent entries in memory and appends each one to its
// backing file. A nil *Logbook is usable; every method is a no-op on it.
type Logbook struct {
	path string

	mu      sync.Mutex
	entries []Entry
}

// New creates a logbook writing to activity.log under dir.
func New(dir string) (*Logbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure dir: %w", err)
	}
	return &Logbook{path: filepath.Join(dir, "activity.log")}, nil
}

// Path returns the backing file.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append records an entry.
func (l *Logbook) Append(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	entry := Entry{
		At:      time.Now(),
		Level:   level,
		Message: strings.TrimSpace(fmt.Sprintf(format, args...)),
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > keepEntries {
		l.entries = l.entries[len(l.entries)-keepEntries:]
	}
	l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintf(file, "%s %-5s %s\n", entry.At.UTC().Format(time.RFC3339), entry.Level, entry.Message)
}

// Info records an informational entry.
func (l *Logbook) Info(format string, args ...any) { l.Append(LevelInfo, format, args...) }

// Warn records a warning entry.
func (l *Logbook) Warn(format string, args ...any) { l.Append(LevelWarn, format, args...) }

// Error records an error entry.
func (l *Logbook) Error(format string, args ...any) { l.Append(LevelError, format, args...) }

// Tail returns up to maxLines of the most recent entries, oldest first,
// formatted for the activity panel.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if len(l.entries) > maxLines {
		start = len(l.entries) - maxLines
	}
	lines := make([]string, 0, len(l.entries)-start)
	for _, entry := range l.entries[start:] {
		lines = append(lines, fmt.Sprintf("%s %s", entry.At.Format("15:04:05"), entry.Message))
	}
	return lines
}
