package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// initials derives up to two uppercase initials from a display name, matching
// the avatar fallback the product shows elsewhere.
func initials(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "?"
	}
	var b strings.Builder
	for i, part := range parts {
		if i == 2 {
			break
		}
		first, _ := utf8.DecodeRuneInString(part)
		b.WriteString(strings.ToUpper(string(first)))
	}
	return b.String()
}

// relativeTime renders how long ago t was, coarsely.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncate shortens s to width runes with an ellipsis.
func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
