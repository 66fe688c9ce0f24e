package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	CountdownOverdue = "Overdue"
	CountdownInvalid = "Invalid date"
)

// dueLayouts are tried in order. Layouts without an offset are read in the
// server's local zone.
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDueDate parses an ISO-8601 due date in any accepted layout.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// IsOverdue reports whether due parses and lies strictly before now.
func IsOverdue(due *string, now time.Time) bool {
	if due == nil || strings.TrimSpace(*due) == "" {
		return false
	}
	t, err := ParseDueDate(*due)
	if err != nil {
		return false
	}
	return t.Before(now)
}

// Countdown renders the time left until due, or nil when there is no due date.
func Countdown(due *string, now time.Time) *string {
	if due == nil || strings.TrimSpace(*due) == "" {
		return nil
	}
	t, err := ParseDueDate(*due)
	if err != nil {
		return strPtr(CountdownInvalid)
	}
	if !t.After(now) {
		return strPtr(CountdownOverdue)
	}
	return strPtr(formatRemaining(t.Sub(now)))
}

func formatRemaining(d time.Duration) string {
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total / 60) % 24
	minutes := total % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func strPtr(s string) *string { return &s }
