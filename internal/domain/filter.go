package domain

import (
	"sort"
	"strings"
	"time"
)

// Status filters.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Sort keys.
const (
	SortCreated  = "created"
	SortDueDate  = "due_date"
	SortPriority = "priority"
	SortTitle    = "title"
)

// Filter narrows and orders a task list. Zero value keeps everything in
// stored order; SortCreated puts the newest first.
type Filter struct {
	Query    string
	Priority string
	Status   string
	Sort     string
}

// Apply returns the matching tasks, sorted per f.Sort. The input is not modified.
func (f Filter) Apply(list []Task) []Task {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Task, 0, len(list))
	for _, t := range list {
		if q != "" && !matchesQuery(t, q) {
			continue
		}
		if f.Priority != "" && f.Priority != StatusAll && t.Priority != f.Priority {
			continue
		}
		switch f.Status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	switch f.Sort {
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			return dueBefore(out[i].DueDate, out[j].DueDate)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return priorityRank(out[i].Priority) < priorityRank(out[j].Priority)
		})
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}

// Overdue returns incomplete tasks whose due date has passed, earliest first.
func Overdue(list []Task, now time.Time) []Task {
	out := make([]Task, 0)
	for _, t := range list {
		if !t.Completed && IsOverdue(t.DueDate, now) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dueBefore(out[i].DueDate, out[j].DueDate)
	})
	return out
}

func matchesQuery(t Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func priorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// dueBefore orders parseable dates ascending; absent or invalid dates go last.
func dueBefore(a, b *string) bool {
	ta, okA := dueTime(a)
	tb, okB := dueTime(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA:
		return true
	default:
		return false
	}
}

func dueTime(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := ParseDueDate(*s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
