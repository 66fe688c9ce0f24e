package domain

import (
	"math"
	"time"
)

// Stats aggregates the task list at one instant.
type Stats struct {
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	PendingTasks   int            `json:"pending_tasks"`
	OverdueTasks   int            `json:"overdue_tasks"`
	PriorityCounts map[string]int `json:"priority_counts"`
	CompletionRate float64        `json:"completion_rate"`
}

// ComputeStats counts each task independently. Overdue includes completed
// tasks whose due date has passed.
func ComputeStats(list []Task, now time.Time) Stats {
	s := Stats{
		TotalTasks: len(list),
		PriorityCounts: map[string]int{
			PriorityHigh:   0,
			PriorityMedium: 0,
			PriorityLow:    0,
		},
	}
	for _, t := range list {
		if t.Completed {
			s.CompletedTasks++
		}
		if IsOverdue(t.DueDate, now) {
			s.OverdueTasks++
		}
		if _, ok := s.PriorityCounts[t.Priority]; ok {
			s.PriorityCounts[t.Priority]++
		}
	}
	s.PendingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		rate := float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
		s.CompletionRate = math.Round(rate*10) / 10
	}
	return s
}
