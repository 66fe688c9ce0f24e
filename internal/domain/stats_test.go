package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, time.Now())

	assert.Equal(t, 0, s.TotalTasks)
	assert.Equal(t, 0, s.CompletedTasks)
	assert.Equal(t, 0, s.PendingTasks)
	assert.Equal(t, 0, s.OverdueTasks)
	assert.Equal(t, 0.0, s.CompletionRate)
	assert.Equal(t, map[string]int{"high": 0, "medium": 0, "low": 0}, s.PriorityCounts)
}

func TestComputeStats_Mixed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	list := []Task{
		{ID: 1, Priority: "high", Completed: true},
		{ID: 2, Priority: "medium", Completed: true},
		{ID: 3, Priority: "urgent", DueDate: ptr("2026-03-09T12:00:00Z")},
	}

	s := ComputeStats(list, now)

	assert.Equal(t, 3, s.TotalTasks)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 1, s.PendingTasks)
	assert.Equal(t, 1, s.OverdueTasks)
	assert.Equal(t, 66.7, s.CompletionRate)
	assert.Equal(t, map[string]int{"high": 1, "medium": 1, "low": 0}, s.PriorityCounts)
}

func TestComputeStats_OverdueCountsCompletedAndSkipsInvalid(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	list := []Task{
		{ID: 1, Completed: true, DueDate: ptr("2026-01-01T00:00:00Z")},
		{ID: 2, DueDate: ptr("not a date")},
		{ID: 3, DueDate: ptr("2027-01-01T00:00:00Z")},
	}

	s := ComputeStats(list, now)

	assert.Equal(t, 1, s.OverdueTasks)
	assert.Equal(t, 33.3, s.CompletionRate)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), NextID(nil))
	assert.Equal(t, int64(8), NextID([]Task{{ID: 3}, {ID: 7}, {ID: 1}}))
}

func TestClone_DoesNotShare(t *testing.T) {
	orig := Task{ID: 1, DueDate: ptr("2026-01-01"), Tags: []string{"a"}}
	c := orig.Clone()
	c.Tags[0] = "b"
	*c.DueDate = "2027-01-01"

	assert.Equal(t, "a", orig.Tags[0])
	assert.Equal(t, "2026-01-01", *orig.DueDate)
}
