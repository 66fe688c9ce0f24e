package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ids(list []Task) []int64 {
	out := make([]int64, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Title: "Buy milk", Priority: "low", Tags: []string{"shopping"}, DueDate: ptr("2026-03-12T09:00:00Z")},
		{ID: 2, Title: "write report", Description: "quarterly numbers", Priority: "high", Completed: true},
		{ID: 3, Title: "Call plumber", Priority: "medium", Tags: []string{"home"}, DueDate: ptr("2026-03-11T09:00:00Z")},
		{ID: 4, Title: "archive", Priority: "someday", DueDate: ptr("garbage")},
	}
}

func TestFilter_ZeroValueKeepsOrder(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(Filter{}.Apply(sampleTasks())))
}

func TestFilter_Query(t *testing.T) {
	list := sampleTasks()

	assert.Equal(t, []int64{1}, ids(Filter{Query: "SHOP"}.Apply(list)))
	assert.Equal(t, []int64{2}, ids(Filter{Query: "quarterly"}.Apply(list)))
	assert.Equal(t, []int64{3}, ids(Filter{Query: "plumb"}.Apply(list)))
}

func TestFilter_PriorityAndStatus(t *testing.T) {
	list := sampleTasks()

	assert.Equal(t, []int64{2}, ids(Filter{Priority: "high"}.Apply(list)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(Filter{Priority: "all"}.Apply(list)))
	assert.Equal(t, []int64{2}, ids(Filter{Status: StatusCompleted}.Apply(list)))
	assert.Equal(t, []int64{1, 3, 4}, ids(Filter{Status: StatusActive}.Apply(list)))
}

func TestFilter_Sort(t *testing.T) {
	list := sampleTasks()

	assert.Equal(t, []int64{3, 1, 2, 4}, ids(Filter{Sort: SortDueDate}.Apply(list)))
	assert.Equal(t, []int64{2, 3, 1, 4}, ids(Filter{Sort: SortPriority}.Apply(list)))
	assert.Equal(t, []int64{4, 1, 3, 2}, ids(Filter{Sort: SortTitle}.Apply(list)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(list), "input must stay untouched")
}

func TestFilter_SortCreatedNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	list := sampleTasks()
	list[0].CreatedAt = base.Add(2 * time.Hour)
	list[1].CreatedAt = base
	list[2].CreatedAt = base.Add(3 * time.Hour)
	list[3].CreatedAt = base.Add(2 * time.Hour)

	assert.Equal(t, []int64{3, 1, 4, 2}, ids(Filter{Sort: SortCreated}.Apply(list)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(Filter{Sort: ""}.Apply(list)))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	list := sampleTasks()
	list = append(list, Task{ID: 5, Completed: true, DueDate: ptr("2026-03-01T00:00:00Z")})

	assert.Equal(t, []int64{3, 1}, ids(Overdue(list, now)))
}
