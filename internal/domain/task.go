package domain

import "time"

// Priority labels recognised by the statistics. Any other string is stored
// as given but not counted.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task is the only persisted entity.
// Не зависит от Gin, Postgres, Redis.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	out.Tags = append([]string{}, t.Tags...)
	return out
}

// CloneAll copies every task in list.
func CloneAll(list []Task) []Task {
	out := make([]Task, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// NextID returns 1 for an empty list, else one more than the largest id.
func NextID(list []Task) int64 {
	var max int64
	for _, t := range list {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(list []Task, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
