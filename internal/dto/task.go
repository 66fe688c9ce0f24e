package dto

import (
	"time"

	dom "tasklist/internal/domain"
)

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *string  `json:"due_date"` // "2026-02-19T18:30" or RFC3339
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest is the allow-list of fields PUT /tasks/{id} may change.
// Unknown fields are ignored.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"` // "" убирает срок
	Priority    *string   `json:"priority"`
	Tags        *[]string `json:"tags"`
	Completed   *bool     `json:"completed"`
}

type UpdateNotesRequest struct {
	Notes *string `json:"notes"`
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Countdown   *string   `json:"countdown"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse mirrors domain.Stats for the API docs.
type StatsResponse = dom.Stats
