package repo

import (
	"context"
	"errors"

	dom "tasklist/internal/domain"
)

var (
	// ErrCorruptStore means the persisted list exists but cannot be decoded.
	ErrCorruptStore = errors.New("task store is corrupt")
	// ErrDuplicateID is returned by stores that enforce id uniqueness on save.
	ErrDuplicateID = errors.New("duplicate task id")
)

// TaskStore owns the full task list. Load returns a fresh copy the caller may
// mutate; Save replaces the whole list.
type TaskStore interface {
	Load(ctx context.Context) ([]dom.Task, error)
	Save(ctx context.Context, list []dom.Task) error
}
