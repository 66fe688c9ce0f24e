package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	dom "tasklist/internal/domain"
	"tasklist/internal/repo"

	"golang.org/x/sync/singleflight"
)

const loadKey = "load"

var (
	ErrNotFound   = errors.New("task not found")
	ErrValidation = errors.New("validation failed")
)

// CreateInput carries the client-settable fields of a new task.
type CreateInput struct {
	Title       string
	Description string
	DueDate     *string
	Priority    string
	Tags        []string
}

// Patch lists the fields Update may change. Nil means "leave as is".
type Patch struct {
	Title       *string
	Description *string
	DueDate     *string // "" clears the due date
	Priority    *string
	Tags        *[]string
	Completed   *bool
}

// TaskService implements the task lifecycle on top of a TaskStore. Every
// mutation runs load, change and save under one mutex.
type TaskService struct {
	store repo.TaskStore
	now   func() time.Time
	mu    sync.Mutex
	sf    singleflight.Group
}

type Option func(*TaskService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

func NewTaskService(store repo.TaskStore, opts ...Option) *TaskService {
	s := &TaskService{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the instant used for timestamps and derived fields.
func (s *TaskService) Now() time.Time {
	return s.now()
}

func (s *TaskService) Create(ctx context.Context, in CreateInput) (dom.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	var created dom.Task
	err := s.mutate(ctx, func(list []dom.Task) ([]dom.Task, error) {
		now := s.now()
		created = dom.Task{
			ID:          dom.NextID(list),
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			DueDate:     normalizeDue(in.DueDate),
			Priority:    normalizePriority(in.Priority),
			Tags:        normalizeTags(in.Tags),
			Completed:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return append(list, created), nil
	})
	if err != nil {
		return dom.Task{}, err
	}
	return created, nil
}

// List returns the stored tasks narrowed and ordered by f.
func (s *TaskService) List(ctx context.Context, f dom.Filter) ([]dom.Task, error) {
	list, err := s.loadShared(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(list), nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	list, err := s.loadShared(ctx)
	if err != nil {
		return dom.Task{}, err
	}
	i := dom.IndexOf(list, id)
	if i < 0 {
		return dom.Task{}, ErrNotFound
	}
	return list[i], nil
}

// Overdue lists incomplete tasks whose due date has passed.
func (s *TaskService) Overdue(ctx context.Context) ([]dom.Task, error) {
	list, err := s.loadShared(ctx)
	if err != nil {
		return nil, err
	}
	return dom.Overdue(list, s.now()), nil
}

func (s *TaskService) Stats(ctx context.Context) (dom.Stats, error) {
	list, err := s.loadShared(ctx)
	if err != nil {
		return dom.Stats{}, err
	}
	return dom.ComputeStats(list, s.now()), nil
}

func (s *TaskService) Update(ctx context.Context, id int64, p Patch) (dom.Task, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dom.Task{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	return s.mutateOne(ctx, id, func(t *dom.Task) {
		if p.Title != nil {
			t.Title = strings.TrimSpace(*p.Title)
		}
		if p.Description != nil {
			t.Description = strings.TrimSpace(*p.Description)
		}
		if p.DueDate != nil {
			t.DueDate = normalizeDue(p.DueDate)
		}
		if p.Priority != nil {
			t.Priority = normalizePriority(*p.Priority)
		}
		if p.Tags != nil {
			t.Tags = normalizeTags(*p.Tags)
		}
		if p.Completed != nil {
			t.Completed = *p.Completed
		}
	})
}

func (s *TaskService) Toggle(ctx context.Context, id int64) (dom.Task, error) {
	return s.mutateOne(ctx, id, func(t *dom.Task) {
		t.Completed = !t.Completed
	})
}

// UpdateNotes overwrites the description; nil notes clear it.
func (s *TaskService) UpdateNotes(ctx context.Context, id int64, notes *string) (dom.Task, error) {
	return s.mutateOne(ctx, id, func(t *dom.Task) {
		t.Description = ""
		if notes != nil {
			t.Description = strings.TrimSpace(*notes)
		}
	})
}

// Delete removes the task and returns it as it was.
func (s *TaskService) Delete(ctx context.Context, id int64) (dom.Task, error) {
	var removed dom.Task
	err := s.mutate(ctx, func(list []dom.Task) ([]dom.Task, error) {
		i := dom.IndexOf(list, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		removed = list[i]
		return append(list[:i], list[i+1:]...), nil
	})
	if err != nil {
		return dom.Task{}, err
	}
	return removed, nil
}

// Replace swaps the whole list for incoming. Tasks with id 0 get fresh ids;
// missing timestamps are stamped now.
func (s *TaskService) Replace(ctx context.Context, incoming []dom.Task) ([]dom.Task, error) {
	now := s.now()
	out := make([]dom.Task, 0, len(incoming))
	seen := make(map[int64]bool, len(incoming))
	for i, t := range incoming {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			return nil, fmt.Errorf("%w: task %d: title is required", ErrValidation, i)
		}
		if t.ID < 0 {
			return nil, fmt.Errorf("%w: task %d: negative id", ErrValidation, i)
		}
		if t.ID != 0 {
			if seen[t.ID] {
				return nil, fmt.Errorf("%w: duplicate id %d", ErrValidation, t.ID)
			}
			seen[t.ID] = true
		}
		t.Description = strings.TrimSpace(t.Description)
		t.DueDate = normalizeDue(t.DueDate)
		t.Priority = normalizePriority(t.Priority)
		t.Tags = normalizeTags(t.Tags)
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = now
		}
		out = append(out, t)
	}
	for i := range out {
		if out[i].ID == 0 {
			out[i].ID = dom.NextID(out)
		}
	}

	err := s.mutate(ctx, func([]dom.Task) ([]dom.Task, error) {
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TaskService) mutateOne(ctx context.Context, id int64, change func(*dom.Task)) (dom.Task, error) {
	var updated dom.Task
	err := s.mutate(ctx, func(list []dom.Task) ([]dom.Task, error) {
		i := dom.IndexOf(list, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		change(&list[i])
		list[i].UpdatedAt = s.now()
		updated = list[i]
		return list, nil
	})
	if err != nil {
		return dom.Task{}, err
	}
	return updated, nil
}

func (s *TaskService) mutate(ctx context.Context, change func([]dom.Task) ([]dom.Task, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	next, err := change(list)
	if err != nil {
		return err
	}
	err = s.store.Save(ctx, next)
	s.sf.Forget(loadKey)
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// loadShared coalesces concurrent reads into one store load. The result is
// shared between callers and must not be modified. mutate forgets the key
// once it has saved, so a read issued after a write never joins a load
// that started before it.
func (s *TaskService) loadShared(ctx context.Context) ([]dom.Task, error) {
	ch := s.sf.DoChan(loadKey, func() (interface{}, error) {
		list, err := s.store.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		return list, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]dom.Task), nil
	}
}

// normalizeDue stores a blank due date as absent; anything else is kept verbatim.
func normalizeDue(due *string) *string {
	if due == nil || strings.TrimSpace(*due) == "" {
		return nil
	}
	d := *due
	return &d
}

func normalizePriority(p string) string {
	if p == "" {
		return dom.PriorityMedium
	}
	return p
}

func normalizeTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
