package repo

import (
	"context"
	"sync"

	dom "tasklist/internal/domain"
)

// MemoryTaskStore keeps the list for the life of the process.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks []dom.Task
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: []dom.Task{}}
}

func (s *MemoryTaskStore) Load(_ context.Context) ([]dom.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dom.CloneAll(s.tasks), nil
}

func (s *MemoryTaskStore) Save(_ context.Context, list []dom.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = dom.CloneAll(list)
	return nil
}
