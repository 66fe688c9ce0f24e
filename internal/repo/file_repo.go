package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	dom "tasklist/internal/domain"

	"github.com/rs/zerolog"
)

// FileTaskStore re-reads and rewrites a single JSON array on every call.
// There is no cross-process locking: concurrent writers lose updates.
type FileTaskStore struct {
	path      string
	forgiving bool
	logger    zerolog.Logger
}

// NewFileTaskStore returns a store backed by path. With forgiving set, a file
// that cannot be decoded is treated as an empty list instead of an error.
func NewFileTaskStore(path string, forgiving bool, logger zerolog.Logger) *FileTaskStore {
	return &FileTaskStore{path: path, forgiving: forgiving, logger: logger}
}

func (s *FileTaskStore) Load(_ context.Context) ([]dom.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []dom.Task{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	list, err := decodeTasks(b)
	if err != nil {
		if s.forgiving {
			s.logger.Warn().
				Err(err).
				Str("path", s.path).
				Msg("ignoring unreadable task file")
			return []dom.Task{}, nil
		}
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return list, nil
}

func (s *FileTaskStore) Save(_ context.Context, list []dom.Task) error {
	b, err := json.MarshalIndent(normalizeForSave(list), "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// decodeTasks parses a JSON array of tasks. Blank input is an empty list.
func decodeTasks(b []byte) ([]dom.Task, error) {
	if len(b) == 0 {
		return []dom.Task{}, nil
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return normalizeForSave(list), nil
}

// normalizeForSave keeps tags as [] rather than null in the stored JSON.
func normalizeForSave(list []dom.Task) []dom.Task {
	if list == nil {
		return []dom.Task{}
	}
	for i := range list {
		if list[i].Tags == nil {
			list[i].Tags = []string{}
		}
	}
	return list
}
