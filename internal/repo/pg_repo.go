package repo

import (
	"context"
	"embed"
	"fmt"

	dom "tasklist/internal/domain"
	"tasklist/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations holds the goose migrations for the postgres store.
//
//go:embed migrations/*.sql
var Migrations embed.FS

var taskColumns = []string{
	"id", "position", "title", "description", "due_date",
	"priority", "tags", "completed", "created_at", "updated_at",
}

// PGTaskStore keeps one row per task; Save rewrites the table in a single transaction.
type PGTaskStore struct {
	db *pgxpool.Pool
}

func NewPGTaskStore(db *pgxpool.Pool) *PGTaskStore {
	return &PGTaskStore{db: db}
}

func (s *PGTaskStore) Load(ctx context.Context) ([]dom.Task, error) {
	query := `
		SELECT id, title, description, due_date, priority, tags, completed, created_at, updated_at
		FROM tasks ORDER BY position ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()
	list := []dom.Task{}
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority,
			&t.Tags, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (s *PGTaskStore) Save(ctx context.Context, list []dom.Task) error {
	list = normalizeForSave(list)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"tasks"}, taskColumns,
		pgx.CopyFromSlice(len(list), func(i int) ([]any, error) {
			t := list[i]
			return []any{
				t.ID, i, t.Title, t.Description, t.DueDate,
				t.Priority, t.Tags, t.Completed, t.CreatedAt, t.UpdatedAt,
			}, nil
		}))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateID, err)
		}
		return fmt.Errorf("copy tasks: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		if utils.IsPGUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateID, err)
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
