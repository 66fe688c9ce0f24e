package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	dom "tasklist/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func sampleList() []dom.Task {
	due := "2026-05-01T09:30:00Z"
	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	return []dom.Task{
		{
			ID: 1, Title: "water plants", Description: "front porch", DueDate: &due,
			Priority: "high", Tags: []string{"home", "garden"},
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: 2, Title: "pick up eggs", Priority: "medium", Tags: []string{},
			Completed: true, CreatedAt: created, UpdatedAt: created.Add(time.Hour),
		},
	}
}

func assertRoundTrip(t *testing.T, s TaskStore) {
	t.Helper()
	ctx := context.Background()

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	want := sampleList()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].DueDate, got[i].DueDate)
		assert.Equal(t, want[i].Priority, got[i].Priority)
		assert.Equal(t, want[i].Tags, got[i].Tags)
		assert.Equal(t, want[i].Completed, got[i].Completed)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.True(t, want[i].UpdatedAt.Equal(got[i].UpdatedAt))
	}

	require.NoError(t, s.Save(ctx, got[1:]))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestMemoryTaskStore_RoundTrip(t *testing.T) {
	assertRoundTrip(t, NewMemoryTaskStore())
}

func TestMemoryTaskStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()
	require.NoError(t, s.Save(ctx, sampleList()))

	list, err := s.Load(ctx)
	require.NoError(t, err)
	list[0].Title = "changed"
	list[0].Tags[0] = "changed"

	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "water plants", again[0].Title)
	assert.Equal(t, "home", again[0].Tags[0])
}

func TestFileTaskStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.json")
	assertRoundTrip(t, NewFileTaskStore(path, false, zerolog.Nop()))
}

func TestFileTaskStore_WritesJSONArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := NewFileTaskStore(path, false, zerolog.Nop())

	require.NoError(t, s.Save(ctx, []dom.Task{{ID: 1, Title: "a", Priority: "low"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tags": []`)
	assert.NotContains(t, string(b), "countdown")
	assert.Equal(t, byte('['), b[0])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileTaskStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

	_, err := NewFileTaskStore(path, false, zerolog.Nop()).Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptStore))

	list, err := NewFileTaskStore(path, true, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFileTaskStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	list, err := NewFileTaskStore(path, false, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisTaskStore_RoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	assertRoundTrip(t, NewRedisTaskStore(rdb, "test:tasks"))
}

func TestRedisTaskStore_DefaultKeyAndCorruptValue(t *testing.T) {
	mr, rdb := newTestRedis(t)
	s := NewRedisTaskStore(rdb, "")

	require.NoError(t, s.Save(context.Background(), sampleList()))
	assert.True(t, mr.Exists("tasks"))

	require.NoError(t, mr.Set("tasks", "not json"))
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestPGTaskStore_RoundTrip(t *testing.T) {
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}
	ctx := context.Background()

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	goose.SetBaseFS(Migrations)
	require.NoError(t, goose.Up(db, "migrations"))
	require.NoError(t, db.Close())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = pool.Exec(ctx, `DELETE FROM tasks`)
	require.NoError(t, err)

	s := NewPGTaskStore(pool)
	assertRoundTrip(t, s)

	dup := sampleList()
	dup[1].ID = dup[0].ID
	assert.ErrorIs(t, s.Save(ctx, dup), ErrDuplicateID)
}
