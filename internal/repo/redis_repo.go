package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dom "tasklist/internal/domain"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "tasks"

// RedisTaskStore keeps the whole list as one JSON value under a single key.
type RedisTaskStore struct {
	rdb *redis.Client
	key string
}

// NewRedisTaskStore returns a store using key, or "tasks" when key is empty.
func NewRedisTaskStore(rdb *redis.Client, key string) *RedisTaskStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisTaskStore{rdb: rdb, key: key}
}

func (s *RedisTaskStore) Load(ctx context.Context) ([]dom.Task, error) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []dom.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	list, err := decodeTasks(b)
	if err != nil {
		return nil, fmt.Errorf("redis key %s: %w", s.key, err)
	}
	return list, nil
}

func (s *RedisTaskStore) Save(ctx context.Context, list []dom.Task) error {
	b, err := json.Marshal(normalizeForSave(list))
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
