package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

const userTasksKeyPrefix = "user_tasks:"

// TaskCache stores a snapshot of each user's task list.
type TaskCache interface {
	// GetUserTasks returns the cached list, or an empty slice when there is no entry.
	GetUserTasks(ctx context.Context, userID string) ([]domain.Task, error)
	// SetUserTasks replaces the entry. An empty list removes it.
	SetUserTasks(ctx context.Context, userID string, tasks []domain.Task) error
	// AddTask appends to an existing entry and reports whether one existed.
	// It never creates an entry.
	AddTask(ctx context.Context, userID string, task domain.Task) (bool, error)
	// Invalidate removes the entry. Removing a missing entry is not an error.
	Invalidate(ctx context.Context, userID string) error
}

type redisTaskCache struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewTaskCache creates a Redis backed task cache whose entries expire after ttl.
func NewTaskCache(redis *database.Redis, ttl time.Duration) TaskCache {
	return &redisTaskCache{redis: redis, ttl: ttl}
}

// UserTasksKey returns the Redis key holding a user's task list.
func UserTasksKey(userID string) string {
	return userTasksKeyPrefix + userID
}

func (c *redisTaskCache) GetUserTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	values, err := c.redis.Client.LRange(ctx, UserTasksKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(values))
	for _, value := range values {
		task, err := DecodeTask(value)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (c *redisTaskCache) SetUserTasks(ctx context.Context, userID string, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return c.Invalidate(ctx, userID)
	}

	values := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		value, err := EncodeTask(task)
		if err != nil {
			return err
		}
		values = append(values, value)
	}

	key := UserTasksKey(userID)
	_, err := c.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, values...)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache tasks: %w", err)
	}

	return nil
}

func (c *redisTaskCache) AddTask(ctx context.Context, userID string, task domain.Task) (bool, error) {
	value, err := EncodeTask(task)
	if err != nil {
		return false, err
	}

	length, err := c.redis.Client.RPushX(ctx, UserTasksKey(userID), value).Result()
	if err != nil {
		return false, fmt.Errorf("failed to append cached task: %w", err)
	}

	return length > 0, nil
}

func (c *redisTaskCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.redis.Client.Del(ctx, UserTasksKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached tasks: %w", err)
	}
	return nil
}
