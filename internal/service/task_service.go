package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/prperemyshlev/pomodoro-service/internal/cache"
	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/internal/repository"
	"github.com/prperemyshlev/pomodoro-service/pkg/observability"
)

// taskService implements TaskService. Task lists are read through the cache;
// every mutation goes to the database first and then drops the owner's entry.
type taskService struct {
	tasks          repository.TaskRepository
	cache          cache.TaskCache
	metrics        *observability.CacheMetrics
	logger         *zap.Logger
	appendOnCreate bool
	loads          singleflight.Group
}

// TaskServiceOption configures a task service
type TaskServiceOption func(*taskService)

// WithAppendOnCreate makes CreateTask append the new task to an existing cache
// entry instead of invalidating it
func WithAppendOnCreate(enabled bool) TaskServiceOption {
	return func(s *taskService) {
		s.appendOnCreate = enabled
	}
}

// NewTaskService creates a new task service
func NewTaskService(
	tasks repository.TaskRepository,
	cache cache.TaskCache,
	metrics *observability.CacheMetrics,
	logger *zap.Logger,
	opts ...TaskServiceOption,
) TaskService {
	s := &taskService{
		tasks:   tasks,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTasks returns the owner's tasks, from the cache when it holds a
// non-empty entry. A cache that cannot be read is bypassed and left untouched.
func (s *taskService) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	cacheHealthy := true

	cached, err := s.cache.GetUserTasks(ctx, ownerID)
	switch {
	case err != nil:
		cacheHealthy = false
		s.metrics.Error(ctx, "get")
		s.logger.Warn("task cache read failed, serving from database",
			zap.String("user_id", ownerID),
			zap.Error(err),
		)
	case len(cached) > 0:
		s.metrics.Hit(ctx)
		return cached, nil
	default:
		s.metrics.Miss(ctx)
	}

	// The load is shared by every caller waiting on ownerID, so one caller
	// going away must not cancel it for the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.loads.Do(ownerID, func() (interface{}, error) {
		tasks, err := s.tasks.ListByOwner(loadCtx, ownerID)
		if err != nil {
			return nil, err
		}

		if cacheHealthy {
			if err := s.cache.SetUserTasks(loadCtx, ownerID, tasks); err != nil {
				s.metrics.Error(loadCtx, "set")
				s.logger.Warn("failed to populate task cache",
					zap.String("user_id", ownerID),
					zap.Error(err),
				)
			}
		}

		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return v.([]domain.Task), nil
}

// ListTasksByCategory returns the owner's tasks filed under categoryName.
// Filtered lists are not cached.
func (s *taskService) ListTasksByCategory(ctx context.Context, ownerID, categoryName string) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByCategory(ctx, ownerID, categoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by category: %w", err)
	}
	return tasks, nil
}

// GetTask returns one of the owner's tasks
func (s *taskService) GetTask(ctx context.Context, taskID, ownerID string) (*domain.Task, error) {
	task, err := s.tasks.GetByOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, mapTaskError(err)
	}
	return task, nil
}

// CreateTask stores a task for ownerID and returns it as stored
func (s *taskService) CreateTask(ctx context.Context, ownerID string, create domain.TaskCreate) (*domain.Task, error) {
	id, err := s.tasks.Create(ctx, create, ownerID)
	if err != nil {
		return nil, mapTaskError(err)
	}

	task, err := s.tasks.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, mapTaskError(err)
	}

	if s.appendOnCreate {
		if _, err := s.cache.AddTask(ctx, ownerID, *task); err != nil {
			s.metrics.Error(ctx, "append")
			s.logger.Warn("failed to append to task cache, invalidating",
				zap.String("user_id", ownerID),
				zap.Error(err),
			)
			if err := s.invalidate(ctx, ownerID); err != nil {
				return nil, err
			}
		}
		return task, nil
	}

	if err := s.invalidate(ctx, ownerID); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask overwrites one of the owner's tasks
func (s *taskService) UpdateTask(ctx context.Context, ownerID string, update domain.TaskUpdate) (*domain.Task, error) {
	if _, err := s.tasks.GetByOwner(ctx, update.TaskID, ownerID); err != nil {
		return nil, mapTaskError(err)
	}

	task, err := s.tasks.Update(ctx, update, ownerID)
	invalidateErr := s.invalidate(ctx, ownerID)
	if err != nil {
		return nil, mapTaskError(err)
	}
	if invalidateErr != nil {
		return nil, invalidateErr
	}

	return task, nil
}

// DeleteTask removes one of the owner's tasks
func (s *taskService) DeleteTask(ctx context.Context, taskID, ownerID string) error {
	if _, err := s.tasks.GetByOwner(ctx, taskID, ownerID); err != nil {
		return mapTaskError(err)
	}

	err := s.tasks.Delete(ctx, taskID, ownerID)
	invalidateErr := s.invalidate(ctx, ownerID)
	if err != nil {
		return mapTaskError(err)
	}

	return invalidateErr
}

func (s *taskService) invalidate(ctx context.Context, ownerID string) error {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.metrics.Error(ctx, "invalidate")
		s.logger.Error("failed to invalidate task cache",
			zap.String("user_id", ownerID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to invalidate task cache: %w", err)
	}
	return nil
}

func mapTaskError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrTaskNotFound
	case errors.Is(err, repository.ErrUnknownCategory):
		return ErrCategoryNotFound
	default:
		return err
	}
}
