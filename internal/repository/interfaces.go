package repository

import (
	"context"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByExternalToken(ctx context.Context, provider domain.Provider, token string) (*domain.User, error)
	UpdateExternalToken(ctx context.Context, userID string, provider domain.Provider, token string) error
}

// TaskRepository defines owner-scoped task operations. Every read and write
// that names a task also names its owner.
type TaskRepository interface {
	Create(ctx context.Context, task domain.TaskCreate, ownerID string) (string, error)
	GetByOwner(ctx context.Context, taskID, ownerID string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	ListByCategory(ctx context.Context, ownerID, categoryName string) ([]domain.Task, error)
	Update(ctx context.Context, update domain.TaskUpdate, ownerID string) (*domain.Task, error)
	Delete(ctx context.Context, taskID, ownerID string) error
}

// CategoryRepository defines methods for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
