package service

import (
	"context"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleLoginURL(ctx context.Context) (string, error)
	LoginWithGoogle(ctx context.Context, code, state string) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	IssueToken(userID string) (string, error)
	ResolveToken(token string) (string, error)
}

// TaskService defines owner-scoped task operations
type TaskService interface {
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	ListTasksByCategory(ctx context.Context, ownerID, categoryName string) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID, ownerID string) (*domain.Task, error)
	CreateTask(ctx context.Context, ownerID string, task domain.TaskCreate) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, ownerID string) error
}

// CategoryService defines category operations
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
