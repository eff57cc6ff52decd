package repository

import (
	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Task     TaskRepository
	Category CategoryRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Task:     NewTaskRepository(db),
		Category: NewCategoryRepository(db),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}
