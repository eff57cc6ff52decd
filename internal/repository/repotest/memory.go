// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/internal/repository"
)

// Store holds the three repositories over shared state, so tasks see the
// categories created through CategoryRepo.
type Store struct {
	mu sync.Mutex

	users      []domain.User
	tasks      []domain.Task
	categories []domain.Category

	listCalls int
	updateErr error

	User     *UserRepo
	Task     *TaskRepo
	Category *CategoryRepo
}

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{}
	s.User = &UserRepo{s: s}
	s.Task = &TaskRepo{s: s}
	s.Category = &CategoryRepo{s: s}
	return s
}

// Repositories returns the store as a repository set
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{User: s.User, Task: s.Task, Category: s.Category}
}

// ListCalls reports how many times TaskRepo.ListByOwner ran
func (s *Store) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// FailUpdates makes TaskRepo.Update return err until called with nil
func (s *Store) FailUpdates(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateErr = err
}

func (s *Store) categoryExists(id string) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) categoryName(id *string) string {
	if id == nil {
		return ""
	}
	for _, c := range s.categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return ""
}

// UserRepo implements repository.UserRepository
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if sameValue(existing.Username, user.Username) {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateUsername)
		}
		if sameValue(existing.Email, user.Email) {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateEmail)
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r *UserRepo) find(what string, match func(u *domain.User) bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if match(&r.s.users[i]) {
			found := r.s.users[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user with %s not found: %w", what, repository.ErrNotFound)
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find("id", func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find("username", func(u *domain.User) bool {
		return u.Username != nil && *u.Username == username
	})
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find("email", func(u *domain.User) bool {
		return u.Email != nil && *u.Email == email
	})
}

func (r *UserRepo) GetByExternalToken(_ context.Context, provider domain.Provider, token string) (*domain.User, error) {
	switch provider {
	case domain.ProviderGoogle:
		return r.find("google_token", func(u *domain.User) bool {
			return u.GoogleToken != nil && *u.GoogleToken == token
		})
	case domain.ProviderYandex:
		return r.find("yandex_token", func(u *domain.User) bool {
			return u.YandexToken != nil && *u.YandexToken == token
		})
	default:
		return nil, repository.ErrUnknownProvider
	}
}

func (r *UserRepo) UpdateExternalToken(_ context.Context, userID string, provider domain.Provider, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if r.s.users[i].ID != userID {
			continue
		}
		switch provider {
		case domain.ProviderGoogle:
			r.s.users[i].GoogleToken = &token
		case domain.ProviderYandex:
			r.s.users[i].YandexToken = &token
		default:
			return repository.ErrUnknownProvider
		}
		return nil
	}
	return fmt.Errorf("user with id %s not found: %w", userID, repository.ErrNotFound)
}

// TaskRepo implements repository.TaskRepository
type TaskRepo struct {
	s *Store
}

func (r *TaskRepo) Create(_ context.Context, task domain.TaskCreate, ownerID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if task.CategoryID != nil && !r.s.categoryExists(*task.CategoryID) {
		return "", fmt.Errorf("failed to create task: %w", repository.ErrUnknownCategory)
	}

	id := uuid.NewString()
	r.s.tasks = append(r.s.tasks, domain.Task{
		ID:            id,
		Name:          task.Name,
		PomodoroCount: task.PomodoroCount,
		CategoryID:    task.CategoryID,
		UserID:        ownerID,
	})
	return id, nil
}

func (r *TaskRepo) GetByOwner(_ context.Context, taskID, ownerID string) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, task := range r.s.tasks {
		if task.ID == taskID && task.UserID == ownerID {
			found := task
			return &found, nil
		}
	}
	return nil, fmt.Errorf("task %s not found: %w", taskID, repository.ErrNotFound)
}

func (r *TaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.listCalls++
	tasks := []domain.Task{}
	for _, task := range r.s.tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *TaskRepo) ListByCategory(_ context.Context, ownerID, categoryName string) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tasks := []domain.Task{}
	for _, task := range r.s.tasks {
		if task.UserID == ownerID && task.CategoryID != nil && r.s.categoryName(task.CategoryID) == categoryName {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *TaskRepo) Update(_ context.Context, update domain.TaskUpdate, ownerID string) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.updateErr != nil {
		return nil, r.s.updateErr
	}
	if update.CategoryID != nil && !r.s.categoryExists(*update.CategoryID) {
		return nil, fmt.Errorf("failed to update task: %w", repository.ErrUnknownCategory)
	}

	for i, task := range r.s.tasks {
		if task.ID == update.TaskID && task.UserID == ownerID {
			r.s.tasks[i].Name = update.Name
			r.s.tasks[i].PomodoroCount = update.PomodoroCount
			r.s.tasks[i].CategoryID = update.CategoryID
			updated := r.s.tasks[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("task %s not found: %w", update.TaskID, repository.ErrNotFound)
}

func (r *TaskRepo) Delete(_ context.Context, taskID, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, task := range r.s.tasks {
		if task.ID == taskID && task.UserID == ownerID {
			r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return fmt.Errorf("category %q: %w", category.Name, repository.ErrDuplicateCategory)
		}
	}
	category.ID = uuid.NewString()
	r.s.categories = append(r.s.categories, *category)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, fmt.Errorf("category %s not found: %w", id, repository.ErrNotFound)
}

func (r *CategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return append([]domain.Category{}, r.s.categories...), nil
}

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.TaskRepository     = (*TaskRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// sameValue compares nullable unique columns; NULLs never collide.
func sameValue(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
