package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

const taskColumns = `id, name, pomodoro_count, category_id, user_id`

// taskRepository implements TaskRepository interface
type taskRepository struct {
	db *database.Postgres
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.Postgres) TaskRepository {
	return &taskRepository{db: db}
}

// Create inserts a task and returns the id generated by the database.
// The caller re-reads the row to get its stored shape.
func (r *taskRepository) Create(ctx context.Context, task domain.TaskCreate, ownerID string) (string, error) {
	query := `
		INSERT INTO tasks (name, pomodoro_count, category_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id string
	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			task.Name,
			task.PomodoroCount,
			task.CategoryID,
			ownerID,
		).Scan(&id)
	})
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return "", fmt.Errorf("failed to create task: %w", ErrUnknownCategory)
		}
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	return id, nil
}

// GetByOwner retrieves a task only if it belongs to ownerID
func (r *taskRepository) GetByOwner(ctx context.Context, taskID, ownerID string) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	task, err := scanTask(r.db.DB.QueryRowContext(ctx, query, taskID, ownerID))
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("task %s not found: %w", taskID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListByOwner retrieves all tasks of a user in creation order
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return collectTasks(rows)
}

// ListByCategory retrieves a user's tasks filed under the named category
func (r *taskRepository) ListByCategory(ctx context.Context, ownerID, categoryName string) ([]domain.Task, error) {
	query := `
		SELECT t.id, t.name, t.pomodoro_count, t.category_id, t.user_id
		FROM tasks t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND c.name = $2
		ORDER BY t.created_at, t.id
	`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerID, categoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by category: %w", err)
	}

	return collectTasks(rows)
}

// Update overwrites name, pomodoro_count and category_id and returns the stored row
func (r *taskRepository) Update(ctx context.Context, update domain.TaskUpdate, ownerID string) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET name = $3, pomodoro_count = $4, category_id = $5
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	var task *domain.Task
	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		var err error
		task, err = scanTask(tx.QueryRowContext(ctx, query,
			update.TaskID,
			ownerID,
			update.Name,
			update.PomodoroCount,
			update.CategoryID,
		))
		return err
	})
	if err != nil {
		switch {
		case isMissing(err):
			return nil, fmt.Errorf("task %s not found: %w", update.TaskID, ErrNotFound)
		case pqCode(err) == pqForeignKeyViolation:
			return nil, fmt.Errorf("failed to update task: %w", ErrUnknownCategory)
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task. Deleting a task that does not exist, or belongs to
// someone else, is a no-op.
func (r *taskRepository) Delete(ctx context.Context, taskID, ownerID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	if _, err := r.db.DB.ExecContext(ctx, query, taskID, ownerID); err != nil {
		if pqCode(err) == pqInvalidTextRepr {
			return nil
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var categoryID sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.PomodoroCount,
		&categoryID,
		&task.UserID,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		task.CategoryID = &categoryID.String
	}

	return task, nil
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
