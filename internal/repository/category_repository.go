package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

// categoryRepository implements CategoryRepository interface
type categoryRepository struct {
	db *database.Postgres
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.Postgres) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a category and fills in its generated id
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`

	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, category.Name).Scan(&category.ID)
	})
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return fmt.Errorf("category %q: %w", category.Name, ErrDuplicateCategory)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`

	category := &domain.Category{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("category %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// List retrieves all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY name`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}
