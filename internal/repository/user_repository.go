package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

const userColumns = `id, username, password_hash, google_token, yandex_token, email, name, created_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user and fills in the generated id and creation time
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, google_token, yandex_token, email, name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			user.Username,
			user.PasswordHash,
			user.GoogleToken,
			user.YandexToken,
			user.Email,
			user.Name,
		).Scan(&user.ID, &user.CreatedAt)
	})
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			if pqConstraint(err) == usersEmailConstraint {
				return fmt.Errorf("failed to create user: %w", ErrDuplicateEmail)
			}
			return fmt.Errorf("failed to create user: %w", ErrDuplicateUsername)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves the user registered with the email. Emails are unique.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

// GetByExternalToken retrieves a user by an access token issued by an identity provider
func (r *userRepository) GetByExternalToken(ctx context.Context, provider domain.Provider, token string) (*domain.User, error) {
	column, err := tokenColumn(provider)
	if err != nil {
		return nil, err
	}
	return r.getBy(ctx, column, token)
}

// UpdateExternalToken stores a fresh provider access token on the user record
func (r *userRepository) UpdateExternalToken(ctx context.Context, userID string, provider domain.Provider, token string) error {
	column, err := tokenColumn(provider)
	if err != nil {
		return err
	}

	query := `UPDATE users SET ` + column + ` = $2 WHERE id = $1`

	return withTx(ctx, r.db.DB, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, userID, token)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", column, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}

		return nil
	})
}

// getBy selects a single user by one column. column is never caller input.
func (r *userRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + column + ` = $1
		ORDER BY created_at
		LIMIT 1
	`

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, value))
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("user with %s not found: %w", column, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return user, nil
}

func tokenColumn(provider domain.Provider) (string, error) {
	switch provider {
	case domain.ProviderGoogle:
		return "google_token", nil
	case domain.ProviderYandex:
		return "yandex_token", nil
	default:
		return "", fmt.Errorf("provider %q: %w", provider, ErrUnknownProvider)
	}
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var username, passwordHash, googleToken, yandexToken, email, name sql.NullString

	err := row.Scan(
		&user.ID,
		&username,
		&passwordHash,
		&googleToken,
		&yandexToken,
		&email,
		&name,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Username = nullableString(username)
	user.PasswordHash = nullableString(passwordHash)
	user.GoogleToken = nullableString(googleToken)
	user.YandexToken = nullableString(yandexToken)
	user.Email = nullableString(email)
	user.Name = nullableString(name)

	return user, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
