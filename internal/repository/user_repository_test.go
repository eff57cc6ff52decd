package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
)

var userRowColumns = []string{"id", "username", "password_hash", "google_token", "yandex_token", "email", "name", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hash", nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(aliceID, createdAt))
	mock.ExpectCommit()

	user := &domain.User{Username: strPtr("alice"), PasswordHash: strPtr("hash")}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, aliceID, user.ID)
	assert.Equal(t, createdAt, user.CreatedAt)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: pqUniqueViolation})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.User{Username: strPtr("alice")})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: usersEmailConstraint})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.User{Email: strPtr("alice@example.com")})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectQuery("WHERE username = \\$1").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(aliceID, "alice", "hash", nil, nil, nil, nil, time.Now()))

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, aliceID, user.ID)
	require.NotNil(t, user.Username)
	assert.Equal(t, "alice", *user.Username)
	require.NotNil(t, user.PasswordHash)
	assert.Nil(t, user.GoogleToken)
	assert.Nil(t, user.Email)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectQuery("WHERE id = \\$1").
		WithArgs(bobID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), bobID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_GetByExternalToken(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectQuery("WHERE google_token = \\$1").
		WithArgs("ya29.token").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(aliceID, nil, nil, "ya29.token", nil, "alice@example.com", "Alice", time.Now()))

	user, err := repo.GetByExternalToken(context.Background(), domain.ProviderGoogle, "ya29.token")
	require.NoError(t, err)
	assert.Nil(t, user.Username)
	require.NotNil(t, user.Email)
	assert.Equal(t, "alice@example.com", *user.Email)
}

func TestUserRepository_GetByExternalTokenUnknownProvider(t *testing.T) {
	pg, _ := newMockPostgres(t)
	repo := NewUserRepository(pg)

	_, err := repo.GetByExternalToken(context.Background(), domain.Provider("github"), "x")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestUserRepository_UpdateExternalToken(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET yandex_token = \\$2").
		WithArgs(aliceID, "y-token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateExternalToken(context.Background(), aliceID, domain.ProviderYandex, "y-token"))
}

func TestUserRepository_UpdateExternalTokenMissingUser(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewUserRepository(pg)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET google_token = \\$2").
		WithArgs(bobID, "g-token").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateExternalToken(context.Background(), bobID, domain.ProviderGoogle, "g-token")
	assert.ErrorIs(t, err, ErrNotFound)
}
