package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/prperemyshlev/pomodoro-service/pkg/database"
)

const (
	aliceID = "11111111-1111-1111-1111-111111111111"
	bobID   = "22222222-2222-2222-2222-222222222222"
	taskID  = "33333333-3333-3333-3333-333333333333"
	catID   = "44444444-4444-4444-4444-444444444444"
)

func newMockPostgres(t *testing.T) (*database.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return &database.Postgres{DB: db}, mock
}

func strPtr(s string) *string {
	return &s
}
