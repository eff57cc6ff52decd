package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
)

var taskRowColumns = []string{"id", "name", "pomodoro_count", "category_id", "user_id"}

func TestTaskRepository_Create(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("write report", 3, nil, aliceID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(taskID))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), domain.TaskCreate{Name: "write report", PomodoroCount: 3}, aliceID)
	require.NoError(t, err)
	assert.Equal(t, taskID, id)
}

func TestTaskRepository_CreateUnknownCategory(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnError(&pq.Error{Code: pqForeignKeyViolation})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.TaskCreate{
		Name:       "write report",
		CategoryID: strPtr(catID),
	}, aliceID)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTaskRepository_GetByOwner(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectQuery("FROM tasks").
		WithArgs(taskID, aliceID).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow(taskID, "write report", 2, catID, aliceID))

	task, err := repo.GetByOwner(context.Background(), taskID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "write report", task.Name)
	assert.Equal(t, 2, task.PomodoroCount)
	require.NotNil(t, task.CategoryID)
	assert.Equal(t, catID, *task.CategoryID)
	assert.Equal(t, aliceID, task.UserID)
}

func TestTaskRepository_GetByOwnerForeignTask(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectQuery("FROM tasks").
		WithArgs(taskID, bobID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByOwner(context.Background(), taskID, bobID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_GetByOwnerMalformedID(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectQuery("FROM tasks").
		WillReturnError(&pq.Error{Code: pqInvalidTextRepr})

	_, err := repo.GetByOwner(context.Background(), "not-a-uuid", aliceID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectQuery("WHERE user_id = \\$1").
		WithArgs(aliceID).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow("t1", "first", 1, nil, aliceID).
			AddRow("t2", "second", 0, catID, aliceID))

	tasks, err := repo.ListByOwner(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Name)
	assert.Nil(t, tasks[0].CategoryID)
	assert.Equal(t, "second", tasks[1].Name)
	require.NotNil(t, tasks[1].CategoryID)
}

func TestTaskRepository_ListByOwnerEmpty(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectQuery("WHERE user_id = \\$1").
		WithArgs(bobID).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := repo.ListByOwner(context.Background(), bobID)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskRepository_ListByCategory(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectQuery("JOIN categories").
		WithArgs(aliceID, "work").
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow("t1", "first", 1, catID, aliceID))

	tasks, err := repo.ListByCategory(context.Background(), aliceID, "work")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, catID, *tasks[0].CategoryID)
}

func TestTaskRepository_Update(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE tasks").
		WithArgs(taskID, aliceID, "renamed", 4, nil).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow(taskID, "renamed", 4, nil, aliceID))
	mock.ExpectCommit()

	task, err := repo.Update(context.Background(), domain.TaskUpdate{
		TaskID:        taskID,
		Name:          "renamed",
		PomodoroCount: 4,
	}, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Name)
	assert.Equal(t, 4, task.PomodoroCount)
	assert.Nil(t, task.CategoryID)
}

func TestTaskRepository_UpdateNotOwned(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE tasks").
		WithArgs(taskID, bobID, "renamed", 4, nil).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), domain.TaskUpdate{
		TaskID:        taskID,
		Name:          "renamed",
		PomodoroCount: 4,
	}, bobID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_UpdateUnknownCategory(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE tasks").
		WillReturnError(&pq.Error{Code: pqForeignKeyViolation})
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), domain.TaskUpdate{
		TaskID:     taskID,
		Name:       "renamed",
		CategoryID: strPtr(catID),
	}, aliceID)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTaskRepository_Delete(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(taskID, aliceID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), taskID, aliceID))
}

func TestTaskRepository_DeleteIsIdempotent(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(taskID, aliceID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM tasks").
		WithArgs("garbage", aliceID).
		WillReturnError(&pq.Error{Code: pqInvalidTextRepr})

	require.NoError(t, repo.Delete(context.Background(), taskID, aliceID))
	require.NoError(t, repo.Delete(context.Background(), "garbage", aliceID))
}

func TestTaskRepository_DeleteError(t *testing.T) {
	pg, mock := newMockPostgres(t)
	repo := NewTaskRepository(pg)

	boom := errors.New("connection reset")
	mock.ExpectExec("DELETE FROM tasks").WillReturnError(boom)

	err := repo.Delete(context.Background(), taskID, aliceID)
	assert.ErrorIs(t, err, boom)
}
