//go:build acceptance

package acceptance

import (
	"context"
	"net/http"

	"github.com/prperemyshlev/pomodoro-service/internal/cache"
	"github.com/prperemyshlev/pomodoro-service/internal/dto"
)

func count(n int) *int {
	return &n
}

func (s *Suite) TestTaskLifecycle() {
	alice := s.register("alice", "pw1")
	token := alice.AccessToken

	var created dto.TaskResponse
	code := s.do(http.MethodPost, "/api/v1/tasks", token, dto.TaskCreateRequest{Name: "write report", PomodoroCount: count(2)}, &created)
	s.Require().Equal(http.StatusCreated, code)
	s.Equal(alice.UserID, created.UserID)

	var listed []dto.TaskResponse
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks", token, nil, &listed))
	s.Require().Len(listed, 1)
	s.Equal(created, listed[0])

	key := cache.UserTasksKey(alice.UserID)
	cached, err := s.Redis.Client.Exists(context.Background(), key).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), cached, "list must populate the cache")

	var updated dto.TaskResponse
	code = s.do(http.MethodPatch, "/api/v1/tasks/"+created.ID, token, dto.TaskUpdateRequest{Name: "final report", PomodoroCount: count(4)}, &updated)
	s.Require().Equal(http.StatusOK, code)
	s.Equal("final report", updated.Name)

	cached, err = s.Redis.Client.Exists(context.Background(), key).Result()
	s.Require().NoError(err)
	s.Zero(cached, "update must invalidate the cache")

	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks", token, nil, &listed))
	s.Require().Len(listed, 1)
	s.Equal(updated, listed[0])

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/tasks/"+created.ID, token, nil, nil))

	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks", token, nil, &listed))
	s.Empty(listed)
}

func (s *Suite) TestTaskOwnership() {
	alice := s.register("alice", "pw1")
	bob := s.register("bob", "pw2")

	var task dto.TaskResponse
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/tasks", alice.AccessToken,
		dto.TaskCreateRequest{Name: "private", PomodoroCount: count(1)}, &task))

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/tasks/"+task.ID, bob.AccessToken, nil, nil))
	s.Equal(http.StatusNotFound, s.do(http.MethodPatch, "/api/v1/tasks/"+task.ID, bob.AccessToken,
		dto.TaskUpdateRequest{Name: "stolen", PomodoroCount: count(0)}, nil))
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/tasks/"+task.ID, bob.AccessToken, nil, nil))

	var got dto.TaskResponse
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks/"+task.ID, alice.AccessToken, nil, &got))
	s.Equal("private", got.Name)
}

func (s *Suite) TestTasksByCategory() {
	alice := s.register("alice", "pw1")
	token := alice.AccessToken

	var work dto.CategoryResponse
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/categories", token, dto.CategoryCreateRequest{Name: "work"}, &work))

	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/tasks", token,
		dto.TaskCreateRequest{Name: "report", PomodoroCount: count(3), CategoryID: &work.ID}, nil))
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/tasks", token,
		dto.TaskCreateRequest{Name: "groceries", PomodoroCount: count(1)}, nil))

	var filtered []dto.TaskResponse
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks?category=work", token, nil, &filtered))
	s.Require().Len(filtered, 1)
	s.Equal("report", filtered[0].Name)

	missing := "44444444-4444-4444-4444-444444444444"
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/api/v1/tasks", token,
		dto.TaskCreateRequest{Name: "lost", PomodoroCount: count(1), CategoryID: &missing}, nil))

	var categories []dto.CategoryResponse
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/categories", token, nil, &categories))
	s.Equal([]dto.CategoryResponse{work}, categories)
}
