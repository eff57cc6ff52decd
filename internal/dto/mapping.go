package dto

import "github.com/prperemyshlev/pomodoro-service/internal/domain"

// NewTaskResponse maps a domain task to its response shape.
func NewTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Name:          task.Name,
		PomodoroCount: task.PomodoroCount,
		CategoryID:    task.CategoryID,
		UserID:        task.UserID,
	}
}

// NewTaskResponses maps a task list, never returning nil so empty lists encode as [].
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}

// NewCategoryResponses maps a category list.
func NewCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
