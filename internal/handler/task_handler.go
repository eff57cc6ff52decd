package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/internal/dto"
	"github.com/prperemyshlev/pomodoro-service/internal/service"
)

// TaskHandler handles task requests of the authenticated user
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns the user's tasks
// @Summary List tasks
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param category query string false "Only tasks filed under this category name"
// @Success 200 {array} dto.TaskResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var (
		tasks []domain.Task
		err   error
	)
	if category := c.Query("category"); category != "" {
		tasks, err = h.taskService.ListTasksByCategory(c.Request.Context(), userID, category)
	} else {
		tasks, err = h.taskService.ListTasks(c.Request.Context(), userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponses(tasks))
}

// Get returns one task
// @Summary Get task
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

// Create adds a task
// @Summary Create task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TaskCreateRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, domain.TaskCreate{
		Name:          req.Name,
		PomodoroCount: *req.PomodoroCount,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTaskResponse(*task))
}

// Update overwrites a task
// @Summary Update task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.TaskUpdateRequest true "Task"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, domain.TaskUpdate{
		TaskID:        taskID,
		Name:          req.Name,
		PomodoroCount: *req.PomodoroCount,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

// Delete removes a task
// @Summary Delete task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// taskIDParam reads the task ID path parameter. A malformed ID cannot name
// any task, so it is reported as not found.
func taskIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, service.ErrTaskNotFound)
		return "", false
	}
	return id, true
}
