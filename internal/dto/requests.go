package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// GoogleLoginResponse carries the consent URL for clients that do not follow redirects.
type GoogleLoginResponse struct {
	URL string `json:"url"`
}

// UserResponse represents a user response
type UserResponse struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
}

// TaskCreateRequest represents a task creation request
type TaskCreateRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	PomodoroCount *int    `json:"pomodoro_count" binding:"required,min=0"`
	CategoryID    *string `json:"category_id" binding:"omitempty,uuid"`
}

// TaskUpdateRequest overwrites name, pomodoro_count and category_id.
type TaskUpdateRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	PomodoroCount *int    `json:"pomodoro_count" binding:"required,min=0"`
	CategoryID    *string `json:"category_id" binding:"omitempty,uuid"`
}

// TaskResponse represents a task in responses
type TaskResponse struct {
	ID            string  `json:"task_id"`
	Name          string  `json:"name"`
	PomodoroCount int     `json:"pomodoro_count"`
	CategoryID    *string `json:"category_id"`
	UserID        string  `json:"user_id"`
}

// CategoryCreateRequest represents a category creation request
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	ID   string `json:"category_id"`
	Name string `json:"name"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
