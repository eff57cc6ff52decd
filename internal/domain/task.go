package domain

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PomodoroCount int     `json:"pomodoro_count"`
	CategoryID    *string `json:"category_id,omitempty"`
	UserID        string  `json:"user_id"`
}

// TaskCreate carries the caller-supplied fields of a new task.
type TaskCreate struct {
	Name          string
	PomodoroCount int
	CategoryID    *string
}

// TaskUpdate overwrites every mutable field of an existing task.
type TaskUpdate struct {
	TaskID        string
	Name          string
	PomodoroCount int
	CategoryID    *string
}

// Category groups tasks under a unique name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
