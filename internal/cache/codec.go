package cache

import (
	"encoding/json"
	"fmt"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
)

// EncodeTask serializes a task snapshot for storage in a cache entry.
func EncodeTask(task domain.Task) (string, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to encode task: %w", err)
	}
	return string(data), nil
}

// DecodeTask is the inverse of EncodeTask.
func DecodeTask(value string) (domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal([]byte(value), &task); err != nil {
		return domain.Task{}, fmt.Errorf("failed to decode task: %w", err)
	}
	return task, nil
}
