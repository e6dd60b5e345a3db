package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest represents the request body for creating a new task.
// Status is a free-form token; no enumeration is enforced. Priority is a
// pointer so an explicit 0 is distinguishable from an absent field.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=10000"`
	Status      string `json:"status" validate:"required,min=1,max=50"`
	Priority    *int   `json:"priority" validate:"required"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Nil fields are left untouched on the stored task; present fields replace
// the stored values, including explicit zero values.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Status      *string `json:"status" validate:"omitempty,min=1,max=50"`
	Priority    *int    `json:"priority"`
}

// ToTaskUpdate converts the request into a domain-level partial update.
func (r UpdateTaskRequest) ToTaskUpdate() domain.TaskUpdate {
	return domain.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponses converts a slice of tasks, returning an empty slice
// rather than nil so list responses always serialize items as an array.
func tasksToResponses(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}

// TaskLogResponse represents the response data for a task log entry.
type TaskLogResponse struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// taskLogToResponse converts a domain.TaskLog to a TaskLogResponse.
func taskLogToResponse(log *domain.TaskLog) TaskLogResponse {
	return TaskLogResponse{
		ID:        log.ID,
		TaskID:    log.TaskID,
		Status:    log.Status,
		CreatedAt: log.CreatedAt,
	}
}

// taskLogsToResponses converts a slice of task logs.
func taskLogsToResponses(logs []*domain.TaskLog) []TaskLogResponse {
	responses := make([]TaskLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, taskLogToResponse(log))
	}
	return responses
}
