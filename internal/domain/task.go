package domain

import (
	"time"
)

// Task represents a trackable unit of work.
// Status is an open string token (e.g. "todo", "in_progress"); no valid-status
// set or transition rules are enforced at this layer. Priority is an integer
// with no enforced range. The ID is assigned by the database on insert.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskUpdate describes a partial update to a task. Nil fields are left
// untouched, so a zero value (empty title, priority 0) can still be set
// explicitly.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
}

// NewTask creates a new Task with system-assigned timestamps.
// CreatedAt and UpdatedAt are set to the same instant, preserving the
// invariant UpdatedAt >= CreatedAt from the start of the lifecycle.
// The ID is left zero until the store persists the task.
// Returns an error if validation fails.
func NewTask(title, description, status string, priority int) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.Status == "" {
		return ErrTaskStatusEmpty
	}

	return nil
}

// Apply merges a partial update into the task and refreshes UpdatedAt.
// Only non-nil fields of the update are applied. Returns an error if the
// resulting task would be invalid; the task is left unmodified in that case.
func (t *Task) Apply(update TaskUpdate) error {
	updated := *t

	if update.Title != nil {
		updated.Title = *update.Title
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.Status != nil {
		updated.Status = *update.Status
	}
	if update.Priority != nil {
		updated.Priority = *update.Priority
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*t = updated
	return nil
}
