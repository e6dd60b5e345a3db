package domain

import (
	"time"
)

// TaskLog is an immutable, append-only record of a task's status at a point
// in time. Exactly one log entry is written as a side effect of task
// creation, capturing the initial status; no other writer exists.
//
// The task reference is a soft foreign key: deleting a task does not delete
// its log rows, so logs may outlive the task they describe. That is an
// accepted outcome, not a bug.
type TaskLog struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskLog creates a log entry for the given task id carrying the status
// the task had at logging time. The ID is left zero until the store
// persists the entry. Returns an error if validation fails.
func NewTaskLog(taskID int64, status string) (*TaskLog, error) {
	log := &TaskLog{
		TaskID:    taskID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the TaskLog has valid data.
func (l *TaskLog) Validate() error {
	if l.TaskID <= 0 {
		return ErrTaskLogTaskIDInvalid
	}

	if l.Status == "" {
		return ErrTaskStatusEmpty
	}

	return nil
}
