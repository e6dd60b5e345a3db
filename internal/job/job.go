// Package job provides the detached background job runner: a buffered queue
// drained by worker goroutines. Jobs are fire-and-forget. They run at most
// once, after the HTTP response has been sent, and any failure is logged and
// swallowed, never surfaced to a caller.
package job

import (
	"context"

	"github.com/google/uuid"
)

// Job type constants
const (
	// TypeProcessTask identifies the sample post-creation processing job.
	TypeProcessTask = "process_task"
)

// ProcessTaskPayload is the event payload for a process_task job request.
type ProcessTaskPayload struct {
	TaskID int64 `json:"task_id"`
}

// Job represents a unit of background work to be run once, detached from
// the request that scheduled it.
type Job interface {
	// ID returns the unique identifier of this job run
	ID() uuid.UUID

	// Name returns the job type identifier, used in failure logs
	Name() string

	// TaskID returns the id of the task this job operates on
	TaskID() int64

	// Execute runs the job logic
	Execute(ctx context.Context) error
}
