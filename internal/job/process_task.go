package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// processTaskDelay is the fixed pause simulating work in the sample job.
const processTaskDelay = 5 * time.Second

// ProcessTaskJob is the sample post-creation job. It has no real effect:
// it logs the task id and sleeps for a fixed delay, simulating work.
// Replacements must preserve the runner's contract: failures never reach
// the caller and are logged with the job name and task id.
type ProcessTaskJob struct {
	id     uuid.UUID
	taskID int64
	delay  time.Duration
	logger *slog.Logger
}

// NewProcessTaskJob creates a processing job for the given task.
func NewProcessTaskJob(taskID int64, logger *slog.Logger) *ProcessTaskJob {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProcessTaskJob{
		id:     uuid.New(),
		taskID: taskID,
		delay:  processTaskDelay,
		logger: logger.With(slog.String("component", "process_task_job")),
	}
}

// Ensure ProcessTaskJob implements the Job interface
var _ Job = (*ProcessTaskJob)(nil)

// ID returns the unique identifier of this job run.
func (j *ProcessTaskJob) ID() uuid.UUID {
	return j.id
}

// Name returns the job type identifier.
func (j *ProcessTaskJob) Name() string {
	return TypeProcessTask
}

// TaskID returns the id of the task being processed.
func (j *ProcessTaskJob) TaskID() int64 {
	return j.taskID
}

// Execute runs the simulated processing. The sleep is context-aware so a
// stopping runner does not hang on in-flight jobs.
func (j *ProcessTaskJob) Execute(ctx context.Context) error {
	j.logger.Info("processing task", slog.Int64("task_id", j.taskID))

	select {
	case <-time.After(j.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
