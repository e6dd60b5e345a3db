package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration for the job runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers run jobs
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages detached background job execution. Submitted jobs are
// queued in memory only: nothing is persisted, nothing is retried, and a
// process crash loses queued jobs. That is the intended contract.
type Runner struct {
	jobChan    chan Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
}

// NewRunner creates a new Runner.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		jobChan:    make(chan Job, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "job_runner")),
	}
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.logger.Debug("job runner started",
		"worker_count", r.config.WorkerCount,
		"queue_size", r.config.QueueSize)
}

// Stop shuts down the runner. In-flight jobs are interrupted via context
// cancellation; queued jobs that never started are dropped. The job channel
// is left open so a Submit racing past shutdown fails instead of panicking.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// Submit enqueues a job for background execution. When the runner is
// stopped or the queue is full the job is dropped and an error is returned;
// callers that honor the fire-and-forget contract log it and move on.
func (r *Runner) Submit(job Job) error {
	if r.ctx.Err() != nil {
		return fmt.Errorf("job runner is stopped, dropping job %s", job.Name())
	}

	select {
	case r.jobChan <- job:
		return nil
	default:
		return fmt.Errorf("job queue is full, dropping job %s", job.Name())
	}
}

// worker drains the queue until the runner is stopped.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case job := <-r.jobChan:
			r.runJob(job, id)
		}
	}
}

// runJob executes a single job, absorbing every failure. An error or panic
// produces exactly one error-level log entry carrying the job name and the
// subject task id; nothing propagates.
func (r *Runner) runJob(job Job, workerID int) {
	log := r.logger.With(
		slog.String("job_id", job.ID().String()),
		slog.String("job", job.Name()),
		slog.Int64("task_id", job.TaskID()),
		slog.Int("worker_id", workerID),
	)

	defer func() {
		if p := recover(); p != nil {
			log.Error("background job panicked", slog.Any("panic", p))
		}
	}()

	log.Debug("running background job")

	if err := job.Execute(r.ctx); err != nil {
		log.Error("background job failed", slog.String("error", err.Error()))
		return
	}

	log.Debug("background job completed")
}
