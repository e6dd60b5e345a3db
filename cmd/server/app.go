package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/job"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// JobFactoryEventHandler converts job request events into background jobs
// and submits them to the runner. Submission failures are returned to the
// emitter, which logs them; they never reach the request path.
type JobFactoryEventHandler struct {
	runner *job.Runner
	logger *slog.Logger
}

// HandleEvent processes job request events by creating and submitting jobs.
func (h *JobFactoryEventHandler) HandleEvent(ctx context.Context, event *events.JobRequestEvent) error {
	if event.Type != job.TypeProcessTask {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload job.ProcessTaskPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload",
			"error", err,
			"event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	processJob := job.NewProcessTaskJob(payload.TaskID, h.logger)

	if err := h.runner.Submit(processJob); err != nil {
		h.logger.Error("failed to submit job",
			"error", err,
			"job_id", processJob.ID(),
			"task_id", payload.TaskID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit job: %w", err)
	}

	h.logger.Debug("job submitted",
		"job_id", processJob.ID(),
		"task_id", payload.TaskID,
		"event_id", event.ID)
	return nil
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore    store.TaskStore
	taskLogStore store.TaskLogStore

	// Service interfaces
	taskService    service.TaskService
	taskLogService service.TaskLogService

	// Event system
	eventEmitter events.EventEmitter

	// Background job handling
	jobRunner *job.Runner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.taskLogStore = postgres.NewPostgresTaskLogStore(db, logger)

	// Initialize the background job runner
	app.jobRunner = job.NewRunner(job.RunnerConfig{
		WorkerCount: cfg.Job.WorkerCount,
		QueueSize:   cfg.Job.QueueSize,
	}, logger)
	app.jobRunner.Start()

	// Initialize event emitter
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	// Create required adapters
	taskRepoAdapter := service.NewTaskRepositoryAdapter(app.taskStore, app.db)
	taskLogRepoAdapter := service.NewTaskLogRepositoryAdapter(app.taskLogStore)

	// Initialize services
	app.taskService = service.NewTaskService(
		taskRepoAdapter,
		taskLogRepoAdapter,
		app.eventEmitter,
		logger,
	)
	app.taskLogService = service.NewTaskLogService(taskLogRepoAdapter, logger)

	// Create and register the job factory event handler
	jobFactoryHandler := &JobFactoryEventHandler{
		runner: app.jobRunner,
		logger: logger.With("component", "job_factory_event_handler"),
	}

	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(jobFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register job handler")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop the job runner; in-flight jobs are interrupted
	if app.jobRunner != nil {
		app.jobRunner.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
