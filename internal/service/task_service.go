package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/job"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskRepository defines the task persistence interface required by the
// service layer. It extends store.TaskStore with access to the underlying
// database handle so the service can run multi-statement transactions.
type TaskRepository interface {
	List(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error

	// WithTx returns a repository bound to the given transaction
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection for transaction management
	DB() *sql.DB
}

// TaskLogRepository defines the task log persistence interface required by
// the service layer.
type TaskLogRepository interface {
	List(ctx context.Context, page store.PageParams) ([]*domain.TaskLog, int64, error)
	Create(ctx context.Context, log *domain.TaskLog) error

	// WithTx returns a repository bound to the given transaction
	WithTx(tx *sql.Tx) TaskLogRepository
}

// TaskService defines the application operations on tasks.
type TaskService interface {
	// ListTasks retrieves one page of tasks matching the filter, along with
	// the total count of the filtered set.
	ListTasks(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error)

	// GetTask retrieves a single task by ID.
	// Returns ErrTaskNotFound if no task with that ID exists.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask creates a new task and its initial status log entry in a
	// single transaction, then schedules a detached processing job. Job
	// scheduling failures are logged and never surfaced: the task is created
	// regardless.
	CreateTask(ctx context.Context, title, description, status string, priority int) (*domain.Task, error)

	// UpdateTask applies a partial update to an existing task. Only the
	// non-nil fields of the update are changed; absent fields keep their
	// stored values.
	// Returns ErrTaskNotFound if no task with that ID exists.
	UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask permanently removes a task. Its log entries are left in
	// place.
	// Returns ErrTaskNotFound if no task with that ID exists.
	DeleteTask(ctx context.Context, id int64) error
}

// taskService implements the TaskService interface.
type taskService struct {
	taskRepo     TaskRepository
	taskLogRepo  TaskLogRepository
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService. Panics if any dependency other
// than the logger is nil, as these are programming errors.
func NewTaskService(
	taskRepo TaskRepository,
	taskLogRepo TaskLogRepository,
	eventEmitter events.EventEmitter,
	log *slog.Logger,
) TaskService {
	if taskRepo == nil {
		panic("taskRepo cannot be nil")
	}
	if taskLogRepo == nil {
		panic("taskLogRepo cannot be nil")
	}
	if eventEmitter == nil {
		panic("eventEmitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskService{
		taskRepo:     taskRepo,
		taskLogRepo:  taskLogRepo,
		eventEmitter: eventEmitter,
		logger:       log.With(slog.String("component", "task_service")),
	}
}

// ListTasks implements TaskService.ListTasks.
func (s *taskService) ListTasks(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, total, err := s.taskRepo.List(ctx, filter, page)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, 0, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, total, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}

	return task, nil
}

// CreateTask implements TaskService.CreateTask. The task row and its initial
// log entry are written atomically; a failure on either rolls both back.
func (s *taskService) CreateTask(ctx context.Context, title, description, status string, priority int) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description, status, priority)
	if err != nil {
		log.Debug("task validation failed", slog.String("error", err.Error()))
		return nil, ErrInvalidTask
	}

	err = store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txTaskRepo := s.taskRepo.WithTx(tx)
		txLogRepo := s.taskLogRepo.WithTx(tx)

		if err := txTaskRepo.Create(ctx, task); err != nil {
			return err
		}

		taskLog, err := domain.NewTaskLog(task.ID, task.Status)
		if err != nil {
			return err
		}

		return txLogRepo.Create(ctx, taskLog)
	})
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to create task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("status", task.Status))

	s.scheduleProcessing(ctx, task.ID)

	return task, nil
}

// scheduleProcessing emits a job request event for the new task. Emission is
// best-effort: a failure here must never fail the create that triggered it.
func (s *taskService) scheduleProcessing(ctx context.Context, taskID int64) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewJobRequestEvent(job.TypeProcessTask, job.ProcessTaskPayload{TaskID: taskID})
	if err != nil {
		log.Error("failed to create job request event",
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit job request event",
			slog.Int64("task_id", taskID),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	log.Debug("scheduled task processing",
		slog.Int64("task_id", taskID),
		slog.String("event_id", event.ID.String()))
}

// UpdateTask implements TaskService.UpdateTask. The read and the write run
// in one transaction so a concurrent delete cannot slip between them.
func (s *taskService) UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task

	err := store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txTaskRepo := s.taskRepo.WithTx(tx)

		task, err := txTaskRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := task.Apply(update); err != nil {
			return err
		}

		if err := txTaskRepo.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, ErrTaskNotFound
		}
		if domain.IsValidationError(err) {
			log.Debug("task update validation failed",
				slog.Int64("task_id", id),
				slog.String("error", err.Error()))
			return nil, ErrInvalidTask
		}
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))

	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))

	return nil
}
