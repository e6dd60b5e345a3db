package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskLogService defines the application operations on task logs.
// Logs are written only as a side effect of task creation, so the service
// surface is read-only.
type TaskLogService interface {
	// ListTaskLogs retrieves one page of task logs along with the total
	// count. The listing is unfiltered and includes entries whose task has
	// since been deleted.
	ListTaskLogs(ctx context.Context, page store.PageParams) ([]*domain.TaskLog, int64, error)
}

// taskLogService implements the TaskLogService interface.
type taskLogService struct {
	taskLogRepo TaskLogRepository
	logger      *slog.Logger
}

// NewTaskLogService creates a new TaskLogService.
func NewTaskLogService(taskLogRepo TaskLogRepository, log *slog.Logger) TaskLogService {
	if taskLogRepo == nil {
		panic("taskLogRepo cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskLogService{
		taskLogRepo: taskLogRepo,
		logger:      log.With(slog.String("component", "task_log_service")),
	}
}

// ListTaskLogs implements TaskLogService.ListTaskLogs.
func (s *taskLogService) ListTaskLogs(ctx context.Context, page store.PageParams) ([]*domain.TaskLog, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	logs, total, err := s.taskLogRepo.List(ctx, page)
	if err != nil {
		log.Error("failed to list task logs", slog.String("error", err.Error()))
		return nil, 0, NewTaskServiceError("list_task_logs", "failed to list task logs", err)
	}

	return logs, total, nil
}
