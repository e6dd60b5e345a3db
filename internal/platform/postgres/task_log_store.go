package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// PostgresTaskLogStore implements the store.TaskLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskLogStore creates a new PostgreSQL implementation of the
// TaskLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskLogStore(db store.DBTX, logger *slog.Logger) *PostgresTaskLogStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_log_store")),
	}
}

// Ensure PostgresTaskLogStore implements store.TaskLogStore interface
var _ store.TaskLogStore = (*PostgresTaskLogStore)(nil)

// WithTx implements store.TaskLogStore.WithTx
func (s *PostgresTaskLogStore) WithTx(tx *sql.Tx) store.TaskLogStore {
	return &PostgresTaskLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// List implements store.TaskLogStore.List
// The listing is unfiltered and unordered (storage-native order).
func (s *PostgresTaskLogStore) List(
	ctx context.Context,
	page store.PageParams,
) ([]*domain.TaskLog, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM task_logs").Scan(&total); err != nil {
		log.Error("failed to count task logs",
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := `
		SELECT id, task_id, status, created_at
		FROM task_logs
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		log.Error("failed to query task logs",
			slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var logs []*domain.TaskLog
	for rows.Next() {
		var entry domain.TaskLog
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.Status, &entry.CreatedAt); err != nil {
			log.Error("failed to scan task log row",
				slog.String("error", err.Error()))
			return nil, 0, err
		}
		logs = append(logs, &entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning task log rows",
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	if logs == nil {
		logs = []*domain.TaskLog{}
	}

	log.Debug("listed task logs",
		slog.Int("count", len(logs)),
		slog.Int64("total", total))
	return logs, total, nil
}

// Create implements store.TaskLogStore.Create
// The database assigns the id, which is written back into the entry.
func (s *PostgresTaskLogStore) Create(ctx context.Context, entry *domain.TaskLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("task log validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("task_id", entry.TaskID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO task_logs (task_id, status, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		entry.TaskID,
		entry.Status,
		entry.CreatedAt,
	).Scan(&entry.ID)

	if err != nil {
		log.Error("failed to create task log",
			slog.String("error", err.Error()),
			slog.Int64("task_id", entry.TaskID))
		return err
	}

	log.Info("task log created successfully",
		slog.Int64("task_log_id", entry.ID),
		slog.Int64("task_id", entry.TaskID),
		slog.String("status", entry.Status))
	return nil
}
