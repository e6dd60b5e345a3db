package service

import (
	"database/sql"

	"github.com/phrazzld/task-api/internal/store"
)

// TaskRepositoryAdapter adapts a store.TaskStore to the service-layer
// TaskRepository interface, carrying the *sql.DB handle needed to open
// transactions.
type TaskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter creates a new adapter that implements
// TaskRepository by delegating to a store.TaskStore implementation.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) *TaskRepositoryAdapter {
	return &TaskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// Ensure TaskRepositoryAdapter implements TaskRepository
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)

// WithTx returns a repository bound to the given transaction.
func (a *TaskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &TaskRepositoryAdapter{
		TaskStore: a.TaskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB returns the underlying database connection.
func (a *TaskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// TaskLogRepositoryAdapter adapts a store.TaskLogStore to the service-layer
// TaskLogRepository interface.
type TaskLogRepositoryAdapter struct {
	store.TaskLogStore
}

// NewTaskLogRepositoryAdapter creates a new adapter that implements
// TaskLogRepository by delegating to a store.TaskLogStore implementation.
func NewTaskLogRepositoryAdapter(logStore store.TaskLogStore) *TaskLogRepositoryAdapter {
	return &TaskLogRepositoryAdapter{
		TaskLogStore: logStore,
	}
}

// Ensure TaskLogRepositoryAdapter implements TaskLogRepository
var _ TaskLogRepository = (*TaskLogRepositoryAdapter)(nil)

// WithTx returns a repository bound to the given transaction.
func (a *TaskLogRepositoryAdapter) WithTx(tx *sql.Tx) TaskLogRepository {
	return &TaskLogRepositoryAdapter{
		TaskLogStore: a.TaskLogStore.WithTx(tx),
	}
}
