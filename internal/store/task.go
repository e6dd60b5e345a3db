package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List retrieves one page of tasks matching the filter, along with the
	// total count of the filtered set. An empty filter matches all tasks.
	// Result ordering is storage-native and not guaranteed stable across
	// calls.
	List(ctx context.Context, filter TaskFilter, page PageParams) ([]*domain.Task, int64, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create persists a new task and fills in its database-assigned ID.
	// Timestamps are taken from the entity, not regenerated.
	Create(ctx context.Context, task *domain.Task) error

	// Update saves all mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. This is a hard
	// delete. Associated task logs are intentionally left in place (the
	// schema defines no cascade), so log rows may become orphaned.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) TaskStore
}
