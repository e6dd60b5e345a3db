package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskLogStore defines the interface for task log persistence.
// Logs are append-only: there is no update or delete operation.
type TaskLogStore interface {
	// List retrieves one page of task logs along with the total count.
	// The listing is unfiltered; ordering is storage-native.
	List(ctx context.Context, page PageParams) ([]*domain.TaskLog, int64, error)

	// Create persists a new log entry and fills in its database-assigned ID.
	Create(ctx context.Context, log *domain.TaskLog) error

	// WithTx returns a new TaskLogStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskLogStore
}
