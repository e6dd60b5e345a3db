package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository mocks the TaskRepository interface
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageParams,
) ([]*domain.Task, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Task), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) WithTx(tx *sql.Tx) TaskRepository {
	args := m.Called(tx)
	return args.Get(0).(TaskRepository)
}

func (m *MockTaskRepository) DB() *sql.DB {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*sql.DB)
}

// MockTaskLogRepository mocks the TaskLogRepository interface
type MockTaskLogRepository struct {
	mock.Mock
}

func (m *MockTaskLogRepository) List(
	ctx context.Context,
	page store.PageParams,
) ([]*domain.TaskLog, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.TaskLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskLogRepository) Create(ctx context.Context, log *domain.TaskLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockTaskLogRepository) WithTx(tx *sql.Tx) TaskLogRepository {
	args := m.Called(tx)
	return args.Get(0).(TaskLogRepository)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.JobRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
