package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHandler is a function-backed EventHandler for testing.
type mockHandler struct {
	handleFn func(ctx context.Context, event *JobRequestEvent) error
	received []*JobRequestEvent
}

func (m *mockHandler) HandleEvent(ctx context.Context, event *JobRequestEvent) error {
	m.received = append(m.received, event)
	if m.handleFn != nil {
		return m.handleFn(ctx, event)
	}
	return nil
}

// TestNewJobRequestEvent verifies event construction and payload round-trip.
func TestNewJobRequestEvent(t *testing.T) {
	type payload struct {
		TaskID int64 `json:"task_id"`
	}

	event, err := NewJobRequestEvent("process_task", payload{TaskID: 42})
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", event.ID.String())
	assert.Equal(t, "process_task", event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var decoded payload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, int64(42), decoded.TaskID)
}

// TestInMemoryEventEmitter verifies handler registration and dispatch.
func TestInMemoryEventEmitter(t *testing.T) {
	t.Run("delivers_to_all_handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		first := &mockHandler{}
		second := &mockHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event, err := NewJobRequestEvent("process_task", map[string]int64{"task_id": 1})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Len(t, first.received, 1)
		assert.Len(t, second.received, 1)
		assert.Equal(t, event.ID, first.received[0].ID)
	})

	t.Run("no_handlers_is_not_an_error", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)

		event, err := NewJobRequestEvent("process_task", nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("handler_error_does_not_stop_delivery", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		handlerErr := errors.New("handler exploded")
		failing := &mockHandler{
			handleFn: func(ctx context.Context, event *JobRequestEvent) error {
				return handlerErr
			},
		}
		succeeding := &mockHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(succeeding)

		event, err := NewJobRequestEvent("process_task", nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, handlerErr, "first handler error should be returned")
		assert.Len(t, succeeding.received, 1, "later handlers still receive the event")
	})
}
