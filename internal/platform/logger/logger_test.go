package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetup verifies logger creation for each configured level, including
// the fallback for unknown levels.
func TestSetup(t *testing.T) {
	testCases := []struct {
		name          string
		logLevel      string
		enabledLevel  slog.Level
		disabledLevel slog.Level
	}{
		{
			name:          "debug_level",
			logLevel:      "debug",
			enabledLevel:  slog.LevelDebug,
			disabledLevel: slog.LevelDebug - 1,
		},
		{
			name:          "info_level",
			logLevel:      "info",
			enabledLevel:  slog.LevelInfo,
			disabledLevel: slog.LevelDebug,
		},
		{
			name:          "warn_level",
			logLevel:      "warn",
			enabledLevel:  slog.LevelWarn,
			disabledLevel: slog.LevelInfo,
		},
		{
			name:          "error_level",
			logLevel:      "error",
			enabledLevel:  slog.LevelError,
			disabledLevel: slog.LevelWarn,
		},
		{
			name:          "case_insensitive",
			logLevel:      "DEBUG",
			enabledLevel:  slog.LevelDebug,
			disabledLevel: slog.LevelDebug - 1,
		},
		{
			name:          "invalid_level_falls_back_to_info",
			logLevel:      "verbose",
			enabledLevel:  slog.LevelInfo,
			disabledLevel: slog.LevelDebug,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.True(t, log.Enabled(ctx, tc.enabledLevel))
			assert.False(t, log.Enabled(ctx, tc.disabledLevel))
		})
	}
}

// TestSetupSetsDefault verifies the returned logger becomes the process
// default.
func TestSetupSetsDefault(t *testing.T) {
	log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
	require.NoError(t, err)

	assert.Equal(t, log, slog.Default())
}

// TestContextHelpers verifies storing and retrieving loggers via context.
func TestContextHelpers(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		log := slog.Default().With("test_attr", "value")
		ctx := WithLogger(context.Background(), log)

		assert.Equal(t, log, FromContext(ctx))
		assert.Equal(t, log, FromContextOrDefault(ctx, nil))
	})

	t.Run("missing_logger_returns_default", func(t *testing.T) {
		ctx := context.Background()

		assert.Equal(t, slog.Default(), FromContext(ctx))
	})

	t.Run("missing_logger_returns_provided_fallback", func(t *testing.T) {
		fallback := slog.Default().With("fallback", true)

		assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			WithLogger(context.Background(), nil)
		})
	})
}
