package logger

import (
	"bytes"
	"context"
	"testing"

	"golang.org/x/exp/slog"
	"notekeeper/internal/app/client/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestNewLevel_Override(t *testing.T) {
	ctx := context.Background()

	// Локальное окружение, но уровень задан явно
	log := NewLevel(config.EnvLocal, "warn")
	assert.False(t, log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, log.Enabled(ctx, slog.LevelWarn))

	// Неизвестный уровень - остается уровень окружения
	log = NewLevel(config.EnvProd, "verbose")
	assert.False(t, log.Enabled(ctx, slog.LevelDebug))
	assert.True(t, log.Enabled(ctx, slog.LevelInfo))
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_WritesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With(slog.String("component", "session")).Info("вход выполнен", "user", "ana")

	out := buf.String()
	assert.Contains(t, out, "вход выполнен")
	assert.Contains(t, out, `"component": "session"`)
	assert.Contains(t, out, `"user": "ana"`)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("ничего не должно произойти")
}
