package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"portfolio-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestInitReplacesLogger(t *testing.T) {
	before := logger.Log
	logger.Init("warn")
	t.Cleanup(func() { logger.Log = before })

	assert.NotSame(t, before, logger.Log)
	assert.False(t, logger.Log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Log.Enabled(context.Background(), slog.LevelWarn))
}
