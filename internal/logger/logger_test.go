package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/logger"
)

func TestNew_ContextAttributes(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := logger.New("debug", "json", buf)
	require.NoError(t, err)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithOperation(ctx, "submit")
	l.With("component", "crpt").DebugContext(ctx, "token acquired")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "token acquired", record["msg"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "submit", record["operation"])
	assert.Equal(t, "crpt", record["component"])
	assert.Equal(t, "req-1", logger.RequestIDFromCtx(ctx))
}

func TestNew_Level(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := logger.New("WARN", "text", buf)
	require.NoError(t, err)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := logger.New("loud", "json", new(bytes.Buffer))
	assert.Error(t, err)

	_, err = logger.New("info", "xml", new(bytes.Buffer))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := logger.ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, l)
	assert.Empty(t, logger.RequestIDFromCtx(context.Background()))
}
