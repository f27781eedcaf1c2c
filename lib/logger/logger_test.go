package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_LEVEL_IMAGES", "DEBUG")
	t.Setenv("LOG_LEVEL_API", "bogus")

	cfg := NewConfig()
	assert.Equal(t, slog.LevelWarn, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.LevelFor(SubsystemImages))
	assert.Equal(t, slog.LevelWarn, cfg.LevelFor(SubsystemAPI))
}

func TestContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := AddToContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestTeeHandler(t *testing.T) {
	var debug, info bytes.Buffer
	h := &teeHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		&levelHandler{level: slog.LevelInfo, Handler: slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelDebug})},
	}}
	log := slog.New(h).With("subsystem", "images")

	log.Debug("queued", "name", "go")
	log.Info("built", "name", "go")

	assert.Equal(t, 2, bytes.Count(debug.Bytes(), []byte("\n")))
	require.Equal(t, 1, bytes.Count(info.Bytes(), []byte("\n")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(info.Bytes(), &rec))
	assert.Equal(t, "built", rec["msg"])
	assert.Equal(t, "images", rec["subsystem"])
}
