// Package logger builds per-subsystem slog loggers and carries them in
// request contexts.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Subsystem names a component with its own log level
type Subsystem string

const (
	SubsystemAPI        Subsystem = "API"
	SubsystemImages     Subsystem = "IMAGES"
	SubsystemSandboxes  Subsystem = "SANDBOXES"
	SubsystemExecutions Subsystem = "EXECUTIONS"
	SubsystemProjects   Subsystem = "PROJECTS"
	SubsystemVerify     Subsystem = "VERIFY"
)

// Config holds the default level and per-subsystem overrides
type Config struct {
	DefaultLevel    slog.Level
	SubsystemLevels map[Subsystem]slog.Level
	// JSON selects the JSON handler; text otherwise
	JSON bool
}

// NewConfig reads LOG_LEVEL, LOG_LEVEL_<SUBSYSTEM> and LOG_FORMAT from the
// environment
func NewConfig() Config {
	cfg := Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[Subsystem]slog.Level),
		JSON:            os.Getenv("LOG_FORMAT") != "text",
	}
	if lvl, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
		cfg.DefaultLevel = lvl
	}
	for _, s := range []Subsystem{SubsystemAPI, SubsystemImages, SubsystemSandboxes, SubsystemExecutions, SubsystemProjects, SubsystemVerify} {
		if lvl, ok := ParseLevel(os.Getenv("LOG_LEVEL_" + string(s))); ok {
			cfg.SubsystemLevels[s] = lvl
		}
	}
	return cfg
}

// LevelFor returns the effective level of a subsystem
func (c Config) LevelFor(s Subsystem) slog.Level {
	if lvl, ok := c.SubsystemLevels[s]; ok {
		return lvl
	}
	return c.DefaultLevel
}

// ParseLevel accepts debug, info, warn/warning and error in any case
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// NewSubsystemLogger returns a stdout logger for a subsystem. When
// otelHandler is non-nil, records are also sent to it.
func NewSubsystemLogger(s Subsystem, cfg Config, otelHandler slog.Handler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LevelFor(s)}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	if otelHandler != nil {
		h = &teeHandler{handlers: []slog.Handler{h, &levelHandler{level: opts.Level.Level(), Handler: otelHandler}}}
	}
	return slog.New(h).With("subsystem", strings.ToLower(string(s)))
}

type contextKey struct{}

// AddToContext stores a logger in ctx
func AddToContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger stored in ctx, or slog.Default
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}
