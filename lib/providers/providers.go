package providers

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/onkernel/sandboxd/cmd/api/config"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/executions"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/otel"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/onkernel/sandboxd/lib/projects"
	"github.com/onkernel/sandboxd/lib/sandboxes"
	"github.com/onkernel/sandboxd/lib/store"
	"github.com/onkernel/sandboxd/lib/verify"
)

// ProvideContext provides a base context
func ProvideContext() context.Context {
	return context.Background()
}

// ProvideConfig provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideTelemetry provides the OpenTelemetry providers. The cleanup
// flushes pending exports.
func ProvideTelemetry(ctx context.Context, cfg *config.Config) (*otel.Provider, func(), error) {
	tel, err := otel.Init(ctx, otel.Config{
		Enabled:     cfg.OtelEnabled,
		Endpoint:    cfg.OtelEndpoint,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.Env,
		Insecure:    cfg.OtelInsecure,
	})
	if err != nil {
		return nil, nil, err
	}
	return tel, func() { tel.Shutdown(context.Background()) }, nil
}

// ProvideLogger provides the API logger
func ProvideLogger(tel *otel.Provider) *slog.Logger {
	log := logger.NewSubsystemLogger(logger.SubsystemAPI, logger.NewConfig(), tel.LogHandler)
	slog.SetDefault(log)
	return log
}

// ProvidePaths provides the data directory layout
func ProvidePaths(cfg *config.Config) *paths.Paths {
	return paths.New(cfg.DataDir)
}

// ProvideEngine connects to the container engine
func ProvideEngine() (engine.Engine, func(), error) {
	eng, err := engine.NewDocker()
	if err != nil {
		return nil, nil, err
	}
	return eng, func() { eng.Close() }, nil
}

// ProvideImageManager provides the image manager
func ProvideImageManager(p *paths.Paths, eng engine.Engine, cfg *config.Config, tel *otel.Provider) (images.Manager, error) {
	log := logger.NewSubsystemLogger(logger.SubsystemImages, logger.NewConfig(), tel.LogHandler)
	return images.NewManager(p, eng, nil, images.Config{
		MaxConcurrentBuilds: cfg.MaxConcurrentBuilds,
		BuildTimeout:        cfg.BuildTimeout,
	}, log, tel.Meter("sandboxd/images"))
}

// ProvideSandboxManager provides the sandbox manager
func ProvideSandboxManager(p *paths.Paths, eng engine.Engine, imageManager images.Manager, cfg *config.Config, tel *otel.Provider) (sandboxes.Manager, error) {
	return sandboxes.NewManager(p, eng, imageManager, sandboxes.Config{
		DefaultCPULimit:    cfg.DefaultCPULimit,
		DefaultMemoryLimit: cfg.DefaultMemoryLimit,
		MaxOutputBytes:     int64(cfg.MaxOutputSize.Bytes()),
	}, tel.Meter("sandboxd/sandboxes"), tel.Tracer("sandboxd/sandboxes"))
}

// ProvideDatabase opens the project and execution store
func ProvideDatabase(ctx context.Context, p *paths.Paths) (*sql.DB, func(), error) {
	db, err := store.Open(ctx, p.Database())
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// ProvideProjectManager provides the project manager
func ProvideProjectManager(db *sql.DB, p *paths.Paths, sandboxManager sandboxes.Manager) projects.Manager {
	return projects.NewManager(db, p, sandboxManager)
}

// ProvideExecutionManager provides the execution manager
func ProvideExecutionManager(db *sql.DB, sandboxManager sandboxes.Manager, projectManager projects.Manager, cfg *config.Config, tel *otel.Provider) (executions.Manager, error) {
	return executions.NewManager(db, sandboxManager, projectManager, executions.Config{
		Timeout:          cfg.ExecutionTimeout,
		QuickConcurrency: cfg.QuickConcurrency,
		QuickTimeout:     cfg.QuickTimeout,
	}, tel.Meter("sandboxd/executions"))
}

// ProvideVerifier provides the image verifier
func ProvideVerifier(eng engine.Engine, imageManager images.Manager) *verify.Verifier {
	return verify.NewVerifier(eng, imageManager)
}
