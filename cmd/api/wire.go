//go:build wireinject

package main

import (
	"context"
	"log/slog"

	"github.com/google/wire"
	"github.com/onkernel/sandboxd/cmd/api/api"
	"github.com/onkernel/sandboxd/cmd/api/config"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/executions"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/otel"
	"github.com/onkernel/sandboxd/lib/projects"
	"github.com/onkernel/sandboxd/lib/providers"
	"github.com/onkernel/sandboxd/lib/sandboxes"
)

// application struct to hold initialized components
type application struct {
	Ctx              context.Context
	Logger           *slog.Logger
	Config           *config.Config
	Telemetry        *otel.Provider
	Engine           engine.Engine
	ImageManager     images.Manager
	SandboxManager   sandboxes.Manager
	ProjectManager   projects.Manager
	ExecutionManager executions.Manager
	ApiService       *api.ApiService
}

// initializeApp is the injector function
func initializeApp() (*application, func(), error) {
	panic(wire.Build(
		providers.ProvideContext,
		providers.ProvideConfig,
		providers.ProvideTelemetry,
		providers.ProvideLogger,
		providers.ProvidePaths,
		providers.ProvideEngine,
		providers.ProvideImageManager,
		providers.ProvideSandboxManager,
		providers.ProvideDatabase,
		providers.ProvideProjectManager,
		providers.ProvideExecutionManager,
		providers.ProvideVerifier,
		api.New,
		wire.Struct(new(application), "*"),
	))
}
