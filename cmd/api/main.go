package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/onkernel/sandboxd"
	"github.com/onkernel/sandboxd/cmd/api/api"
	mw "github.com/onkernel/sandboxd/lib/middleware"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/projects"
	"github.com/riandyrn/otelchi"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application terminated", "error", err)
		os.Exit(1)
	}
}

func run() error {
	app, cleanup, err := initializeApp()
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer cleanup()

	cfg := app.Config
	logger := app.Logger

	ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JwtSecret == "" {
		logger.Warn("JWT_SECRET is not set; the API is unauthenticated")
	}

	if err := app.Engine.Ping(ctx); err != nil {
		logger.Warn("container engine unreachable at startup", "error", err)
	}

	if n, err := app.ExecutionManager.RecoverInterrupted(ctx); err != nil {
		logger.Error("failed to recover interrupted executions", "error", err)
	} else if n > 0 {
		logger.Info("marked interrupted executions as failed", "count", n)
	}

	spec, err := mw.LoadSpec(ctx, sandboxd.OpenAPIYAML)
	if err != nil {
		return err
	}

	httpMetrics := mw.NoopHTTPMetrics()
	if cfg.OtelEnabled {
		m, err := mw.NewHTTPMetrics(app.Telemetry.Meter("sandboxd/http"))
		if err != nil {
			return fmt.Errorf("create http metrics: %w", err)
		}
		httpMetrics = m.Middleware
	}
	accessLog := mw.NewAccessLogger(app.Telemetry.LogHandler)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(otelchi.Middleware(cfg.OtelServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithTracerProvider(app.Telemetry.TracerProvider()),
	))
	r.Use(httpMetrics)
	r.Use(mw.AccessLogger(accessLog))
	r.Use(mw.InjectLogger(logger))

	r.Get("/spec.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.oai.openapi")
		w.Write(sandboxd.OpenAPIYAML)
	})

	r.Get("/spec.json", func(w http.ResponseWriter, r *http.Request) {
		jsonData, err := yaml.YAMLToJSON(sandboxd.OpenAPIYAML)
		if err != nil {
			http.Error(w, "Failed to convert YAML to JSON", http.StatusInternalServerError)
			logger.ErrorContext(r.Context(), "Failed to convert YAML to JSON", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jsonData)
	})

	app.ApiService.HealthRoutes(r)

	r.Group(func(r chi.Router) {
		if cfg.JwtSecret != "" {
			r.Use(mw.VerifyJWT(cfg.JwtSecret))
		}
		r.Use(mw.OapiValidator(spec))
		r.Use(middleware.RequestSize(int64(projects.MaxArchiveSize.Bytes())))

		oapi.HandlerWithOptions(
			oapi.NewStrictHandlerWithOptions(app.ApiService, nil, api.StrictOptions()),
			oapi.ChiServerOptions{
				BaseRouter:       r,
				Middlewares:      []oapi.MiddlewareFunc{mw.FlushEventStream},
				ErrorHandlerFunc: api.RequestError,
			},
		)

		// Upgrades to a WebSocket, so it stays outside the generated router
		r.Get("/v1/sandboxes/{id}/terminal", app.ApiService.TerminalHandler)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		logger.Info("starting sandboxd API server", "port", cfg.Port, "data_dir", cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			return err
		}
		return nil
	})

	if cfg.BuildOnStartup {
		grp.Go(func() error {
			results, err := app.ImageManager.BuildAll(gctx)
			if err != nil {
				logger.Error("startup image builds failed", "error", err)
				return nil
			}
			for name, err := range results {
				if err != nil {
					logger.Error("startup image build failed", "runtime", name, "error", err)
				}
			}
			logger.Info("startup image builds finished", "count", len(results))
			return nil
		})
	}

	// Periodically remove sandboxes past their maximum age
	if cfg.CleanupInterval > 0 && cfg.SandboxMaxAge > 0 {
		grp.Go(func() error {
			ticker := time.NewTicker(cfg.CleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if _, err := app.SandboxManager.CleanupOlderThan(gctx, cfg.SandboxMaxAge); err != nil {
						logger.Error("sandbox cleanup failed", "error", err)
					}
				}
			}
		})
	}

	grp.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", "error", err)
			return err
		}

		logger.Info("http server shutdown complete")
		return nil
	})

	return grp.Wait()
}
