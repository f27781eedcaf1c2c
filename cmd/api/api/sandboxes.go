package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/sandboxes"
)

// ListSandboxes lists sandboxes; ?all=true includes stopped ones
func (s *ApiService) ListSandboxes(ctx context.Context, request oapi.ListSandboxesRequestObject) (oapi.ListSandboxesResponseObject, error) {
	list, err := s.SandboxManager.ListSandboxes(ctx, request.Params.All)
	if err != nil {
		return nil, fmt.Errorf("list sandboxes: %w", err)
	}
	return oapi.ListSandboxes200JSONResponse(list), nil
}

// CreateSandbox creates a sandbox from a built image
func (s *ApiService) CreateSandbox(ctx context.Context, request oapi.CreateSandboxRequestObject) (oapi.CreateSandboxResponseObject, error) {
	sb, err := s.SandboxManager.CreateSandbox(ctx, *request.Body)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.CreateSandbox400JSONResponse(e), nil
		case http.StatusConflict:
			return oapi.CreateSandbox409JSONResponse(e), nil
		}
		return nil, fmt.Errorf("create sandbox: %w", err)
	}
	return oapi.CreateSandbox201JSONResponse(*sb), nil
}

// GetSandbox gets sandbox details
func (s *ApiService) GetSandbox(ctx context.Context, request oapi.GetSandboxRequestObject) (oapi.GetSandboxResponseObject, error) {
	sb, err := s.SandboxManager.GetSandbox(ctx, request.Id)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.GetSandbox404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get sandbox: %w", err)
	}
	return oapi.GetSandbox200JSONResponse(*sb), nil
}

// DeleteSandbox force-removes a sandbox
func (s *ApiService) DeleteSandbox(ctx context.Context, request oapi.DeleteSandboxRequestObject) (oapi.DeleteSandboxResponseObject, error) {
	if err := s.SandboxManager.DeleteSandbox(ctx, request.Id); err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.DeleteSandbox404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("delete sandbox: %w", err)
	}
	return oapi.DeleteSandbox204Response{}, nil
}

// StartSandbox starts a stopped sandbox
func (s *ApiService) StartSandbox(ctx context.Context, request oapi.StartSandboxRequestObject) (oapi.StartSandboxResponseObject, error) {
	sb, err := s.SandboxManager.StartSandbox(ctx, request.Id)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.StartSandbox404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("start sandbox: %w", err)
	}
	return oapi.StartSandbox200JSONResponse(*sb), nil
}

// StopSandbox stops a running sandbox
func (s *ApiService) StopSandbox(ctx context.Context, request oapi.StopSandboxRequestObject) (oapi.StopSandboxResponseObject, error) {
	sb, err := s.SandboxManager.StopSandbox(ctx, request.Id)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.StopSandbox404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("stop sandbox: %w", err)
	}
	return oapi.StopSandbox200JSONResponse(*sb), nil
}

// ExecSandbox runs a command to completion. A non-zero exit is still a 200.
func (s *ApiService) ExecSandbox(ctx context.Context, request oapi.ExecSandboxRequestObject) (oapi.ExecSandboxResponseObject, error) {
	req := request.Body
	argv, err := sandboxes.ParseCommand(req.Command)
	if err != nil {
		return oapi.ExecSandbox400JSONResponse{Code: "invalid_request", Message: err.Error()}, nil
	}

	log := logger.FromContext(ctx)
	log.InfoContext(ctx, "exec session started", "sandbox_id", request.Id, "command", argv)
	res, err := s.SandboxManager.Exec(ctx, request.Id, sandboxes.ExecRequest{
		Command: argv,
		WorkDir: req.WorkDir,
		Env:     req.Env,
	})
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.ExecSandbox400JSONResponse(e), nil
		case http.StatusNotFound:
			return oapi.ExecSandbox404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("exec: %w", err)
	}
	log.InfoContext(ctx, "exec session ended", "sandbox_id", request.Id, "exit_code", res.ExitCode, "duration", res.Duration)

	return oapi.ExecSandbox200JSONResponse{
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
		ExitCode:   res.ExitCode,
		Truncated:  res.Truncated,
		DurationMs: res.Duration.Milliseconds(),
	}, nil
}

// WriteSandboxFile writes a file into the sandbox
func (s *ApiService) WriteSandboxFile(ctx context.Context, request oapi.WriteSandboxFileRequestObject) (oapi.WriteSandboxFileResponseObject, error) {
	if request.Body.Path == "" {
		return oapi.WriteSandboxFile400JSONResponse{Code: "invalid_request", Message: "path is required"}, nil
	}
	if err := s.SandboxManager.WriteFile(ctx, request.Id, request.Body.Path, []byte(request.Body.Content)); err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.WriteSandboxFile400JSONResponse(e), nil
		case http.StatusNotFound:
			return oapi.WriteSandboxFile404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("write file: %w", err)
	}
	return oapi.WriteSandboxFile204Response{}, nil
}

// CleanupSandboxes removes sandboxes older than max_age, falling back to
// the configured maximum age
func (s *ApiService) CleanupSandboxes(ctx context.Context, request oapi.CleanupSandboxesRequestObject) (oapi.CleanupSandboxesResponseObject, error) {
	maxAge := s.Config.SandboxMaxAge
	if request.Body != nil && request.Body.MaxAge != "" {
		d, err := time.ParseDuration(request.Body.MaxAge)
		if err != nil || d <= 0 {
			return oapi.CleanupSandboxes400JSONResponse{Code: "invalid_request", Message: "max_age must be a positive duration"}, nil
		}
		maxAge = d
	}

	n, err := s.SandboxManager.CleanupOlderThan(ctx, maxAge)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}
	return oapi.CleanupSandboxes200JSONResponse{Removed: n}, nil
}
