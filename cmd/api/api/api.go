package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onkernel/sandboxd/cmd/api/config"
	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/engine"
	"github.com/onkernel/sandboxd/lib/executions"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/projects"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"github.com/onkernel/sandboxd/lib/sandboxes"
	"github.com/onkernel/sandboxd/lib/verify"
)

// ApiService implements the oapi.StrictServerInterface
type ApiService struct {
	Config           *config.Config
	Engine           engine.Engine
	ImageManager     images.Manager
	SandboxManager   sandboxes.Manager
	ProjectManager   projects.Manager
	ExecutionManager executions.Manager
	Verifier         *verify.Verifier
}

var _ oapi.StrictServerInterface = (*ApiService)(nil)

// New creates a new ApiService
func New(
	config *config.Config,
	eng engine.Engine,
	imageManager images.Manager,
	sandboxManager sandboxes.Manager,
	projectManager projects.Manager,
	executionManager executions.Manager,
	verifier *verify.Verifier,
) *ApiService {
	return &ApiService{
		Config:           config,
		Engine:           eng,
		ImageManager:     imageManager,
		SandboxManager:   sandboxManager,
		ProjectManager:   projectManager,
		ExecutionManager: executionManager,
		Verifier:         verifier,
	}
}

// StrictOptions routes request and handler failures to the JSON error writers
func StrictOptions() oapi.StrictHTTPServerOptions {
	return oapi.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  RequestError,
		ResponseErrorHandlerFunc: ResponseError,
	}
}

// RequestError rejects a request whose parameters or body could not be bound
func RequestError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, http.StatusBadRequest, "bad_request", err.Error())
}

// ResponseError writes a handler failure as a JSON error. Unclassified
// failures are logged and reported without detail.
func ResponseError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status, code := errorStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.FromContext(ctx).ErrorContext(ctx, "request failed", "error", err, "path", r.URL.Path)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeError(w, status, code, msg)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(oapi.Error{Code: code, Message: message})
}

// failure classifies err for handlers that declare the matching response
func failure(err error) (int, oapi.Error) {
	status, code := errorStatus(err)
	return status, oapi.Error{Code: code, Message: err.Error()}
}

// errorStatus classifies domain errors. Invalid-request sentinels are
// checked first since they may wrap a lookup failure.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, images.ErrInvalidName),
		errors.Is(err, images.ErrInvalidDescriptor),
		errors.Is(err, descriptor.ErrInvalid),
		errors.Is(err, sandboxes.ErrInvalidLimits),
		errors.Is(err, sandboxes.ErrInvalidPath),
		errors.Is(err, projects.ErrInvalidRequest),
		errors.Is(err, projects.ErrInvalidPath),
		errors.Is(err, projects.ErrInvalidArchive),
		errors.Is(err, executions.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, images.ErrNotFound),
		errors.Is(err, sandboxes.ErrNotFound),
		errors.Is(err, projects.ErrNotFound),
		errors.Is(err, executions.ErrNotFound),
		errors.Is(err, runtimes.ErrUnknownRuntime):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, images.ErrAlreadyExists),
		errors.Is(err, images.ErrBuildInProgress),
		errors.Is(err, sandboxes.ErrImageNotReady),
		errors.Is(err, verify.ErrImageNotReady),
		errors.Is(err, executions.ErrNotRunning):
		return http.StatusConflict, "conflict"
	case errors.Is(err, projects.ErrArchiveTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, engine.ErrUnavailable):
		return http.StatusServiceUnavailable, "engine_unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}
