package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/projects"
)

// ListProjects lists projects, most recently updated first
func (s *ApiService) ListProjects(ctx context.Context, request oapi.ListProjectsRequestObject) (oapi.ListProjectsResponseObject, error) {
	list, err := s.ProjectManager.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return oapi.ListProjects200JSONResponse(list), nil
}

// CreateProject creates a project
func (s *ApiService) CreateProject(ctx context.Context, request oapi.CreateProjectRequestObject) (oapi.CreateProjectResponseObject, error) {
	p, err := s.ProjectManager.CreateProject(ctx, *request.Body)
	if err != nil {
		if status, e := failure(err); status == http.StatusBadRequest {
			return oapi.CreateProject400JSONResponse(e), nil
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return oapi.CreateProject201JSONResponse(*p), nil
}

// GetProject gets a project
func (s *ApiService) GetProject(ctx context.Context, request oapi.GetProjectRequestObject) (oapi.GetProjectResponseObject, error) {
	p, err := s.ProjectManager.GetProject(ctx, request.Id)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.GetProject404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return oapi.GetProject200JSONResponse(*p), nil
}

// UpdateProject updates the fields present in the body
func (s *ApiService) UpdateProject(ctx context.Context, request oapi.UpdateProjectRequestObject) (oapi.UpdateProjectResponseObject, error) {
	p, err := s.ProjectManager.UpdateProject(ctx, request.Id, *request.Body)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.UpdateProject400JSONResponse(e), nil
		case http.StatusNotFound:
			return oapi.UpdateProject404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return oapi.UpdateProject200JSONResponse(*p), nil
}

// DeleteProject deletes a project with its sandbox and files
func (s *ApiService) DeleteProject(ctx context.Context, request oapi.DeleteProjectRequestObject) (oapi.DeleteProjectResponseObject, error) {
	if err := s.ProjectManager.DeleteProject(ctx, request.Id); err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.DeleteProject404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("delete project: %w", err)
	}
	return oapi.DeleteProject204Response{}, nil
}

// UploadProjectFiles writes files into the project workspace
func (s *ApiService) UploadProjectFiles(ctx context.Context, request oapi.UploadProjectFilesRequestObject) (oapi.UploadProjectFilesResponseObject, error) {
	if len(request.Body.Files) == 0 {
		return oapi.UploadProjectFiles400JSONResponse{Code: "invalid_request", Message: "files is required"}, nil
	}
	written, err := s.ProjectManager.UploadFiles(ctx, request.Id, request.Body.Files)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.UploadProjectFiles400JSONResponse(e), nil
		case http.StatusNotFound:
			return oapi.UploadProjectFiles404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("upload files: %w", err)
	}
	return oapi.UploadProjectFiles200JSONResponse{Files: written}, nil
}

// UploadProjectArchive extracts a tar.gz request body into the project
// workspace. The body size is bounded by the router.
func (s *ApiService) UploadProjectArchive(ctx context.Context, request oapi.UploadProjectArchiveRequestObject) (oapi.UploadProjectArchiveResponseObject, error) {
	written, err := s.ProjectManager.ImportArchive(ctx, request.Id, request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return oapi.UploadProjectArchive413JSONResponse{
				Code:    "too_large",
				Message: "archive exceeds " + projects.MaxArchiveSize.HR(),
			}, nil
		}
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.UploadProjectArchive400JSONResponse(e), nil
		case http.StatusNotFound:
			return oapi.UploadProjectArchive404JSONResponse(e), nil
		case http.StatusRequestEntityTooLarge:
			return oapi.UploadProjectArchive413JSONResponse(e), nil
		}
		return nil, fmt.Errorf("import archive: %w", err)
	}
	return oapi.UploadProjectArchive200JSONResponse{Files: written}, nil
}

// ListProjectExecutions lists a project's executions, newest first.
// ?limit bounds the result.
func (s *ApiService) ListProjectExecutions(ctx context.Context, request oapi.ListProjectExecutionsRequestObject) (oapi.ListProjectExecutionsResponseObject, error) {
	if request.Params.Limit < 0 {
		return oapi.ListProjectExecutions400JSONResponse{Code: "bad_request", Message: "limit must be a non-negative integer"}, nil
	}
	if _, err := s.ProjectManager.GetProject(ctx, request.Id); err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.ListProjectExecutions404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	list, err := s.ExecutionManager.ListByProject(ctx, request.Id, request.Params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	return oapi.ListProjectExecutions200JSONResponse(list), nil
}
