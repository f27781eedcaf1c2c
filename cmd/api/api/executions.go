package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/onkernel/sandboxd/lib/executions"
	"github.com/onkernel/sandboxd/lib/oapi"
)

// StartExecution starts a command in the background and returns the
// pending record
func (s *ApiService) StartExecution(ctx context.Context, request oapi.StartExecutionRequestObject) (oapi.StartExecutionResponseObject, error) {
	exec, err := s.ExecutionManager.Start(ctx, *request.Body)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.StartExecution400JSONResponse(e), nil
		case http.StatusNotFound:
			return oapi.StartExecution404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("start execution: %w", err)
	}
	return oapi.StartExecution202JSONResponse(*exec), nil
}

// QuickExecution runs a snippet in a throw-away sandbox and waits for it
func (s *ApiService) QuickExecution(ctx context.Context, request oapi.QuickExecutionRequestObject) (oapi.QuickExecutionResponseObject, error) {
	res, err := s.ExecutionManager.Quick(ctx, *request.Body)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.QuickExecution400JSONResponse(e), nil
		case http.StatusConflict:
			return oapi.QuickExecution409JSONResponse(e), nil
		}
		return nil, fmt.Errorf("quick execution: %w", err)
	}
	return oapi.QuickExecution200JSONResponse(*res), nil
}

// RunningExecutions lists pending and running executions
func (s *ApiService) RunningExecutions(ctx context.Context, request oapi.RunningExecutionsRequestObject) (oapi.RunningExecutionsResponseObject, error) {
	list, err := s.ExecutionManager.Running(ctx)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	return oapi.RunningExecutions200JSONResponse(list), nil
}

// GetExecution gets an execution; ?wait=true blocks until it finishes
func (s *ApiService) GetExecution(ctx context.Context, request oapi.GetExecutionRequestObject) (oapi.GetExecutionResponseObject, error) {
	var (
		exec *executions.Execution
		err  error
	)
	if request.Params.Wait {
		exec, err = s.ExecutionManager.Wait(ctx, request.Id)
	} else {
		exec, err = s.ExecutionManager.Get(ctx, request.Id)
	}
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.GetExecution404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get execution: %w", err)
	}
	return oapi.GetExecution200JSONResponse(*exec), nil
}

// StopExecution cancels a pending or running execution
func (s *ApiService) StopExecution(ctx context.Context, request oapi.StopExecutionRequestObject) (oapi.StopExecutionResponseObject, error) {
	exec, err := s.ExecutionManager.Stop(ctx, request.Id)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusNotFound:
			return oapi.StopExecution404JSONResponse(e), nil
		case http.StatusConflict:
			return oapi.StopExecution409JSONResponse(e), nil
		}
		return nil, fmt.Errorf("stop execution: %w", err)
	}
	return oapi.StopExecution200JSONResponse(*exec), nil
}
