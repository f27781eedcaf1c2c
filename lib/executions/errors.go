package executions

import "errors"

var (
	// ErrNotFound is returned when an execution is not found
	ErrNotFound = errors.New("execution not found")

	// ErrNotRunning is returned when stopping an execution that already finished
	ErrNotRunning = errors.New("execution not running")

	// ErrInvalidRequest is returned for empty commands or missing targets
	ErrInvalidRequest = errors.New("invalid execution request")
)
