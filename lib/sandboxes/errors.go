package sandboxes

import "errors"

var (
	// ErrNotFound is returned when a sandbox is not found
	ErrNotFound = errors.New("sandbox not found")

	// ErrInvalidLimits is returned for unparseable or out of range CPU/memory limits
	ErrInvalidLimits = errors.New("invalid resource limits")

	// ErrImageNotReady is returned when the sandbox image has not been built
	ErrImageNotReady = errors.New("image not ready")

	// ErrInvalidPath is returned when a file path escapes the workspace
	ErrInvalidPath = errors.New("invalid path")
)
