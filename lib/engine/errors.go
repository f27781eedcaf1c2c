package engine

import "errors"

var (
	// ErrNotFound is returned when a container or image does not exist or is not managed
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the engine cannot be reached
	ErrUnavailable = errors.New("container engine unavailable")

	// ErrBuildFailed is returned when the builder reports an error
	ErrBuildFailed = errors.New("image build failed")
)
