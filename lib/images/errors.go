package images

import "errors"

var (
	ErrNotFound          = errors.New("image not found")
	ErrAlreadyExists     = errors.New("image already exists")
	ErrInvalidName       = errors.New("invalid image name")
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	ErrBuildInProgress   = errors.New("image build in progress")
	ErrBuildFailed       = errors.New("image build failed")
)
