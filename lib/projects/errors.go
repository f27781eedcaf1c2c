package projects

import "errors"

var (
	// ErrNotFound is returned when a project is not found
	ErrNotFound = errors.New("project not found")

	// ErrInvalidRequest is returned for missing names, unknown languages or bad limits
	ErrInvalidRequest = errors.New("invalid project request")

	// ErrInvalidPath is returned for upload paths that leave the project workspace
	ErrInvalidPath = errors.New("invalid file path")

	// ErrInvalidArchive is returned when an upload is not a readable tar.gz stream
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrArchiveTooLarge is returned when extracted content passes MaxArchiveSize
	ErrArchiveTooLarge = errors.New("archive content exceeds size limit")
)
