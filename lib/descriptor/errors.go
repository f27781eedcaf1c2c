package descriptor

import "errors"

var (
	// ErrEmpty is returned when a descriptor contains no instructions
	ErrEmpty = errors.New("descriptor has no instructions")

	// ErrSyntax is returned when the descriptor cannot be tokenized
	ErrSyntax = errors.New("descriptor syntax error")

	// ErrUnsupportedInstruction is returned for instructions outside the supported set
	ErrUnsupportedInstruction = errors.New("unsupported instruction")

	// ErrMultiStage is returned when more than one FROM is present
	ErrMultiStage = errors.New("multi-stage descriptors are not supported")

	// ErrMissingBase is returned when no FROM instruction precedes the build steps
	ErrMissingBase = errors.New("descriptor has no base image")

	// ErrRootUser is returned when the effective runtime user is root
	ErrRootUser = errors.New("runtime user must not be root")

	// ErrInvalid wraps every validation failure
	ErrInvalid = errors.New("invalid descriptor")
)
