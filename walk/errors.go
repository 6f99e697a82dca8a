package walk

import "errors"

var (
	// ErrUnsupported is returned for graph configurations walks do not run on.
	ErrUnsupported = errors.New("walk: unsupported configuration")
	// ErrInvalidInput is returned for invalid start vertices or parameters.
	ErrInvalidInput = errors.New("walk: invalid input")
)
