package graph

import "errors"

var (
	// ErrInvalidInput is returned for malformed edge lists or vertex identifiers.
	ErrInvalidInput = errors.New("graph: invalid input")
	// ErrCleared is returned when a cleared graph is used.
	ErrCleared = errors.New("graph: cleared")
)
