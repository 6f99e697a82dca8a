package device

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocationFailed is returned when a buffer cannot be obtained.
	ErrAllocationFailed = errors.New("device: allocation failed")
	// ErrStaleHandle is returned when a traversal handle outlives its buffer.
	ErrStaleHandle = errors.New("device: stale handle")
	// ErrNilHandle is returned when a zero-value traversal handle is dereferenced.
	ErrNilHandle = errors.New("device: nil handle")
	// ErrOutOfRange is returned when an access exceeds the buffer bounds.
	ErrOutOfRange = errors.New("device: out of range")
	// ErrInvalidSize is returned for negative element counts.
	ErrInvalidSize = errors.New("device: invalid size")
	// ErrStreamClosed is returned when work is enqueued on a closed stream.
	ErrStreamClosed = errors.New("device: stream closed")
)

// AllocationError describes a failed buffer allocation.
//
// The original underlying error can be accessed via errors.Unwrap.
type AllocationError struct {
	Elements int64
	Bytes    int64
	cause    error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("device: allocation of %d elements (%d bytes) failed: %v", e.Elements, e.Bytes, e.cause)
}

func (e *AllocationError) Unwrap() []error { return []error{ErrAllocationFailed, e.cause} }
