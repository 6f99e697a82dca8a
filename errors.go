package edgeprop

import (
	"errors"
	"fmt"

	"github.com/hupe1980/edgeprop/device"
	"github.com/hupe1980/edgeprop/graph"
	"github.com/hupe1980/edgeprop/property"
	"github.com/hupe1980/edgeprop/walk"
)

// Code classifies runtime failures.
type Code int

const (
	CodeUnknown Code = iota
	CodeInvalidInput
	CodeUnsupported
	CodeAllocation
	CodeStaleHandle
)

func (c Code) String() string {
	switch c {
	case CodeInvalidInput:
		return "invalid input"
	case CodeUnsupported:
		return "unsupported"
	case CodeAllocation:
		return "allocation failed"
	case CodeStaleHandle:
		return "stale handle"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidInput matches errors with CodeInvalidInput.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported matches errors with CodeUnsupported.
	ErrUnsupported = errors.New("unsupported")
	// ErrAllocation matches errors with CodeAllocation.
	ErrAllocation = errors.New("allocation failed")
	// ErrStaleHandle matches errors with CodeStaleHandle.
	ErrStaleHandle = errors.New("stale handle")
	// ErrUnknown matches errors with CodeUnknown.
	ErrUnknown = errors.New("unknown error")
)

func (c Code) sentinel() error {
	switch c {
	case CodeInvalidInput:
		return ErrInvalidInput
	case CodeUnsupported:
		return ErrUnsupported
	case CodeAllocation:
		return ErrAllocation
	case CodeStaleHandle:
		return ErrStaleHandle
	default:
		return ErrUnknown
	}
}

// Error is the failure status of a runtime operation.
//
// The original underlying error can be accessed via errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("edgeprop: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Code.sentinel()}
	}
	return []error{e.Code.sentinel(), e.cause}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	return &Error{Code: classify(err), Message: err.Error(), cause: err}
}

func classify(err error) Code {
	switch {
	case errors.Is(err, walk.ErrUnsupported):
		return CodeUnsupported
	case errors.Is(err, device.ErrAllocationFailed):
		return CodeAllocation
	case errors.Is(err, device.ErrStaleHandle), errors.Is(err, graph.ErrCleared):
		return CodeStaleHandle
	case errors.Is(err, graph.ErrInvalidInput),
		errors.Is(err, walk.ErrInvalidInput),
		errors.Is(err, property.ErrShapeMismatch),
		errors.Is(err, device.ErrInvalidSize),
		errors.Is(err, device.ErrOutOfRange),
		errors.Is(err, device.ErrNilHandle):
		return CodeInvalidInput
	default:
		return CodeUnknown
	}
}
