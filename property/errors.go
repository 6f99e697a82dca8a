package property

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when a view's partitioning does not match the
// graph or host data it is used with.
var ErrShapeMismatch = errors.New("property: shape mismatch")

// ShapeError describes a partition count or edge count disagreement.
type ShapeError struct {
	Partition int // -1 when the partition count differs
	Expected  int64
	Actual    int64
}

func (e *ShapeError) Error() string {
	if e.Partition < 0 {
		return fmt.Sprintf("property: expected %d partitions, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("property: partition %d: expected %d edges, got %d", e.Partition, e.Expected, e.Actual)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
