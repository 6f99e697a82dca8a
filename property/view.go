package property

import (
	"fmt"
	"slices"

	"github.com/hupe1980/edgeprop/device"
)

// Iterator is the traversal handle a View is generic over.
type Iterator[T any] interface {
	comparable
	At(i int64) T
	Check() error
}

// View is a non-owning snapshot of where each partition's values start and
// how many there are. ValueFirsts and EdgeCounts are parallel and indexed by
// partition.
//
// The snapshot covers metadata only; values stay live and, for mutable views,
// can be written through the handles.
type View[T any, It Iterator[T]] struct {
	valueFirsts []It
	edgeCounts  []int64
}

// ConstView is a read-only view.
type ConstView[T any] = View[T, device.ConstIter[T]]

// MutView is a mutable view.
type MutView[T any] = View[T, device.Iter[T]]

// NewView builds a view from parallel per-partition slices. The slices are copied.
func NewView[T any, It Iterator[T]](valueFirsts []It, edgeCounts []int64) (View[T, It], error) {
	if len(valueFirsts) != len(edgeCounts) {
		return View[T, It]{}, &ShapeError{Partition: -1, Expected: int64(len(valueFirsts)), Actual: int64(len(edgeCounts))}
	}
	return View[T, It]{
		valueFirsts: slices.Clone(valueFirsts),
		edgeCounts:  slices.Clone(edgeCounts),
	}, nil
}

// ValueFirsts returns the per-partition start handles.
func (v View[T, It]) ValueFirsts() []It { return v.valueFirsts }

// EdgeCounts returns the per-partition value counts.
func (v View[T, It]) EdgeCounts() []int64 { return v.edgeCounts }

// NumberOfPartitions returns the number of partitions covered by the view.
func (v View[T, It]) NumberOfPartitions() int { return len(v.edgeCounts) }

// Partition returns the value accessor of partition i.
func (v View[T, It]) Partition(i int) Values[T, It] {
	return Values[T, It]{first: v.valueFirsts[i], count: v.edgeCounts[i]}
}

// Equal reports whether both views have element-wise equal handles and counts.
func (v View[T, It]) Equal(o View[T, It]) bool {
	return slices.Equal(v.valueFirsts, o.valueFirsts) && slices.Equal(v.edgeCounts, o.edgeCounts)
}

// Validate reports device.ErrStaleHandle if the owning container was cleared
// after the view was taken.
func (v View[T, It]) Validate() error {
	for i, it := range v.valueFirsts {
		if err := it.Check(); err != nil {
			return fmt.Errorf("property: partition %d: %w", i, err)
		}
	}
	return nil
}

// CheckShape reports ErrShapeMismatch if the view does not match gv's partitioning.
func (v View[T, It]) CheckShape(gv GraphView) error {
	n := gv.NumberOfLocalEdgePartitions()
	if n != len(v.edgeCounts) {
		return &ShapeError{Partition: -1, Expected: int64(n), Actual: int64(len(v.edgeCounts))}
	}
	for i, count := range v.edgeCounts {
		if want := gv.LocalEdgePartitionEdgeCount(i); want != count {
			return &ShapeError{Partition: i, Expected: want, Actual: count}
		}
	}
	return nil
}

// Values is the value accessor of one partition of a View.
type Values[T any, It Iterator[T]] struct {
	first It
	count int64
}

// Value returns the value of local edge e.
func (p Values[T, It]) Value(e int64) T { return p.first.At(e) }

// Len returns the number of values in the partition.
func (p Values[T, It]) Len() int64 { return p.count }

// First returns the partition's start handle.
func (p Values[T, It]) First() It { return p.first }
