package property

import (
	"context"
	"fmt"

	"github.com/hupe1980/edgeprop/device"
)

// GraphView is the partition descriptor a Container is sized from.
type GraphView interface {
	// NumberOfLocalEdgePartitions returns the number of local edge partitions.
	NumberOfLocalEdgePartitions() int
	// LocalEdgePartitionEdgeCount returns the number of edges of partition i.
	LocalEdgePartitionEdgeCount(i int) int64
}

// Container owns one buffer of T per local edge partition.
//
// buffers[i] holds exactly the edge count of partition i. A Container has a
// single owner and is not safe for concurrent Clear.
type Container[T any] struct {
	buffers []*device.Buffer[T]
}

// NewEmpty returns a container with zero partitions. It must be populated
// (by assigning the result of New) before algorithms that expect data use it.
func NewEmpty[T any](_ *device.Handle) *Container[T] {
	return &Container[T]{}
}

// New allocates one buffer per local edge partition of gv, in partition order.
//
// Buffer contents are unspecified until written. If any allocation fails the
// buffers allocated so far are released and the error is returned; there is
// no partially constructed container to recover.
func New[T any](ctx context.Context, h *device.Handle, gv GraphView) (*Container[T], error) {
	n := gv.NumberOfLocalEdgePartitions()

	c := &Container[T]{
		buffers: make([]*device.Buffer[T], 0, n),
	}

	var edges int64
	for i := range n {
		count := gv.LocalEdgePartitionEdgeCount(i)
		buf, err := device.Allocate[T](ctx, h, count)
		if err != nil {
			c.Clear(h)
			return nil, fmt.Errorf("property: partition %d: %w", i, err)
		}
		c.buffers = append(c.buffers, buf)
		edges += count
	}

	h.Logger().DebugContext(ctx, "edge property allocated",
		"partitions", n,
		"edges", edges,
	)

	return c, nil
}

// Clear releases every buffer and leaves the container with zero partitions.
// Deallocation is ordered on h's stream. Clear is idempotent.
func (c *Container[T]) Clear(h *device.Handle) {
	for _, buf := range c.buffers {
		buf.Free(h)
	}
	c.buffers = nil
}

// NumBuffers returns the number of per-partition buffers.
func (c *Container[T]) NumBuffers() int {
	return len(c.buffers)
}

// BufferSize returns the number of values held for partition i.
func (c *Container[T]) BufferSize(i int) int64 {
	return c.buffers[i].Size()
}

// Size returns the total number of values across all partitions.
func (c *Container[T]) Size() int64 {
	var n int64
	for _, buf := range c.buffers {
		n += buf.Size()
	}
	return n
}

// View returns a read-only view of the current buffers.
func (c *Container[T]) View() ConstView[T] {
	firsts := make([]device.ConstIter[T], len(c.buffers))
	counts := make([]int64, len(c.buffers))
	for i, buf := range c.buffers {
		firsts[i] = buf.CBegin()
		counts[i] = buf.Size()
	}
	return ConstView[T]{valueFirsts: firsts, edgeCounts: counts}
}

// MutableView returns a mutable view of the current buffers.
//
// No locking is performed: concurrent writes and reads of the same partition
// through different views are the caller's responsibility.
func (c *Container[T]) MutableView() MutView[T] {
	firsts := make([]device.Iter[T], len(c.buffers))
	counts := make([]int64, len(c.buffers))
	for i, buf := range c.buffers {
		firsts[i] = buf.Begin()
		counts[i] = buf.Size()
	}
	return MutView[T]{valueFirsts: firsts, edgeCounts: counts}
}
