package property

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/edgeprop/device"
	"github.com/hupe1980/edgeprop/resource"
)

// partitions is a GraphView with the given per-partition edge counts.
type partitions []int64

func (p partitions) NumberOfLocalEdgePartitions() int        { return len(p) }
func (p partitions) LocalEdgePartitionEdgeCount(i int) int64 { return p[i] }

func newHandle(t *testing.T, optFns ...device.Option) *device.Handle {
	t.Helper()
	h := device.NewHandle(optFns...)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestNew_Shape(t *testing.T) {
	tests := []struct {
		name string
		gv   partitions
	}{
		{"no partitions", partitions{}},
		{"single", partitions{8}},
		{"uneven", partitions{3, 0, 5, 1}},
		{"many", partitions{1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandle(t)

			c, err := New[float32](t.Context(), h, tt.gv)
			require.NoError(t, err)

			require.Equal(t, tt.gv.NumberOfLocalEdgePartitions(), c.NumBuffers())
			var total int64
			for i := range c.NumBuffers() {
				assert.Equal(t, tt.gv.LocalEdgePartitionEdgeCount(i), c.BufferSize(i))
				total += tt.gv[i]
			}
			assert.Equal(t, total, c.Size())

			cv := c.View()
			mv := c.MutableView()
			require.Len(t, cv.EdgeCounts(), c.NumBuffers())
			require.Len(t, mv.EdgeCounts(), c.NumBuffers())
			for i := range c.NumBuffers() {
				assert.Equal(t, c.BufferSize(i), cv.EdgeCounts()[i])
				assert.Equal(t, c.BufferSize(i), mv.EdgeCounts()[i])
			}
			require.NoError(t, cv.CheckShape(tt.gv))
			require.NoError(t, mv.CheckShape(tt.gv))
		})
	}
}

func TestView_PartitionOrder(t *testing.T) {
	h := newHandle(t)
	gv := partitions{2, 3, 1}

	c, err := New[int32](t.Context(), h, gv)
	require.NoError(t, err)

	// Tag every value with its partition index through the mutable view.
	mv := c.MutableView()
	for i := range mv.NumberOfPartitions() {
		p := mv.Partition(i)
		for e := range p.Len() {
			p.First().Set(e, int32(i))
		}
	}

	cv := c.View()
	for i := range cv.NumberOfPartitions() {
		p := cv.Partition(i)
		assert.Equal(t, gv[i], p.Len())
		for e := range p.Len() {
			assert.Equal(t, int32(i), p.Value(e))
		}
	}

	host, err := CopyToHost(t.Context(), h, cv)
	require.NoError(t, err)
	assert.Equal(t, [][]int32{{0, 0}, {1, 1, 1}, {2}}, host)
}

func TestView_Equality(t *testing.T) {
	h := newHandle(t)

	c, err := New[float64](t.Context(), h, partitions{4, 4})
	require.NoError(t, err)

	assert.True(t, c.View().Equal(c.View()))
	assert.True(t, c.MutableView().Equal(c.MutableView()))

	other, err := New[float64](t.Context(), h, partitions{4, 4})
	require.NoError(t, err)
	assert.False(t, c.View().Equal(other.View()), "same counts, different storage")

	firsts := c.View().ValueFirsts()
	counts := []int64{4, 3}
	v, err := NewView[float64](firsts, counts)
	require.NoError(t, err)
	assert.False(t, c.View().Equal(v), "same storage, different counts")

	counts[1] = 4
	assert.Equal(t, int64(3), v.EdgeCounts()[1], "NewView copies its inputs")

	_, err = NewView[float64](firsts, []int64{4})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestClear(t *testing.T) {
	h := newHandle(t)

	c, err := New[float32](t.Context(), h, partitions{5, 7})
	require.NoError(t, err)
	assert.Equal(t, int64(48), h.Resources().MemoryUsage())

	cv := c.View()
	require.NoError(t, cv.Validate())

	c.Clear(h)
	assert.Zero(t, c.NumBuffers())
	c.Clear(h)
	assert.Zero(t, c.NumBuffers())

	require.NoError(t, h.Synchronize(t.Context()))
	assert.Zero(t, h.Resources().MemoryUsage())

	// Views taken before Clear are detected as stale.
	err = cv.Validate()
	assert.ErrorIs(t, err, device.ErrStaleHandle)
	assert.Panics(t, func() { _ = cv.Partition(0).Value(0) })

	// Views taken after Clear are empty.
	assert.Zero(t, c.View().NumberOfPartitions())
	assert.Zero(t, c.MutableView().NumberOfPartitions())
}

func TestNewEmpty(t *testing.T) {
	h := newHandle(t)

	c := NewEmpty[float32](h)
	assert.Zero(t, c.NumBuffers())
	assert.Zero(t, c.Size())
	assert.Zero(t, c.View().NumberOfPartitions())
	assert.Empty(t, c.View().ValueFirsts())
	require.NoError(t, c.View().Validate())
	require.NoError(t, c.View().CheckShape(partitions{}))
	assert.ErrorIs(t, c.View().CheckShape(partitions{1}), ErrShapeMismatch)

	c.Clear(h)
	assert.Zero(t, c.NumBuffers())

	// Populate by assignment.
	populated, err := New[float32](t.Context(), h, partitions{2})
	require.NoError(t, err)
	*c = *populated
	assert.Equal(t, 1, c.NumBuffers())
}

func TestNew_AllocationFailure(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 40})
	h := newHandle(t, device.WithResourceController(rc))

	c, err := New[float64](t.Context(), h, partitions{2, 2, 2})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, device.ErrAllocationFailed)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Contains(t, err.Error(), "partition 2")

	require.NoError(t, h.Synchronize(t.Context()))
	assert.Zero(t, rc.MemoryUsage())
}

func TestCheckShape(t *testing.T) {
	h := newHandle(t)

	c, err := New[uint8](t.Context(), h, partitions{1, 2})
	require.NoError(t, err)

	err = c.View().CheckShape(partitions{1, 3})
	require.ErrorIs(t, err, ErrShapeMismatch)

	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Partition)
	assert.Equal(t, int64(3), se.Expected)
	assert.Equal(t, int64(2), se.Actual)

	assert.ErrorIs(t, c.View().CheckShape(partitions{1, 2, 0}), ErrShapeMismatch)
}

func TestFillAndCopy(t *testing.T) {
	h := newHandle(t, device.WithMemoryResource(device.MmapResource{}))

	c, err := New[float32](t.Context(), h, partitions{2, 0, 3})
	require.NoError(t, err)
	defer c.Clear(h)

	require.NoError(t, Fill(t.Context(), h, c.MutableView(), 0.5))
	host, err := CopyToHost(t.Context(), h, c.View())
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.5, 0.5}, {}, {0.5, 0.5, 0.5}}, host)

	in := [][]float32{{1, 2}, nil, {3, 4, 5}}
	require.NoError(t, CopyFromHost(t.Context(), h, c.MutableView(), in))
	host, err = CopyToHost(t.Context(), h, c.View())
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 2}, {}, {3, 4, 5}}, host)

	assert.ErrorIs(t, CopyFromHost(t.Context(), h, c.MutableView(), in[:2]), ErrShapeMismatch)
	assert.ErrorIs(t, CopyFromHost(t.Context(), h, c.MutableView(), [][]float32{{1}, nil, {3, 4, 5}}), ErrShapeMismatch)
}

func sumKernel[T any, A Accessor[T], V EdgeView[T, A]](v V, counts []int64, add func(T)) int64 {
	if IsDummy[V]() {
		return 0
	}
	var visited int64
	for i, n := range counts {
		p := v.Partition(i)
		for e := range n {
			add(p.Value(e))
			visited++
		}
	}
	return visited
}

func TestDummy(t *testing.T) {
	var d Dummy
	dv := d.View()
	assert.Equal(t, DummyView{}, dv)
	assert.Equal(t, NoValue{}, dv.Partition(3).Value(42))

	assert.True(t, IsDummy[DummyView]())
	assert.False(t, IsDummy[ConstView[float32]]())
	assert.False(t, IsDummy[MutView[NoValue]]())

	assert.False(t, HasValue[NoValue]())
	assert.True(t, HasValue[float32]())
	assert.True(t, HasValue[struct{}]())

	// The same kernel runs against a real view and the dummy view.
	h := newHandle(t)
	c, err := New[float32](t.Context(), h, partitions{2, 3})
	require.NoError(t, err)
	require.NoError(t, Fill(t.Context(), h, c.MutableView(), 2))
	require.NoError(t, h.Synchronize(t.Context()))

	var sum float32
	visited := sumKernel[float32, Values[float32, device.ConstIter[float32]]](c.View(), []int64{2, 3}, func(v float32) { sum += v })
	assert.Equal(t, int64(5), visited)
	assert.Equal(t, float32(10), sum)

	calls := 0
	visited = sumKernel[NoValue, DummyValues](dv, []int64{2, 3}, func(NoValue) { calls++ })
	assert.Zero(t, visited)
	assert.Zero(t, calls)
}

func TestDummy_NoAllocation(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		_ = Dummy{}.View().Partition(0).Value(0)
	})
	assert.Zero(t, allocs)
}
