package edgeprop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/edgeprop/device"
	"github.com/hupe1980/edgeprop/graph"
	"github.com/hupe1980/edgeprop/property"
	"github.com/hupe1980/edgeprop/resource"
	"github.com/hupe1980/edgeprop/walk"
)

var (
	sampleSrc = []int32{0, 1, 1, 2, 2, 2, 3, 4}
	sampleDst = []int32{1, 3, 4, 0, 1, 3, 5, 5}
)

func newRuntime(t *testing.T, optFns ...Option) *Runtime {
	t.Helper()
	rt := New(optFns...)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

// sampleLists distributes the sample edges over one list per worker.
func sampleLists(workers int, weight func(src, dst int32) float32) []graph.EdgeList {
	lists := make([]graph.EdgeList, workers)
	for i := range sampleSrc {
		l := &lists[i%workers]
		l.Src = append(l.Src, sampleSrc[i])
		l.Dst = append(l.Dst, sampleDst[i])
		l.Weights = append(l.Weights, weight(sampleSrc[i], sampleDst[i]))
	}
	return lists
}

func unitWeight(int32, int32) float32 { return 1 }

func TestRuntime_EdgeWeightContainer(t *testing.T) {
	for _, workers := range []int{1, 2, 4} {
		rt := newRuntime(t, WithNumWorkers(workers))

		g, err := rt.CreateGraph(t.Context(), sampleLists(workers, unitWeight))
		require.NoError(t, err)

		c, err := NewEdgeProperty[float32](t.Context(), rt, g)
		require.NoError(t, err)

		assert.Equal(t, workers, c.NumBuffers())
		assert.Equal(t, int64(8), c.Size())

		c.Clear(rt.Handle())
		assert.Equal(t, 0, c.NumBuffers())
	}
}

func TestRuntime_WalksOnTransposedGraphFail(t *testing.T) {
	rt := newRuntime(t, WithNumWorkers(2))

	g, err := rt.CreateGraph(t.Context(), sampleLists(2, unitWeight), graph.WithStoreTransposed(true))
	require.NoError(t, err)

	starts := []int32{2, 2}
	runs := map[string]func() (*walk.Result, error){
		"uniform": func() (*walk.Result, error) { return rt.UniformRandomWalks(t.Context(), g, starts, 3) },
		"biased":  func() (*walk.Result, error) { return rt.BiasedRandomWalks(t.Context(), g, starts, 3) },
		"node2vec": func() (*walk.Result, error) {
			return rt.Node2VecRandomWalks(t.Context(), g, starts, 3, 1, 1)
		},
	}

	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			res, err := run()
			assert.Nil(t, res)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, CodeUnsupported, e.Code)
			assert.ErrorIs(t, err, ErrUnsupported)
			assert.ErrorIs(t, err, walk.ErrUnsupported)
		})
	}
}

func TestRuntime_WalksFollowEdges(t *testing.T) {
	weight := func(src, dst int32) float32 { return float32(src) + float32(dst)/10 }

	rt := newRuntime(t, WithNumWorkers(3))
	g, err := rt.CreateGraph(t.Context(), sampleLists(3, weight))
	require.NoError(t, err)

	edges := make(map[[2]int32]float32)
	for i := range sampleSrc {
		edges[[2]int32{sampleSrc[i], sampleDst[i]}] = weight(sampleSrc[i], sampleDst[i])
	}

	const maxDepth = 4
	starts := []int32{2, 2, 0, 1}

	results := []*walk.Result{}
	for _, run := range []func() (*walk.Result, error){
		func() (*walk.Result, error) { return rt.UniformRandomWalks(t.Context(), g, starts, maxDepth) },
		func() (*walk.Result, error) { return rt.BiasedRandomWalks(t.Context(), g, starts, maxDepth) },
		func() (*walk.Result, error) { return rt.Node2VecRandomWalks(t.Context(), g, starts, maxDepth, 2, 0.5) },
	} {
		res, err := run()
		require.NoError(t, err)
		results = append(results, res)
	}

	for _, res := range results {
		require.Len(t, res.Paths, len(starts)*(maxDepth+1))
		require.Len(t, res.Weights, len(starts)*maxDepth)

		for i := range starts {
			path := res.Path(i)
			for k := range maxDepth {
				if path[k+1] == graph.InvalidVertex {
					break
				}
				w, ok := edges[[2]int32{path[k], path[k+1]}]
				require.True(t, ok)
				assert.Equal(t, w, res.Weights[i*maxDepth+k])
			}
		}
	}
}

func TestRuntime_AllocationFailure(t *testing.T) {
	rt := newRuntime(t, WithNumWorkers(2), WithMemoryLimit(16))

	_, err := rt.CreateGraph(t.Context(), sampleLists(2, unitWeight))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeAllocation, e.Code)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.ErrorIs(t, err, device.ErrAllocationFailed)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
}

func TestRuntime_StaleProperty(t *testing.T) {
	rt := newRuntime(t, WithNumWorkers(2))

	g, err := rt.CreateGraph(t.Context(), sampleLists(2, unitWeight))
	require.NoError(t, err)

	c, err := NewEdgeProperty[int64](t.Context(), rt, g)
	require.NoError(t, err)

	v := c.View()
	c.Clear(rt.Handle())

	err = translateError(v.Validate())
	assert.ErrorIs(t, err, ErrStaleHandle)

	g.Clear(rt.Handle())
	_, err = NewEdgeProperty[int64](t.Context(), rt, g)
	assert.ErrorIs(t, err, ErrStaleHandle)
	_, err = rt.UniformRandomWalks(t.Context(), g, []int32{0}, 2)
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestRuntime_Mmap(t *testing.T) {
	rt := newRuntime(t, WithNumWorkers(2), WithMmap(true))

	g, err := rt.CreateGraph(t.Context(), sampleLists(2, unitWeight))
	require.NoError(t, err)

	c, err := NewEdgeProperty[int32](t.Context(), rt, g)
	require.NoError(t, err)
	t.Cleanup(func() { c.Clear(rt.Handle()) })

	require.NoError(t, property.Fill(t.Context(), rt.Handle(), c.MutableView(), 7))
	values, err := property.CopyToHost(t.Context(), rt.Handle(), c.View())
	require.NoError(t, err)

	var n int
	for _, part := range values {
		for _, v := range part {
			assert.Equal(t, int32(7), v)
			n++
		}
	}
	assert.Equal(t, 8, n)
}

func TestRuntime_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	rt := newRuntime(t, WithNumWorkers(2), WithMetricsCollector(metrics))

	g, err := rt.CreateGraph(t.Context(), sampleLists(2, unitWeight))
	require.NoError(t, err)

	_, err = rt.UniformRandomWalks(t.Context(), g, []int32{0, 1, 2}, 3)
	require.NoError(t, err)
	_, err = rt.UniformRandomWalks(t.Context(), g, []int32{-1}, 3)
	require.Error(t, err)

	g.Clear(rt.Handle())
	require.NoError(t, rt.Synchronize(t.Context()))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.GraphCount)
	assert.Equal(t, int64(8), stats.GraphEdges)
	assert.Equal(t, int64(2), stats.WalkCount)
	assert.Equal(t, int64(1), stats.WalkErrors)
	assert.Equal(t, int64(3), stats.WalkWalkers)
	assert.Equal(t, int64(2), stats.AllocCount)
	assert.Equal(t, int64(32), stats.AllocBytes)
	assert.Equal(t, int64(2), stats.FreeCount)
	assert.Equal(t, int64(0), stats.LiveBytes)
	assert.Equal(t, int64(2), stats.CopyToDevice)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		err  error
		code Code
	}{
		{graph.ErrInvalidInput, CodeInvalidInput},
		{walk.ErrInvalidInput, CodeInvalidInput},
		{property.ErrShapeMismatch, CodeInvalidInput},
		{walk.ErrUnsupported, CodeUnsupported},
		{&device.AllocationError{Elements: 1, Bytes: 4}, CodeAllocation},
		{device.ErrStaleHandle, CodeStaleHandle},
		{graph.ErrCleared, CodeStaleHandle},
		{errors.New("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := translateError(tt.err)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.code, e.Code)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, tt.code.sentinel())
			assert.Contains(t, err.Error(), tt.code.String())

			assert.Same(t, e, translateError(err))
		})
	}

	assert.NoError(t, translateError(nil))
}
