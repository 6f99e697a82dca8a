package edgeprop

import (
	"context"
	"runtime"
	"time"

	"github.com/hupe1980/edgeprop/device"
	"github.com/hupe1980/edgeprop/graph"
	"github.com/hupe1980/edgeprop/property"
	"github.com/hupe1980/edgeprop/resource"
	"github.com/hupe1980/edgeprop/walk"
)

// Runtime owns an execution context (device handle, stream and resource
// budget) and runs graph operations on it.
//
// A Runtime is safe for concurrent use. Errors are returned as *Error.
type Runtime struct {
	handle  *device.Handle
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Runtime and starts its stream. Call Close when done.
func New(optFns ...Option) *Runtime {
	o := applyOptions(optFns)

	numWorkers := o.numWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: o.memoryLimit,
		MaxWorkers:       int64(numWorkers),
		CopyBytesPerSec:  o.copyBytesPerSec,
	})

	h := device.NewHandle(
		device.WithNumWorkers(numWorkers),
		device.WithStreamDepth(o.streamDepth),
		device.WithResourceController(rc),
		device.WithMemoryResource(o.memory),
		device.WithLogger(o.logger.Logger),
		device.WithMetricsCollector(o.metricsCollector),
	)

	return &Runtime{
		handle:  h,
		logger:  &Logger{Logger: o.logger.With("handle", h.ID())},
		metrics: o.metricsCollector,
	}
}

// Handle returns the runtime's device handle.
func (r *Runtime) Handle() *device.Handle { return r.handle }

// Resources returns the runtime's resource controller.
func (r *Runtime) Resources() *resource.Controller { return r.handle.Resources() }

// Synchronize waits for all work enqueued on the runtime's stream.
func (r *Runtime) Synchronize(ctx context.Context) error {
	return translateError(r.handle.Synchronize(ctx))
}

// Close drains and stops the runtime's stream.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	return translateError(r.handle.Close())
}

// CreateGraph builds a graph with one edge partition per worker from
// per-worker edge lists.
func (r *Runtime) CreateGraph(ctx context.Context, lists []graph.EdgeList, optFns ...graph.Option) (*graph.Graph, error) {
	start := time.Now()

	g, err := graph.New(ctx, r.handle, lists, optFns...)
	err = translateError(err)

	var (
		vertices int32
		edges    int64
	)
	if g != nil {
		vertices, edges = g.NumberOfVertices(), g.NumberOfEdges()
	}

	d := time.Since(start)
	r.metrics.RecordGraphCreate(vertices, edges, d, err)
	r.logger.LogGraphCreate(ctx, vertices, edges, d, err)

	if err != nil {
		return nil, err
	}
	return g, nil
}

// NewEdgeProperty allocates an edge property container sized from g.
// Values are unspecified until written.
func NewEdgeProperty[T any](ctx context.Context, r *Runtime, g *graph.Graph) (*property.Container[T], error) {
	if g.Cleared() {
		return nil, translateError(graph.ErrCleared)
	}
	c, err := property.New[T](ctx, r.handle, g.View())
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// UniformRandomWalks runs uniform random walks of maxDepth steps.
func (r *Runtime) UniformRandomWalks(ctx context.Context, g *graph.Graph, starts []int32, maxDepth int, optFns ...walk.Option) (*walk.Result, error) {
	return r.walk(ctx, walk.KindUniform, len(starts), maxDepth, func() (*walk.Result, error) {
		return walk.Uniform(ctx, r.handle, g, starts, maxDepth, optFns...)
	})
}

// BiasedRandomWalks runs weight-biased random walks of maxDepth steps.
func (r *Runtime) BiasedRandomWalks(ctx context.Context, g *graph.Graph, starts []int32, maxDepth int, optFns ...walk.Option) (*walk.Result, error) {
	return r.walk(ctx, walk.KindBiased, len(starts), maxDepth, func() (*walk.Result, error) {
		return walk.Biased(ctx, r.handle, g, starts, maxDepth, optFns...)
	})
}

// Node2VecRandomWalks runs node2vec random walks of maxDepth steps with
// return parameter p and in-out parameter q.
func (r *Runtime) Node2VecRandomWalks(ctx context.Context, g *graph.Graph, starts []int32, maxDepth int, p, q float64, optFns ...walk.Option) (*walk.Result, error) {
	return r.walk(ctx, walk.KindNode2Vec, len(starts), maxDepth, func() (*walk.Result, error) {
		return walk.Node2Vec(ctx, r.handle, g, starts, maxDepth, p, q, optFns...)
	})
}

func (r *Runtime) walk(ctx context.Context, kind walk.Kind, walkers, maxDepth int, fn func() (*walk.Result, error)) (*walk.Result, error) {
	start := time.Now()

	res, err := fn()
	err = translateError(err)

	d := time.Since(start)
	r.metrics.RecordWalk(kind.String(), walkers, d, err)
	r.logger.LogWalk(ctx, kind.String(), walkers, maxDepth, d, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}
