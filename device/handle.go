package device

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	"github.com/hupe1980/edgeprop/resource"
)

type options struct {
	numWorkers  int
	streamDepth int
	resources   *resource.Controller
	memory      MemoryResource
	logger      *slog.Logger
	metrics     MetricsCollector
}

// Option configures a Handle.
type Option func(*options)

// WithNumWorkers sets the number of workers, and with it the number of edge
// partitions graphs built on this handle are split into.
//
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithNumWorkers(n int) Option {
	return func(o *options) {
		o.numWorkers = n
	}
}

// WithStreamDepth sets the queue depth of the handle's stream.
func WithStreamDepth(depth int) Option {
	return func(o *options) {
		o.streamDepth = depth
	}
}

// WithResourceController sets the controller used for memory, worker and copy limits.
//
// By default an unlimited controller with one worker slot per worker is used.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithMemoryResource sets the memory resource for pointer-free buffers.
// Defaults to HeapResource.
func WithMemoryResource(mr MemoryResource) Option {
	return func(o *options) {
		if mr == nil {
			mr = HeapResource{}
		}
		o.memory = mr
	}
}

// WithLogger sets the structured logger. Pass nil to discard logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector sets the collector for device events.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// Handle is the execution context for allocations and kernels.
//
// A Handle is safe for concurrent use. It owns its stream; call Close when done.
type Handle struct {
	id         string
	numWorkers int
	stream     *Stream
	resources  *resource.Controller
	memory     MemoryResource
	logger     *slog.Logger
	metrics    MetricsCollector
}

// NewHandle creates a Handle and starts its stream.
func NewHandle(optFns ...Option) *Handle {
	opts := options{
		memory:  HeapResource{},
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.numWorkers <= 0 {
		opts.numWorkers = runtime.GOMAXPROCS(0)
	}
	if opts.resources == nil {
		opts.resources = resource.NewController(resource.Config{MaxWorkers: int64(opts.numWorkers)})
	}

	id := uuid.NewString()[:8]

	logger := opts.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Handle{
		id:         id,
		numWorkers: opts.numWorkers,
		stream:     NewStream(opts.streamDepth),
		resources:  opts.resources,
		memory:     opts.memory,
		logger:     logger.With("handle", id),
		metrics:    opts.metrics,
	}
}

// ID returns the short session identifier attached to every log line.
func (h *Handle) ID() string { return h.id }

// NumWorkers returns the number of workers (and edge partitions).
func (h *Handle) NumWorkers() int { return h.numWorkers }

// Stream returns the handle's current stream.
func (h *Handle) Stream() *Stream { return h.stream }

// Resources returns the resource controller.
func (h *Handle) Resources() *resource.Controller { return h.resources }

// MemoryResource returns the memory resource used for pointer-free buffers.
func (h *Handle) MemoryResource() MemoryResource { return h.memory }

// Logger returns the handle's logger.
func (h *Handle) Logger() *slog.Logger { return h.logger }

// Metrics returns the handle's metrics collector.
func (h *Handle) Metrics() MetricsCollector { return h.metrics }

// Synchronize waits for all work enqueued on the handle's stream.
func (h *Handle) Synchronize(ctx context.Context) error {
	return h.stream.Synchronize(ctx)
}

// Close drains and stops the stream.
func (h *Handle) Close() error {
	return h.stream.Close()
}
