package edgeprop

import (
	"log/slog"

	"github.com/hupe1980/edgeprop/device"
)

type options struct {
	numWorkers       int
	streamDepth      int
	memoryLimit      int64
	copyBytesPerSec  int64
	memory           device.MemoryResource
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Runtime.
type Option func(*options)

// WithNumWorkers sets the number of workers. Graphs created by the runtime
// are split into one edge partition per worker.
//
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithNumWorkers(n int) Option {
	return func(o *options) {
		o.numWorkers = n
	}
}

// WithStreamDepth sets how many operations may be queued on the runtime's
// stream before enqueueing blocks.
func WithStreamDepth(depth int) Option {
	return func(o *options) {
		o.streamDepth = depth
	}
}

// WithMemoryLimit caps the bytes held by all edge property buffers.
// Allocations beyond the limit fail immediately with CodeAllocation.
//
// If bytes <= 0, memory is tracked but not limited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithCopyBandwidth throttles host transfers to bytesPerSec.
//
// If bytesPerSec <= 0, transfers are not throttled.
func WithCopyBandwidth(bytesPerSec int64) Option {
	return func(o *options) {
		o.copyBytesPerSec = bytesPerSec
	}
}

// WithMmap places pointer-free property buffers in anonymous memory mappings
// outside the Go heap. sequential advises the kernel of front-to-back scans.
func WithMmap(sequential bool) Option {
	return func(o *options) {
		o.memory = device.MmapResource{Sequential: sequential}
	}
}

// WithMemoryResource sets a custom memory resource for property buffers.
func WithMemoryResource(mr device.MemoryResource) Option {
	return func(o *options) {
		o.memory = mr
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &edgeprop.BasicMetricsCollector{}
//	rt := edgeprop.New(edgeprop.WithMetricsCollector(metrics))
//	// ... use rt ...
//	stats := metrics.GetStats()
//	fmt.Printf("Walks: %d, Live bytes: %d\n", stats.WalkCount, stats.LiveBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		memory:           device.HeapResource{},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.memory == nil {
		o.memory = device.HeapResource{}
	}
	return o
}
