// Package prommetrics exports edgeprop metrics to Prometheus.
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/edgeprop"
	"github.com/hupe1980/edgeprop/device"
)

const (
	defaultNamespace = "edgeprop"

	statusSuccess = "success"
	statusError   = "error"
)

var durationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10}

type options struct {
	namespace string
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace sets the metric namespace. Defaults to "edgeprop".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// Collector implements edgeprop.MetricsCollector on Prometheus metrics.
type Collector struct {
	allocs        *prometheus.CounterVec
	allocBytes    prometheus.Counter
	allocDuration prometheus.Histogram
	liveBytes     prometheus.Gauge
	frees         prometheus.Counter

	copies       *prometheus.CounterVec
	copyBytes    *prometheus.CounterVec
	copyDuration *prometheus.HistogramVec

	graphs        *prometheus.CounterVec
	graphEdges    prometheus.Histogram
	graphDuration prometheus.Histogram

	walks        *prometheus.CounterVec
	walkers      *prometheus.CounterVec
	walkDuration *prometheus.HistogramVec
}

var _ edgeprop.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, optFns ...Option) *Collector {
	o := options{namespace: defaultNamespace}
	for _, fn := range optFns {
		fn(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		allocs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "allocations_total",
			Help:      "Buffer allocations by status",
		}, []string{"status"}),
		allocBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "allocated_bytes_total",
			Help:      "Bytes allocated for buffers",
		}),
		allocDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "allocation_duration_seconds",
			Help:      "Time to allocate a buffer",
			Buckets:   durationBuckets,
		}),
		liveBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "live_bytes",
			Help:      "Bytes held by buffers that have not been freed",
		}),
		frees: f.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "frees_total",
			Help:      "Buffers returned to their memory resource",
		}),
		copies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "copies_total",
			Help:      "Host transfers by direction",
		}, []string{"direction"}),
		copyBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "copied_bytes_total",
			Help:      "Bytes transferred by direction",
		}, []string{"direction"}),
		copyDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "device",
			Name:      "copy_duration_seconds",
			Help:      "Time to execute a transfer on a stream",
			Buckets:   durationBuckets,
		}, []string{"direction"}),
		graphs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "graph",
			Name:      "created_total",
			Help:      "Graph constructions by status",
		}, []string{"status"}),
		graphEdges: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "graph",
			Name:      "edges",
			Help:      "Edge count of created graphs",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 8),
		}),
		graphDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "graph",
			Name:      "create_duration_seconds",
			Help:      "Time to build a graph",
			Buckets:   durationBuckets,
		}),
		walks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "walk",
			Name:      "runs_total",
			Help:      "Random walk runs by kind and status",
		}, []string{"kind", "status"}),
		walkers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "walk",
			Name:      "walkers_total",
			Help:      "Walkers of successful runs by kind",
		}, []string{"kind"}),
		walkDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "walk",
			Name:      "duration_seconds",
			Help:      "Time to run random walks",
			Buckets:   durationBuckets,
		}, []string{"kind"}),
	}
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

// RecordAlloc implements device.MetricsCollector.
func (c *Collector) RecordAlloc(bytes int64, duration time.Duration, err error) {
	c.allocs.WithLabelValues(status(err)).Inc()
	c.allocDuration.Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.allocBytes.Add(float64(bytes))
	c.liveBytes.Add(float64(bytes))
}

// RecordFree implements device.MetricsCollector.
func (c *Collector) RecordFree(bytes int64) {
	c.frees.Inc()
	c.liveBytes.Sub(float64(bytes))
}

// RecordCopy implements device.MetricsCollector.
func (c *Collector) RecordCopy(direction device.CopyDirection, bytes int64, duration time.Duration) {
	d := direction.String()
	c.copies.WithLabelValues(d).Inc()
	c.copyBytes.WithLabelValues(d).Add(float64(bytes))
	c.copyDuration.WithLabelValues(d).Observe(duration.Seconds())
}

// RecordGraphCreate implements edgeprop.MetricsCollector.
func (c *Collector) RecordGraphCreate(_ int32, edges int64, duration time.Duration, err error) {
	c.graphs.WithLabelValues(status(err)).Inc()
	c.graphDuration.Observe(duration.Seconds())
	if err == nil {
		c.graphEdges.Observe(float64(edges))
	}
}

// RecordWalk implements edgeprop.MetricsCollector.
func (c *Collector) RecordWalk(kind string, walkers int, duration time.Duration, err error) {
	c.walks.WithLabelValues(kind, status(err)).Inc()
	c.walkDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err == nil {
		c.walkers.WithLabelValues(kind).Add(float64(walkers))
	}
}
