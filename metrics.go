package edgeprop

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/edgeprop/device"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
//
// Device level events (allocations, frees, copies) are forwarded to the
// embedded device.MetricsCollector.
type MetricsCollector interface {
	device.MetricsCollector

	// RecordGraphCreate is called after each graph construction.
	RecordGraphCreate(vertices int32, edges int64, duration time.Duration, err error)

	// RecordWalk is called after each random walk run.
	// kind is the walk strategy, walkers the number of start vertices.
	RecordWalk(kind string, walkers int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct {
	device.NoopMetricsCollector
}

func (NoopMetricsCollector) RecordGraphCreate(int32, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordWalk(string, int, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount        atomic.Int64
	AllocErrors       atomic.Int64
	AllocBytes        atomic.Int64
	AllocTotalNanos   atomic.Int64
	FreeCount         atomic.Int64
	FreeBytes         atomic.Int64
	CopyCount         atomic.Int64
	CopyBytes         atomic.Int64
	CopyTotalNanos    atomic.Int64
	CopyToDeviceCount atomic.Int64
	CopyToHostCount   atomic.Int64
	CopyFillCount     atomic.Int64
	GraphCount        atomic.Int64
	GraphErrors       atomic.Int64
	GraphEdges        atomic.Int64
	GraphTotalNanos   atomic.Int64
	WalkCount         atomic.Int64
	WalkErrors        atomic.Int64
	WalkWalkers       atomic.Int64
	WalkTotalNanos    atomic.Int64
}

// RecordAlloc implements device.MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(bytes int64, duration time.Duration, err error) {
	b.AllocCount.Add(1)
	b.AllocTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocBytes.Add(bytes)
}

// RecordFree implements device.MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(bytes int64) {
	b.FreeCount.Add(1)
	b.FreeBytes.Add(bytes)
}

// RecordCopy implements device.MetricsCollector.
func (b *BasicMetricsCollector) RecordCopy(direction device.CopyDirection, bytes int64, duration time.Duration) {
	b.CopyCount.Add(1)
	b.CopyBytes.Add(bytes)
	b.CopyTotalNanos.Add(duration.Nanoseconds())
	switch direction {
	case device.HostToDevice:
		b.CopyToDeviceCount.Add(1)
	case device.DeviceToHost:
		b.CopyToHostCount.Add(1)
	case device.DeviceFill:
		b.CopyFillCount.Add(1)
	}
}

// RecordGraphCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGraphCreate(_ int32, edges int64, duration time.Duration, err error) {
	b.GraphCount.Add(1)
	b.GraphTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GraphErrors.Add(1)
		return
	}
	b.GraphEdges.Add(edges)
}

// RecordWalk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWalk(_ string, walkers int, duration time.Duration, err error) {
	b.WalkCount.Add(1)
	b.WalkTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WalkErrors.Add(1)
		return
	}
	b.WalkWalkers.Add(int64(walkers))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocCount:    b.AllocCount.Load(),
		AllocErrors:   b.AllocErrors.Load(),
		AllocBytes:    b.AllocBytes.Load(),
		AllocAvgNanos: avg(b.AllocTotalNanos.Load(), b.AllocCount.Load()),
		FreeCount:     b.FreeCount.Load(),
		FreeBytes:     b.FreeBytes.Load(),
		LiveBytes:     b.AllocBytes.Load() - b.FreeBytes.Load(),
		CopyCount:     b.CopyCount.Load(),
		CopyBytes:     b.CopyBytes.Load(),
		CopyAvgNanos:  avg(b.CopyTotalNanos.Load(), b.CopyCount.Load()),
		CopyToDevice:  b.CopyToDeviceCount.Load(),
		CopyToHost:    b.CopyToHostCount.Load(),
		Fills:         b.CopyFillCount.Load(),
		GraphCount:    b.GraphCount.Load(),
		GraphErrors:   b.GraphErrors.Load(),
		GraphEdges:    b.GraphEdges.Load(),
		GraphAvgNanos: avg(b.GraphTotalNanos.Load(), b.GraphCount.Load()),
		WalkCount:     b.WalkCount.Load(),
		WalkErrors:    b.WalkErrors.Load(),
		WalkWalkers:   b.WalkWalkers.Load(),
		WalkAvgNanos:  avg(b.WalkTotalNanos.Load(), b.WalkCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocCount    int64
	AllocErrors   int64
	AllocBytes    int64
	AllocAvgNanos int64
	FreeCount     int64
	FreeBytes     int64
	LiveBytes     int64
	CopyCount     int64
	CopyBytes     int64
	CopyAvgNanos  int64
	CopyToDevice  int64
	CopyToHost    int64
	Fills         int64
	GraphCount    int64
	GraphErrors   int64
	GraphEdges    int64
	GraphAvgNanos int64
	WalkCount     int64
	WalkErrors    int64
	WalkWalkers   int64
	WalkAvgNanos  int64
}
