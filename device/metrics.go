package device

import "time"

// CopyDirection identifies the direction of a host transfer.
type CopyDirection int

const (
	// HostToDevice copies host memory into a buffer.
	HostToDevice CopyDirection = iota
	// DeviceToHost copies buffer contents into host memory.
	DeviceToHost
	// DeviceFill writes a constant into a buffer range.
	DeviceFill
)

func (d CopyDirection) String() string {
	switch d {
	case HostToDevice:
		return "h2d"
	case DeviceToHost:
		return "d2h"
	case DeviceFill:
		return "fill"
	default:
		return "unknown"
	}
}

// MetricsCollector receives device level events.
type MetricsCollector interface {
	// RecordAlloc is called after every allocation attempt.
	RecordAlloc(bytes int64, duration time.Duration, err error)

	// RecordFree is called when a buffer's memory is returned.
	RecordFree(bytes int64)

	// RecordCopy is called after a transfer executed on a stream.
	RecordCopy(direction CopyDirection, bytes int64, duration time.Duration)
}

// NoopMetricsCollector discards all events.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int64, time.Duration, error)        {}
func (NoopMetricsCollector) RecordFree(int64)                               {}
func (NoopMetricsCollector) RecordCopy(CopyDirection, int64, time.Duration) {}
