package property

import (
	"context"
	"fmt"

	"github.com/hupe1980/edgeprop/device"
)

// Fill enqueues writing value into every partition of v on h's stream.
func Fill[T any](ctx context.Context, h *device.Handle, v MutView[T], value T) error {
	for i, first := range v.valueFirsts {
		if err := device.Fill(ctx, h, first, v.edgeCounts[i], value); err != nil {
			return fmt.Errorf("property: partition %d: %w", i, err)
		}
	}
	return nil
}

// CopyFromHost enqueues copying host[i] into partition i of v.
//
// host must have one slice per partition, each exactly as long as the
// partition. The host slices must not change until the stream is synchronized.
func CopyFromHost[T any](ctx context.Context, h *device.Handle, v MutView[T], host [][]T) error {
	if len(host) != len(v.edgeCounts) {
		return &ShapeError{Partition: -1, Expected: int64(len(v.edgeCounts)), Actual: int64(len(host))}
	}
	for i, values := range host {
		if int64(len(values)) != v.edgeCounts[i] {
			return &ShapeError{Partition: i, Expected: v.edgeCounts[i], Actual: int64(len(values))}
		}
	}
	for i, values := range host {
		if err := device.CopyFromHost(ctx, h, v.valueFirsts[i], values); err != nil {
			return fmt.Errorf("property: partition %d: %w", i, err)
		}
	}
	return nil
}

// CopyToHost copies every partition of v to host memory and synchronizes h's
// stream before returning.
func CopyToHost[T any](ctx context.Context, h *device.Handle, v ConstView[T]) ([][]T, error) {
	out := make([][]T, len(v.edgeCounts))
	for i, first := range v.valueFirsts {
		out[i] = make([]T, v.edgeCounts[i])
		if err := device.CopyToHost(ctx, h, out[i], first); err != nil {
			return nil, fmt.Errorf("property: partition %d: %w", i, err)
		}
	}
	if err := h.Synchronize(ctx); err != nil {
		return nil, err
	}
	return out, nil
}
