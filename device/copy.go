package device

import (
	"context"
	"time"
	"unsafe"
)

// CopyFromHost enqueues a copy of src into the buffer range starting at dst.
//
// The destination is validated immediately; the copy itself runs in stream
// order. ctx only bounds the enqueue; once accepted the copy is not cancelled.
// src must not be modified until the stream is synchronized.
func CopyFromHost[T any](ctx context.Context, h *Handle, dst Iter[T], src []T) error {
	data, err := dst.Slice(int64(len(src)))
	if err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}

	bytes := byteSize(src)
	opCtx := context.WithoutCancel(ctx)
	return h.stream.Enqueue(ctx, func() error {
		start := time.Now()
		if err := h.resources.AcquireCopy(opCtx, bytes); err != nil {
			return err
		}
		copy(data, src)
		h.metrics.RecordCopy(HostToDevice, int64(bytes), time.Since(start))
		return nil
	})
}

// CopyToHost enqueues a copy of len(dst) elements starting at src into dst.
// dst is filled once the stream is synchronized.
func CopyToHost[T any](ctx context.Context, h *Handle, dst []T, src ConstIter[T]) error {
	data, err := slice(src.buf, src.gen, src.off, int64(len(dst)))
	if err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}

	bytes := byteSize(dst)
	opCtx := context.WithoutCancel(ctx)
	return h.stream.Enqueue(ctx, func() error {
		start := time.Now()
		if err := h.resources.AcquireCopy(opCtx, bytes); err != nil {
			return err
		}
		copy(dst, data)
		h.metrics.RecordCopy(DeviceToHost, int64(bytes), time.Since(start))
		return nil
	})
}

// Fill enqueues writing v into the n elements starting at dst.
func Fill[T any](ctx context.Context, h *Handle, dst Iter[T], n int64, v T) error {
	data, err := dst.Slice(n)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	return h.stream.Enqueue(ctx, func() error {
		start := time.Now()
		for i := range data {
			data[i] = v
		}
		h.metrics.RecordCopy(DeviceFill, int64(byteSize(data)), time.Since(start))
		return nil
	})
}

func byteSize[T any](s []T) int {
	var zero T
	return len(s) * int(unsafe.Sizeof(zero))
}
