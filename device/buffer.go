package device

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/hupe1980/edgeprop/internal/conv"
	"github.com/hupe1980/edgeprop/internal/mem"
)

// Buffer is a contiguous array of n values of type T.
//
// Pointer-free element types are placed in blocks from the handle's
// MemoryResource; element types containing Go pointers always live on the Go
// heap so the garbage collector can see them.
type Buffer[T any] struct {
	data  []T
	size  int64
	bytes int64
	block Block
	owned bool // block came from memory

	memory MemoryResource
	handle *Handle
	gen    atomic.Uint32
	freed  atomic.Bool
}

// Allocate allocates a buffer of n elements.
//
// The memory budget is charged before any memory is obtained; a budget or
// memory resource failure is returned as an *AllocationError. Allocation is
// not cancellable, ctx only scopes logging.
func Allocate[T any](ctx context.Context, h *Handle, n int64) (*Buffer[T], error) {
	if n < 0 {
		return nil, ErrInvalidSize
	}

	start := time.Now()

	var zero T
	bytes, err := conv.MulInt64(n, int64(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, h.allocFailed(ctx, n, 0, start, err)
	}

	if err := h.resources.AcquireMemory(bytes); err != nil {
		return nil, h.allocFailed(ctx, n, bytes, start, err)
	}

	b := &Buffer[T]{
		size:   n,
		bytes:  bytes,
		memory: h.memory,
		handle: h,
	}
	b.gen.Store(1)

	if n > 0 {
		if err := b.obtain(n, bytes); err != nil {
			h.resources.ReleaseMemory(bytes)
			return nil, h.allocFailed(ctx, n, bytes, start, err)
		}
	}

	h.metrics.RecordAlloc(bytes, time.Since(start), nil)
	h.logger.DebugContext(ctx, "buffer allocated",
		"elements", n,
		"bytes", bytes,
	)

	return b, nil
}

func (b *Buffer[T]) obtain(n, bytes int64) error {
	count, err := conv.Int64ToInt(n)
	if err != nil {
		return err
	}

	if !pointerFree[T]() {
		b.data = make([]T, count)
		return nil
	}

	size, err := conv.Int64ToInt(bytes)
	if err != nil {
		return err
	}
	if size == 0 {
		// Zero-sized element type.
		b.data = make([]T, count)
		return nil
	}

	block, err := b.memory.Allocate(size)
	if err != nil {
		return err
	}

	data := mem.Slice[T](block.Bytes(), count)
	if data == nil {
		_ = b.memory.Deallocate(block)
		return ErrOutOfRange
	}

	b.block = block
	b.owned = true
	b.data = data
	return nil
}

func (h *Handle) allocFailed(ctx context.Context, n, bytes int64, start time.Time, cause error) error {
	err := &AllocationError{Elements: n, Bytes: bytes, cause: cause}
	h.metrics.RecordAlloc(bytes, time.Since(start), err)
	h.logger.ErrorContext(ctx, "buffer allocation failed",
		"elements", n,
		"bytes", bytes,
		"error", cause,
	)
	return err
}

// Size returns the number of elements.
func (b *Buffer[T]) Size() int64 { return b.size }

// Bytes returns the number of bytes charged against the memory budget.
func (b *Buffer[T]) Bytes() int64 { return b.bytes }

// Generation returns the buffer's current generation.
func (b *Buffer[T]) Generation() uint32 { return b.gen.Load() }

// Freed reports whether Free has been called.
func (b *Buffer[T]) Freed() bool { return b.freed.Load() }

// Begin returns a mutable handle to the first element.
func (b *Buffer[T]) Begin() Iter[T] {
	return Iter[T]{buf: b, gen: b.gen.Load()}
}

// CBegin returns a read-only handle to the first element.
func (b *Buffer[T]) CBegin() ConstIter[T] {
	return ConstIter[T]{buf: b, gen: b.gen.Load()}
}

// Free releases the buffer. It is idempotent.
//
// Handles become stale immediately. The memory itself is returned in stream
// order on h's stream, after any copy already enqueued against the buffer. If
// the stream is closed the memory is returned synchronously. The budget is
// always credited back to the handle that allocated the buffer.
func (b *Buffer[T]) Free(h *Handle) {
	if b.freed.Swap(true) {
		return
	}

	b.gen.Add(1)
	block, owned, bytes := b.block, b.owned, b.bytes
	owner := b.handle

	if h == nil {
		h = owner
	}

	release := func() error {
		var err error
		if owned {
			err = b.memory.Deallocate(block)
		}
		owner.resources.ReleaseMemory(bytes)
		owner.metrics.RecordFree(bytes)
		return err
	}

	if err := h.stream.Enqueue(context.Background(), release); err != nil {
		_ = release()
	}
}

// view returns the live slice, checking the handle generation.
func (b *Buffer[T]) view(gen uint32) ([]T, error) {
	if b.freed.Load() || b.gen.Load() != gen {
		return nil, ErrStaleHandle
	}
	return b.data, nil
}

var pointerFreeCache sync.Map // reflect.Type -> bool

func pointerFree[T any]() bool {
	t := reflect.TypeFor[T]()
	if v, ok := pointerFreeCache.Load(t); ok {
		return v.(bool)
	}
	free := typePointerFree(t)
	pointerFreeCache.Store(t, free)
	return free
}

func typePointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || typePointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !typePointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
