package device

import (
	"fmt"
	"iter"
)

// Iter is a mutable traversal handle into a Buffer.
//
// Iter is a small comparable value: two handles are equal when they point at
// the same element of the same buffer generation.
type Iter[T any] struct {
	buf *Buffer[T]
	gen uint32
	off int64
}

// ConstIter is a read-only traversal handle into a Buffer.
type ConstIter[T any] struct {
	buf *Buffer[T]
	gen uint32
	off int64
}

// At returns the element i positions past the handle.
// It panics if the handle is stale or i is out of range.
func (it Iter[T]) At(i int64) T {
	return mustData(it.buf, it.gen)[it.off+i]
}

// Set stores v i positions past the handle.
// It panics if the handle is stale or i is out of range.
func (it Iter[T]) Set(i int64, v T) {
	mustData(it.buf, it.gen)[it.off+i] = v
}

// Add returns a handle advanced by n elements.
func (it Iter[T]) Add(n int64) Iter[T] {
	it.off += n
	return it
}

// Offset returns the element offset from the start of the buffer.
func (it Iter[T]) Offset() int64 { return it.off }

// Valid reports whether the handle still refers to live memory.
func (it Iter[T]) Valid() bool { return it.Check() == nil }

// Check returns ErrNilHandle or ErrStaleHandle when the handle cannot be dereferenced.
func (it Iter[T]) Check() error { return check(it.buf, it.gen) }

// Slice returns the n elements starting at the handle.
func (it Iter[T]) Slice(n int64) ([]T, error) {
	return slice(it.buf, it.gen, it.off, n)
}

// Values iterates over the n elements starting at the handle.
func (it Iter[T]) Values(n int64) iter.Seq[T] {
	return it.Const().Values(n)
}

// Const converts the handle to a read-only handle.
func (it Iter[T]) Const() ConstIter[T] {
	return ConstIter[T](it)
}

// At returns the element i positions past the handle.
// It panics if the handle is stale or i is out of range.
func (it ConstIter[T]) At(i int64) T {
	return mustData(it.buf, it.gen)[it.off+i]
}

// Add returns a handle advanced by n elements.
func (it ConstIter[T]) Add(n int64) ConstIter[T] {
	it.off += n
	return it
}

// Offset returns the element offset from the start of the buffer.
func (it ConstIter[T]) Offset() int64 { return it.off }

// Valid reports whether the handle still refers to live memory.
func (it ConstIter[T]) Valid() bool { return it.Check() == nil }

// Check returns ErrNilHandle or ErrStaleHandle when the handle cannot be dereferenced.
func (it ConstIter[T]) Check() error { return check(it.buf, it.gen) }

// Values iterates over the n elements starting at the handle.
// Nothing is yielded if the handle is stale or the range is out of bounds.
func (it ConstIter[T]) Values(n int64) iter.Seq[T] {
	return func(yield func(T) bool) {
		data, err := slice(it.buf, it.gen, it.off, n)
		if err != nil {
			return
		}
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}
}

// CopyTo copies the n elements starting at the handle into dst.
func (it ConstIter[T]) CopyTo(dst []T) error {
	src, err := slice(it.buf, it.gen, it.off, int64(len(dst)))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

func check[T any](b *Buffer[T], gen uint32) error {
	if b == nil {
		return ErrNilHandle
	}
	if b.freed.Load() || b.gen.Load() != gen {
		return ErrStaleHandle
	}
	return nil
}

func slice[T any](b *Buffer[T], gen uint32, off, n int64) ([]T, error) {
	if err := check(b, gen); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if off < 0 || n < 0 || off+n > b.size {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrOutOfRange, off, off+n, b.size)
	}
	data, err := b.view(gen)
	if err != nil {
		return nil, err
	}
	return data[off : off+n : off+n], nil
}

func mustData[T any](b *Buffer[T], gen uint32) []T {
	if b == nil {
		panic(ErrNilHandle)
	}
	data, err := b.view(gen)
	if err != nil {
		panic(err)
	}
	return data
}
