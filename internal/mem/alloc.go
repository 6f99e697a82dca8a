package mem

import (
	"unsafe"
)

// Alignment is the default block alignment (64 bytes, one cache line).
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// Slice reinterprets the first n*sizeof(T) bytes of b as a []T.
//
// T must not contain Go pointers when b lives outside the Go heap, and b must
// be suitably aligned for T. Returns nil if n is zero or b is too small.
func Slice[T any](b []byte, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	if uintptr(len(b)) < uintptr(n)*unsafe.Sizeof(zero) {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n) //nolint:gosec // unsafe is required for typed views
}
