// Package mmap provides anonymous memory mappings used as off-heap device blocks.
//
// # Overview
//
// Edge property buffers can be large (one value per edge of a partition). Backing
// them with anonymous mappings keeps the bulk of the data outside the Go garbage
// collector's control and returns the pages to the OS as soon as a block is
// deallocated.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//	_ = m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) for hints
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT (Advise is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by an atomic flag. Callers must ensure no
// goroutine touches the slice returned by Bytes after Close returns.
package mmap
