// Package device models the execution context that edge property storage is
// allocated against.
//
// # Overview
//
// A Handle bundles everything an allocation or a kernel launch needs:
//
//   - a Stream, a FIFO executor onto which copies, fills and deallocations are enqueued
//   - a resource.Controller enforcing the memory budget, worker slots and copy bandwidth
//   - a MemoryResource handing out raw blocks (Go heap or off-heap mappings)
//   - a structured logger and a MetricsCollector
//
// # Buffers and Traversal Handles
//
// Allocate returns a Buffer[T] sized to an exact element count. Buffers are
// traversed through Iter[T] (mutable) and ConstIter[T] (read-only) handles,
// which are small comparable values safe to copy into kernels:
//
//	buf, err := device.Allocate[float32](ctx, h, 1024)
//	if err != nil { ... }
//	it := buf.Begin()
//	it.Set(0, 1.5)
//	_ = device.Fill(ctx, h, it.Add(1), 1023, 0.5)
//	_ = h.Synchronize(ctx)
//
// # Stream Ordering
//
// Allocation is synchronous and fails fast. Copies, fills and deallocations are
// enqueued on the handle's stream and may still be in flight when the call
// returns; Synchronize waits for them and reports the first failure.
//
// # Liveness
//
// Every buffer carries a generation counter. Handles capture the generation
// at creation; once the buffer is freed the generation moves on and any
// dereference through an old handle panics with ErrStaleHandle instead of
// touching released memory.
package device
