// Package resource implements the Controller that governs device resources.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: budget for device buffers (non-blocking, fail-fast)
//   - Workers: slots for per-partition compute kernels (blocking)
//   - Copy bandwidth: token bucket throttling host<->device transfers
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for the hard limit and atomic
// counters for usage tracking. AcquireMemory never blocks; it returns
// ErrMemoryLimitExceeded if the request does not fit:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	})
//
//	if err := rc.AcquireMemory(1 << 20); err != nil {
//	    // allocation fails, the caller decides what to do
//	}
//	defer rc.ReleaseMemory(1 << 20)
//
// # Copy Bandwidth
//
//	rc := resource.NewController(resource.Config{
//	    CopyBytesPerSec: 512 << 20,
//	})
//	if err := rc.AcquireCopy(ctx, n); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
