package device

import (
	"github.com/hupe1980/edgeprop/internal/mem"
	"github.com/hupe1980/edgeprop/internal/mmap"
)

// Block is a raw memory block handed out by a MemoryResource.
type Block struct {
	data  []byte
	token any
}

// NewBlock wraps data as a Block. token is opaque to callers and is handed
// back to the owning MemoryResource on Deallocate.
func NewBlock(data []byte, token any) Block {
	return Block{data: data, token: token}
}

// Bytes returns the block memory.
func (b Block) Bytes() []byte { return b.data }

// Token returns the resource specific token stored with the block.
func (b Block) Token() any { return b.token }

// MemoryResource allocates raw blocks for pointer-free buffer element types.
//
// Blocks must be aligned to at least 8 bytes. Implementations must be safe for
// concurrent use: Allocate runs on the caller's goroutine while Deallocate runs
// on a stream.
type MemoryResource interface {
	Allocate(size int) (Block, error)
	Deallocate(b Block) error
}

// HeapResource allocates 64-byte aligned blocks from the Go heap.
type HeapResource struct{}

// Allocate implements MemoryResource.
func (HeapResource) Allocate(size int) (Block, error) {
	return NewBlock(mem.AllocAligned(size), nil), nil
}

// Deallocate implements MemoryResource. The garbage collector reclaims the block.
func (HeapResource) Deallocate(Block) error { return nil }

// MmapResource allocates page-aligned off-heap blocks from anonymous mappings.
// Each block is its own mapping and is unmapped on Deallocate.
type MmapResource struct {
	// Sequential advises the kernel that blocks are scanned front to back.
	Sequential bool
}

// Allocate implements MemoryResource.
func (r MmapResource) Allocate(size int) (Block, error) {
	m, err := mmap.MapAnon(size)
	if err != nil {
		return Block{}, err
	}
	if r.Sequential {
		_ = m.Advise(mmap.AccessSequential)
	}
	return NewBlock(m.Bytes(), m), nil
}

// Deallocate implements MemoryResource.
func (MmapResource) Deallocate(b Block) error {
	if m, ok := b.token.(*mmap.Mapping); ok {
		return m.Close()
	}
	return nil
}
