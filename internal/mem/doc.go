// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned heap blocks and typed views over raw blocks, used by
// the device memory resources to hand out edge property storage.
package mem
