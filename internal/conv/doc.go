// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent overflow when converting
// between edge counts (int64), Go slice lengths (int) and vertex identifiers
// (int32).
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
