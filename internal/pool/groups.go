// Package pool provides reusable scratch buffers for per-step kernels.
// Uses sync.Pool for automatic memory reuse across walks.
package pool

import "sync"

// Groups buckets walker indices by partition.
// Parts[p] lists the walkers whose current vertex is owned by partition p.
type Groups struct {
	Parts [][]int
}

var groupsPool = sync.Pool{
	New: func() any {
		return &Groups{}
	},
}

// GetGroups retrieves a Groups with n empty partitions from the pool.
func GetGroups(n int) *Groups {
	g := groupsPool.Get().(*Groups)
	g.Reset(n)
	return g
}

// PutGroups returns g to the pool. g must not be used afterwards.
func PutGroups(g *Groups) {
	if g == nil {
		return
	}
	groupsPool.Put(g)
}

// Reset empties every partition and resizes to n partitions, keeping the
// capacity of existing buckets.
func (g *Groups) Reset(n int) {
	if cap(g.Parts) < n {
		parts := make([][]int, n)
		copy(parts, g.Parts[:cap(g.Parts)])
		g.Parts = parts
	}
	g.Parts = g.Parts[:n]
	for i := range g.Parts {
		g.Parts[i] = g.Parts[i][:0]
	}
}

// Add appends walker to partition p.
func (g *Groups) Add(p, walker int) {
	g.Parts[p] = append(g.Parts[p], walker)
}

// Len returns the total number of grouped walkers.
func (g *Groups) Len() int {
	n := 0
	for _, part := range g.Parts {
		n += len(part)
	}
	return n
}
