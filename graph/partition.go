package graph

import (
	"slices"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// localEdge is an edge in partition-local (major, minor) form.
type localEdge struct {
	major  int32
	minor  int32
	weight float32
	seq    int64 // input order, for stable multi-edge resolution
}

// edgePartition is the compressed sparse row of one partition.
type edgePartition struct {
	majors    *roaring.Bitmap
	rowMajors []int32
	offsets   []int64
	minors    []int32
}

// buildPartition sorts edges by (major, minor, input order) and compresses them.
// It returns the weights in the final edge order.
func buildPartition(edges []localEdge, o options) (*edgePartition, []float32) {
	slices.SortFunc(edges, func(a, b localEdge) int {
		switch {
		case a.major != b.major:
			return int(a.major) - int(b.major)
		case a.minor != b.minor:
			return int(a.minor) - int(b.minor)
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})

	kept := edges[:0]
	for _, e := range edges {
		if o.dropSelfLoops && e.major == e.minor {
			continue
		}
		if o.dropMultiEdges && len(kept) > 0 {
			last := kept[len(kept)-1]
			if last.major == e.major && last.minor == e.minor {
				continue
			}
		}
		kept = append(kept, e)
	}

	p := &edgePartition{
		majors: roaring.New(),
		minors: make([]int32, len(kept)),
	}
	weights := make([]float32, len(kept))

	for i, e := range kept {
		if len(p.rowMajors) == 0 || p.rowMajors[len(p.rowMajors)-1] != e.major {
			p.rowMajors = append(p.rowMajors, e.major)
			p.offsets = append(p.offsets, int64(i))
			p.majors.Add(uint32(e.major))
		}
		p.minors[i] = e.minor
		weights[i] = e.weight
	}
	p.offsets = append(p.offsets, int64(len(kept)))
	p.majors.RunOptimize()

	return p, weights
}

func (p *edgePartition) numberOfEdges() int64 {
	return int64(len(p.minors))
}

// row returns the edge range [first, last) of major.
func (p *edgePartition) row(major int32) (int64, int64, bool) {
	if major < 0 || !p.majors.Contains(uint32(major)) {
		return 0, 0, false
	}
	r := p.majors.Rank(uint32(major)) - 1
	return p.offsets[r], p.offsets[r+1], true
}

func (p *edgePartition) major(e int64) int32 {
	r := sort.Search(len(p.rowMajors), func(i int) bool { return p.offsets[i+1] > e })
	return p.rowMajors[r]
}

// EdgePartitionView is a read-only view of one partition's topology.
// Local edge e indexes the partition's edge property values.
type EdgePartitionView struct {
	p *edgePartition
}

// NumberOfEdges returns the number of edges in the partition.
func (v EdgePartitionView) NumberOfEdges() int64 { return v.p.numberOfEdges() }

// NumberOfMajors returns the number of vertices with at least one local edge.
func (v EdgePartitionView) NumberOfMajors() int { return len(v.p.rowMajors) }

// Majors returns a copy of the set of local major vertices.
func (v EdgePartitionView) Majors() *roaring.Bitmap { return v.p.majors.Clone() }

// Row returns the local edge range [first, last) of major.
func (v EdgePartitionView) Row(major int32) (first, last int64, ok bool) {
	return v.p.row(major)
}

// Major returns the major vertex of local edge e.
func (v EdgePartitionView) Major(e int64) int32 { return v.p.major(e) }

// Minor returns the minor vertex of local edge e.
func (v EdgePartitionView) Minor(e int64) int32 { return v.p.minors[e] }

// Minors returns the minor vertices of the row [first, last).
// The returned slice must not be modified.
func (v EdgePartitionView) Minors(first, last int64) []int32 {
	return v.p.minors[first:last:last]
}
