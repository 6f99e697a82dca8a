package graph

import "slices"

// View is the partition descriptor of a Graph: how many local edge partitions
// there are, how many edges each holds and where a vertex's edges live.
//
// Edge property containers are sized from a View.
type View struct {
	g *Graph
}

// NumberOfLocalEdgePartitions returns the number of local edge partitions.
func (v *View) NumberOfLocalEdgePartitions() int {
	return len(v.g.partitions)
}

// LocalEdgePartitionEdgeCount returns the number of edges in partition i.
func (v *View) LocalEdgePartitionEdgeCount(i int) int64 {
	return v.g.partitions[i].numberOfEdges()
}

// LocalEdgePartitionView returns the topology of partition i.
func (v *View) LocalEdgePartitionView(i int) EdgePartitionView {
	return EdgePartitionView{p: v.g.partitions[i]}
}

// PartitionOwner returns the partition holding the edges whose major vertex is u.
func (v *View) PartitionOwner(u int32) int {
	return owner(u, len(v.g.partitions))
}

// StoreTransposed reports whether majors are destinations.
func (v *View) StoreTransposed() bool { return v.g.storeTransposed }

// NumberOfVertices returns the vertex count.
func (v *View) NumberOfVertices() int32 { return v.g.numVertices }

// HasNode reports whether u is an endpoint of some input edge.
func (v *View) HasNode(u int32) bool {
	return u >= 0 && v.g.vertices.Contains(uint32(u))
}

// HasEdge reports whether the edge src -> dst exists.
func (v *View) HasEdge(src, dst int32) bool {
	if src < 0 || dst < 0 || len(v.g.partitions) == 0 {
		return false
	}
	major, minor := src, dst
	if v.g.storeTransposed {
		major, minor = dst, src
	}
	p := v.g.partitions[v.PartitionOwner(major)]
	first, last, ok := p.row(major)
	if !ok {
		return false
	}
	_, found := slices.BinarySearch(p.minors[first:last], minor)
	return found
}

// Neighbors returns the destinations of u's outgoing edges in ascending
// order. Multi-edges yield repeated entries.
func (v *View) Neighbors(u int32) []int32 {
	if u < 0 || len(v.g.partitions) == 0 {
		return nil
	}

	if !v.g.storeTransposed {
		p := v.g.partitions[v.PartitionOwner(u)]
		first, last, ok := p.row(u)
		if !ok {
			return nil
		}
		return slices.Clone(p.minors[first:last])
	}

	// Rows are keyed by destination; u appears as a minor.
	var out []int32
	for _, p := range v.g.partitions {
		for r, major := range p.rowMajors {
			row := p.minors[p.offsets[r]:p.offsets[r+1]]
			i, found := slices.BinarySearch(row, u)
			for ; found && i < len(row) && row[i] == u; i++ {
				out = append(out, major)
			}
		}
	}
	slices.Sort(out)
	return out
}

// OutDegrees returns the number of outgoing edges of every vertex.
func (v *View) OutDegrees() []int64 {
	if v.g.storeTransposed {
		return v.minorDegrees()
	}
	return v.majorDegrees()
}

// InDegrees returns the number of incoming edges of every vertex.
func (v *View) InDegrees() []int64 {
	if v.g.storeTransposed {
		return v.majorDegrees()
	}
	return v.minorDegrees()
}

// Degrees returns the sum of in- and out-degree of every vertex.
func (v *View) Degrees() []int64 {
	out := v.majorDegrees()
	for u, d := range v.minorDegrees() {
		out[u] += d
	}
	return out
}

func (v *View) majorDegrees() []int64 {
	out := make([]int64, v.g.numVertices)
	for _, p := range v.g.partitions {
		for r, major := range p.rowMajors {
			out[major] += p.offsets[r+1] - p.offsets[r]
		}
	}
	return out
}

func (v *View) minorDegrees() []int64 {
	out := make([]int64, v.g.numVertices)
	for _, p := range v.g.partitions {
		for _, minor := range p.minors {
			out[minor]++
		}
	}
	return out
}
