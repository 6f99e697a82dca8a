package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/edgeprop/device"
	"github.com/hupe1980/edgeprop/internal/conv"
	"github.com/hupe1980/edgeprop/property"
)

// InvalidVertex marks padding in vertex sequences.
const InvalidVertex int32 = -1

// EdgeList is one worker's share of the input edges.
// Weights is either nil (unweighted) or parallel to Src and Dst.
type EdgeList struct {
	Src     []int32
	Dst     []int32
	Weights []float32
}

// Graph is a graph whose edges are split into one partition per worker.
//
// A Graph is immutable after New; it is safe for concurrent readers. Clear
// releases the edge weights; the graph must not be used afterwards.
type Graph struct {
	numVertices     int32
	numEdges        int64
	storeTransposed bool
	weighted        bool
	vertices        *roaring.Bitmap
	partitions      []*edgePartition
	weights         *property.Container[float32]
}

// New builds a graph from per-worker edge lists.
//
// Edges are shuffled to the partition of their major vertex, sorted by
// (major, minor) and compressed. Edge weights are copied into an edge
// property container allocated from the graph's own view.
func New(ctx context.Context, h *device.Handle, lists []EdgeList, optFns ...Option) (*Graph, error) {
	start := time.Now()

	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	weighted, numVertices, err := validate(lists, o)
	if err != nil {
		return nil, err
	}

	numPartitions := h.NumWorkers()
	buckets := shuffle(lists, numPartitions, o.storeTransposed)

	g := &Graph{
		numVertices:     numVertices,
		storeTransposed: o.storeTransposed,
		weighted:        weighted,
		vertices:        roaring.New(),
		partitions:      make([]*edgePartition, numPartitions),
	}

	hostWeights := make([][]float32, numPartitions)

	var eg errgroup.Group
	eg.SetLimit(h.Resources().MaxWorkers())
	for i := range numPartitions {
		eg.Go(func() error {
			g.partitions[i], hostWeights[i] = buildPartition(buckets[i], o)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, list := range lists {
		for i := range list.Src {
			g.vertices.Add(uint32(list.Src[i]))
			g.vertices.Add(uint32(list.Dst[i]))
		}
	}
	g.vertices.RunOptimize()

	for _, p := range g.partitions {
		g.numEdges += p.numberOfEdges()
	}

	if weighted {
		g.weights, err = property.New[float32](ctx, h, g.View())
		if err != nil {
			return nil, err
		}
		if err := property.CopyFromHost(ctx, h, g.weights.MutableView(), hostWeights); err != nil {
			g.weights.Clear(h)
			return nil, err
		}
		if err := h.Synchronize(ctx); err != nil {
			g.weights.Clear(h)
			return nil, err
		}
	}

	h.Logger().InfoContext(ctx, "graph created",
		"vertices", g.numVertices,
		"edges", g.numEdges,
		"partitions", numPartitions,
		"weighted", weighted,
		"transposed", o.storeTransposed,
		"elapsed", time.Since(start),
	)

	return g, nil
}

func validate(lists []EdgeList, o options) (bool, int32, error) {
	weighted := false
	for _, list := range lists {
		if list.Weights != nil {
			weighted = true
		}
	}

	maxVertex := int32(-1)
	for w, list := range lists {
		if len(list.Src) != len(list.Dst) {
			return false, 0, fmt.Errorf("%w: list %d: %d sources, %d destinations", ErrInvalidInput, w, len(list.Src), len(list.Dst))
		}
		if weighted && len(list.Weights) != len(list.Src) {
			return false, 0, fmt.Errorf("%w: list %d: %d weights for %d edges", ErrInvalidInput, w, len(list.Weights), len(list.Src))
		}
		for i := range list.Src {
			for _, v := range [2]int32{list.Src[i], list.Dst[i]} {
				if v < 0 {
					return false, 0, fmt.Errorf("%w: list %d: negative vertex %d", ErrInvalidInput, w, v)
				}
				if o.numVertices > 0 && v >= o.numVertices {
					return false, 0, fmt.Errorf("%w: list %d: vertex %d out of range [0, %d)", ErrInvalidInput, w, v, o.numVertices)
				}
				maxVertex = max(maxVertex, v)
			}
		}
	}

	if o.numVertices < 0 {
		return false, 0, fmt.Errorf("%w: negative vertex count %d", ErrInvalidInput, o.numVertices)
	}
	if o.numVertices > 0 {
		return weighted, o.numVertices, nil
	}

	n, err := conv.Int64ToInt32(int64(maxVertex) + 1)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return weighted, n, nil
}

// shuffle moves every edge to the partition owning its major vertex.
func shuffle(lists []EdgeList, numPartitions int, transposed bool) [][]localEdge {
	buckets := make([][]localEdge, numPartitions)

	var seq int64
	for _, list := range lists {
		for i := range list.Src {
			e := localEdge{major: list.Src[i], minor: list.Dst[i], seq: seq}
			if transposed {
				e.major, e.minor = e.minor, e.major
			}
			if list.Weights != nil {
				e.weight = list.Weights[i]
			}
			p := owner(e.major, numPartitions)
			buckets[p] = append(buckets[p], e)
			seq++
		}
	}

	return buckets
}

func owner(v int32, numPartitions int) int {
	return int(v) % numPartitions
}

// View returns the graph's partition descriptor.
func (g *Graph) View() *View {
	return &View{g: g}
}

// NumberOfVertices returns the vertex count.
func (g *Graph) NumberOfVertices() int32 { return g.numVertices }

// NumberOfEdges returns the edge count after self-loop and multi-edge removal.
func (g *Graph) NumberOfEdges() int64 { return g.numEdges }

// IsWeighted reports whether the graph carries edge weights.
func (g *Graph) IsWeighted() bool { return g.weighted }

// StoreTransposed reports whether partitions are keyed by destination.
func (g *Graph) StoreTransposed() bool { return g.storeTransposed }

// Cleared reports whether Clear has been called.
func (g *Graph) Cleared() bool { return g.partitions == nil }

// EdgeWeights returns a read-only view of the edge weights.
// ok is false for unweighted or cleared graphs.
func (g *Graph) EdgeWeights() (v property.ConstView[float32], ok bool) {
	if g.weights == nil {
		return v, false
	}
	return g.weights.View(), true
}

// Clear releases the edge weights and topology. It is idempotent.
func (g *Graph) Clear(h *device.Handle) {
	if g.weights != nil {
		g.weights.Clear(h)
		g.weights = nil
	}
	g.partitions = nil
	g.numEdges = 0
}

// EdgeList returns the edges in partition order as a single host edge list.
// Weights is nil for unweighted graphs.
func (g *Graph) EdgeList(ctx context.Context, h *device.Handle) (EdgeList, error) {
	if g.partitions == nil {
		return EdgeList{}, ErrCleared
	}

	out := EdgeList{
		Src: make([]int32, 0, g.numEdges),
		Dst: make([]int32, 0, g.numEdges),
	}
	for _, p := range g.partitions {
		for r, major := range p.rowMajors {
			for e := p.offsets[r]; e < p.offsets[r+1]; e++ {
				src, dst := major, p.minors[e]
				if g.storeTransposed {
					src, dst = dst, src
				}
				out.Src = append(out.Src, src)
				out.Dst = append(out.Dst, dst)
			}
		}
	}

	if g.weights != nil {
		parts, err := property.CopyToHost(ctx, h, g.weights.View())
		if err != nil {
			return EdgeList{}, err
		}
		out.Weights = make([]float32, 0, g.numEdges)
		for _, w := range parts {
			out.Weights = append(out.Weights, w...)
		}
	}

	return out, nil
}
