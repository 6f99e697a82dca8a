package walk

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/edgeprop/device"
	"github.com/hupe1980/edgeprop/graph"
	"github.com/hupe1980/edgeprop/internal/pool"
	"github.com/hupe1980/edgeprop/property"
)

// Kind identifies the walk strategy.
type Kind int

// Walk strategies.
const (
	KindUniform Kind = iota
	KindBiased
	KindNode2Vec
)

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindBiased:
		return "biased"
	case KindNode2Vec:
		return "node2vec"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result holds the walks of all start vertices.
//
// Path i occupies Paths[i*(MaxPathLength+1) : (i+1)*(MaxPathLength+1)] and
// begins with its start vertex. The weight of step k of path i is
// Weights[i*MaxPathLength+k]. Weights is nil for unweighted graphs.
type Result struct {
	Paths         []int32
	Weights       []float32
	MaxPathLength int
}

// Path returns the vertices of walk i, including padding.
func (r *Result) Path(i int) []int32 {
	n := r.MaxPathLength + 1
	return r.Paths[i*n : (i+1)*n]
}

// Uniform walks maxDepth steps from every start vertex, choosing each next
// edge uniformly among the current vertex's outgoing edges.
func Uniform(ctx context.Context, h *device.Handle, g *graph.Graph, starts []int32, maxDepth int, optFns ...Option) (*Result, error) {
	w, err := newWalker(KindUniform, g, starts, maxDepth, optFns)
	if err != nil {
		return nil, err
	}
	return w.run(ctx, h, func(ctx context.Context) error {
		return steps[property.NoValue, property.DummyValues](ctx, h, w, property.Dummy{}.View())
	})
}

// Biased walks maxDepth steps from every start vertex, choosing each next
// edge with probability proportional to its weight. Edges with a weight <= 0
// are never taken. The graph must be weighted.
func Biased(ctx context.Context, h *device.Handle, g *graph.Graph, starts []int32, maxDepth int, optFns ...Option) (*Result, error) {
	if !g.IsWeighted() {
		return nil, fmt.Errorf("%w: biased walks need edge weights", ErrInvalidInput)
	}
	w, err := newWalker(KindBiased, g, starts, maxDepth, optFns)
	if err != nil {
		return nil, err
	}
	return w.run(ctx, h, func(ctx context.Context) error {
		return steps[float32, weightValues](ctx, h, w, w.weights)
	})
}

// Node2Vec walks maxDepth steps from every start vertex with the second-order
// bias of node2vec: returning to the previous vertex is weighted 1/p, moving
// to a vertex adjacent to the previous one 1, and moving further away 1/q.
// On weighted graphs the factor multiplies the edge weight.
func Node2Vec(ctx context.Context, h *device.Handle, g *graph.Graph, starts []int32, maxDepth int, p, q float64, optFns ...Option) (*Result, error) {
	if !(p > 0) || !(q > 0) {
		return nil, fmt.Errorf("%w: p and q must be positive, got p=%v q=%v", ErrInvalidInput, p, q)
	}
	w, err := newWalker(KindNode2Vec, g, starts, maxDepth, optFns)
	if err != nil {
		return nil, err
	}
	w.invP, w.invQ = 1/p, 1/q

	return w.run(ctx, h, func(ctx context.Context) error {
		if w.weighted {
			return steps[float32, weightValues](ctx, h, w, w.weights)
		}
		return steps[property.NoValue, property.DummyValues](ctx, h, w, property.Dummy{}.View())
	})
}

type weightValues = property.Values[float32, device.ConstIter[float32]]

// walker is the state shared by all partition kernels of one walk.
// Kernels touch disjoint walkers, so per-walker slots need no locking.
type walker struct {
	kind     Kind
	gv       *graph.View
	weights  property.ConstView[float32]
	weighted bool
	invP     float64
	invQ     float64
	maxDepth int

	cur    []int32
	prev   []int32
	active []bool
	rngs   []*rand.Rand
	res    *Result
}

func newWalker(kind Kind, g *graph.Graph, starts []int32, maxDepth int, optFns []Option) (*walker, error) {
	if g.Cleared() {
		return nil, graph.ErrCleared
	}
	if g.StoreTransposed() {
		return nil, fmt.Errorf("%w: %s walks on a graph stored transposed", ErrUnsupported, kind)
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: negative max depth %d", ErrInvalidInput, maxDepth)
	}
	for _, s := range starts {
		if s < 0 || s >= g.NumberOfVertices() {
			return nil, fmt.Errorf("%w: start vertex %d out of range [0, %d)", ErrInvalidInput, s, g.NumberOfVertices())
		}
	}

	o := newOptions(optFns)
	n := len(starts)

	w := &walker{
		kind:     kind,
		gv:       g.View(),
		maxDepth: maxDepth,
		cur:      make([]int32, n),
		prev:     make([]int32, n),
		active:   make([]bool, n),
		rngs:     make([]*rand.Rand, n),
		res: &Result{
			Paths:         make([]int32, n*(maxDepth+1)),
			MaxPathLength: maxDepth,
		},
	}

	if weights, ok := g.EdgeWeights(); ok {
		if err := weights.Validate(); err != nil {
			return nil, err
		}
		w.weights = weights
		w.weighted = true
		w.res.Weights = make([]float32, n*maxDepth)
	}

	for i := range w.res.Paths {
		w.res.Paths[i] = graph.InvalidVertex
	}
	for i, s := range starts {
		w.res.Paths[i*(maxDepth+1)] = s
		w.cur[i] = s
		w.prev[i] = graph.InvalidVertex
		w.active[i] = true
		w.rngs[i] = rand.New(rand.NewPCG(o.seed, uint64(i)))
	}

	return w, nil
}

func (w *walker) run(ctx context.Context, h *device.Handle, fn func(context.Context) error) (*Result, error) {
	start := time.Now()

	if err := fn(ctx); err != nil {
		return nil, err
	}

	h.Logger().InfoContext(ctx, "random walks finished",
		"kind", w.kind.String(),
		"walkers", len(w.cur),
		"max_depth", w.maxDepth,
		"elapsed", time.Since(start),
	)

	return w.res, nil
}

// steps advances all walkers up to maxDepth times. Each step runs one kernel
// per partition that owns at least one active walker.
func steps[B any, A property.Accessor[B], V property.EdgeView[B, A]](ctx context.Context, h *device.Handle, w *walker, bias V) error {
	numPartitions := w.gv.NumberOfLocalEdgePartitions()
	uniform := property.IsDummy[V]() && w.kind != KindNode2Vec

	groups := pool.GetGroups(numPartitions)
	defer pool.PutGroups(groups)

	for step := range w.maxDepth {
		groups.Reset(numPartitions)
		for i, ok := range w.active {
			if ok {
				groups.Add(w.gv.PartitionOwner(w.cur[i]), i)
			}
		}
		if groups.Len() == 0 {
			return nil
		}

		eg, egCtx := errgroup.WithContext(ctx)
		for p, walkers := range groups.Parts {
			if len(walkers) == 0 {
				continue
			}
			eg.Go(func() error {
				if err := h.Resources().AcquireWorker(egCtx); err != nil {
					return err
				}
				defer h.Resources().ReleaseWorker()

				advance[B](w, bias.Partition(p), uniform, p, walkers, step)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}

	return nil
}

// advance moves the given walkers of partition p by one edge. Uniform
// kernels draw an edge index directly and never read bias.
func advance[B any, A property.Accessor[B]](w *walker, bias A, uniform bool, p int, walkers []int, step int) {
	pv := w.gv.LocalEdgePartitionView(p)

	var weights weightValues
	if w.weighted {
		weights = w.weights.Partition(p)
	}

	for _, i := range walkers {
		first, last, ok := pv.Row(w.cur[i])
		if !ok {
			w.active[i] = false
			continue
		}

		var e int64
		if uniform {
			e = first + w.rngs[i].Int64N(last-first)
		} else {
			e, ok = sample[B](w, bias, pv, i, first, last)
			if !ok {
				w.active[i] = false
				continue
			}
		}

		next := pv.Minor(e)
		w.res.Paths[i*(w.maxDepth+1)+step+1] = next
		if w.weighted {
			w.res.Weights[i*w.maxDepth+step] = weights.Value(e)
		}
		w.prev[i] = w.cur[i]
		w.cur[i] = next
	}
}

// sample draws an edge of [first, last) proportionally to its bias.
// It returns false if no edge has a positive bias.
func sample[B any, A property.Accessor[B]](w *walker, bias A, pv graph.EdgePartitionView, i int, first, last int64) (int64, bool) {
	var total float64
	for e := first; e < last; e++ {
		total += w.edgeBias(biasOf(bias.Value(e)), i, pv.Minor(e))
	}
	if !(total > 0) {
		return 0, false
	}

	r := w.rngs[i].Float64() * total
	picked := int64(-1)
	for e := first; e < last; e++ {
		b := w.edgeBias(biasOf(bias.Value(e)), i, pv.Minor(e))
		if b <= 0 {
			continue
		}
		picked = e
		if r < b {
			break
		}
		r -= b
	}
	return picked, picked >= 0
}

// edgeBias applies the node2vec factor of walker i moving to next.
func (w *walker) edgeBias(base float64, i int, next int32) float64 {
	if base <= 0 || w.kind != KindNode2Vec {
		return base
	}
	prev := w.prev[i]
	switch {
	case prev == graph.InvalidVertex:
		return base
	case next == prev:
		return base * w.invP
	case w.gv.HasEdge(prev, next):
		return base
	default:
		return base * w.invQ
	}
}

// biasOf converts a bias value to a sampling weight. NoValue weighs 1.
func biasOf[B any](v B) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 1
	}
}
