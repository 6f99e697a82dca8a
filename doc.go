// Package edgeprop stores per-edge properties of partitioned graphs and runs
// random walks over them.
//
// A graph's edges are split into one partition per worker. An edge property
// (a weight, a label) is kept as one buffer per partition, sized from the
// graph's partition descriptor. Algorithms take a View of the property: a
// cheap snapshot of where each partition's values start and how many there
// are. Graphs without a property of some kind pass the zero-storage dummy
// view instead, and generic kernels branch on it at compile time.
//
// # Quick Start
//
//	rt := edgeprop.New(edgeprop.WithNumWorkers(4))
//	defer rt.Close()
//
//	g, _ := rt.CreateGraph(ctx, []graph.EdgeList{{
//	    Src:     []int32{0, 1, 2},
//	    Dst:     []int32{1, 2, 0},
//	    Weights: []float32{1, 2, 3},
//	}})
//
//	res, _ := rt.BiasedRandomWalks(ctx, g, []int32{0, 1}, 8)
//
// # Edge Properties
//
// Containers are built from a graph and filled on the runtime's stream:
//
//	labels, _ := edgeprop.NewEdgeProperty[int32](ctx, rt, g)
//	defer labels.Clear(rt.Handle())
//	_ = property.Fill(ctx, rt.Handle(), labels.MutableView(), 7)
//	_ = rt.Handle().Synchronize(ctx)
//
// Views taken before Clear become stale: View.Validate reports
// device.ErrStaleHandle and dereferencing a stale handle panics.
//
// # Errors
//
// Every error returned by the runtime is an *Error carrying a Code. errors.Is
// matches both the code sentinel (ErrInvalidInput, ErrUnsupported, ...) and
// the underlying package error.
package edgeprop
