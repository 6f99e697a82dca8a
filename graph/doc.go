// Package graph builds partitioned graphs from distributed edge lists.
//
// Every edge is owned by the partition of its major vertex (the source, or the
// destination when the graph is stored transposed); vertex v belongs to
// partition v % P where P is the handle's worker count. Each partition keeps a
// compressed sparse row over its local majors, whose set is a roaring bitmap:
// the rank of a major in the bitmap is its row.
//
// The graph's View is the partition descriptor edge property containers are
// sized from. Edge weights are themselves such a property:
//
//	g, err := graph.New(ctx, h, []graph.EdgeList{
//	    {Src: []int32{0, 1}, Dst: []int32{1, 2}, Weights: []float32{1, 1}},
//	    {Src: []int32{2}, Dst: []int32{0}, Weights: []float32{1}},
//	})
//	if err != nil { ... }
//	defer g.Clear(h)
//
//	weights, _ := g.EdgeWeights()
//	fmt.Println(weights.NumberOfPartitions() == g.View().NumberOfLocalEdgePartitions())
package graph
