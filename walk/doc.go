// Package walk implements random walks over a partitioned graph.
//
// Every step groups the active walkers by the partition owning their current
// vertex and advances each group with a per-partition kernel. Kernels are
// generic over the bias view: uniform walks pass property.DummyView and never
// read bias memory, biased and node2vec walks pass the edge weight view.
//
// Paths are padded with graph.InvalidVertex (and weight 0) once a walker
// reaches a vertex without outgoing edges.
package walk
