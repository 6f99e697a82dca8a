// Package property attaches typed value arrays to the edges of a partitioned graph.
//
// # Containers and Views
//
// A Container owns one device buffer per local edge partition, sized exactly
// to that partition's edge count and kept in partition order. Algorithms never
// receive the container; they receive a View, a copyable pair of parallel
// slices (start handle, edge count) indexed by partition:
//
//	weights, err := property.New[float32](ctx, h, graphView)
//	if err != nil { ... }
//	defer weights.Clear(h)
//
//	mv := weights.MutableView()
//	_ = property.Fill(ctx, h, mv, 1.0)
//
//	cv := weights.View()
//	for i := range cv.NumberOfPartitions() {
//	    p := cv.Partition(i)
//	    _ = p.Value(0)
//	}
//
// Read-only and mutable views share the generic View type and differ only in
// the traversal handle (device.ConstIter or device.Iter).
//
// # Graphs Without Edge Data
//
// Dummy and DummyView stand in for "no property". Their value type is NoValue
// and their accessors never touch memory. Kernels are written against the
// EdgeView capability and specialise on IsDummy at instantiation time:
//
//	func kernel[T any, A property.Accessor[T], V property.EdgeView[T, A]](v V) {
//	    if property.IsDummy[V]() {
//	        // no edge payload
//	    }
//	}
//
// # Lifetime
//
// The container must outlive every view taken from it. Views do not own
// storage; after Clear, dereferencing a view's handles panics with
// device.ErrStaleHandle and Validate reports it.
package property
