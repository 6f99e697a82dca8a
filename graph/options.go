package graph

type options struct {
	storeTransposed bool
	numVertices     int32
	dropSelfLoops   bool
	dropMultiEdges  bool
}

// Option configures graph construction.
type Option func(*options)

// WithStoreTransposed keys partitions by destination instead of source vertex.
func WithStoreTransposed(transposed bool) Option {
	return func(o *options) {
		o.storeTransposed = transposed
	}
}

// WithNumVertices fixes the vertex count. Edge endpoints must be below n.
// By default the count is one past the largest endpoint.
func WithNumVertices(n int32) Option {
	return func(o *options) {
		o.numVertices = n
	}
}

// WithDropSelfLoops removes edges whose endpoints are equal.
func WithDropSelfLoops() Option {
	return func(o *options) {
		o.dropSelfLoops = true
	}
}

// WithDropMultiEdges keeps only the first of several parallel edges.
// Input order decides which weight survives: lists in order, edges in list order.
func WithDropMultiEdges() Option {
	return func(o *options) {
		o.dropMultiEdges = true
	}
}
