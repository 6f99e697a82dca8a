package edgeprop_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/edgeprop"
	"github.com/hupe1980/edgeprop/graph"
	"github.com/hupe1980/edgeprop/property"
	"github.com/hupe1980/edgeprop/walk"
)

func exampleLists() []graph.EdgeList {
	return []graph.EdgeList{
		{Src: []int32{0, 1, 1, 2}, Dst: []int32{1, 3, 4, 0}, Weights: []float32{1, 1, 1, 1}},
		{Src: []int32{2, 2, 3, 4}, Dst: []int32{1, 3, 5, 5}, Weights: []float32{1, 1, 1, 1}},
	}
}

// Example_edgeProperty demonstrates sizing an edge property from a graph.
func Example_edgeProperty() {
	ctx := context.Background()

	rt := edgeprop.New(edgeprop.WithNumWorkers(2))
	defer rt.Close()

	g, err := rt.CreateGraph(ctx, exampleLists())
	if err != nil {
		log.Fatal(err)
	}

	labels, err := edgeprop.NewEdgeProperty[int32](ctx, rt, g)
	if err != nil {
		log.Fatal(err)
	}
	defer labels.Clear(rt.Handle())

	if err := property.Fill(ctx, rt.Handle(), labels.MutableView(), 7); err != nil {
		log.Fatal(err)
	}
	if err := rt.Synchronize(ctx); err != nil {
		log.Fatal(err)
	}

	v := labels.View()
	fmt.Println("partitions:", v.NumberOfPartitions())
	fmt.Println("edges:", v.EdgeCounts())
	fmt.Println("first label:", v.Partition(0).Value(0))
	// Output:
	// partitions: 2
	// edges: [5 3]
	// first label: 7
}

// Example_randomWalks demonstrates seeded walks over a weighted graph.
func Example_randomWalks() {
	ctx := context.Background()

	rt := edgeprop.New(edgeprop.WithNumWorkers(2))
	defer rt.Close()

	g, err := rt.CreateGraph(ctx, exampleLists())
	if err != nil {
		log.Fatal(err)
	}

	// Vertex 3 has a single outgoing edge to 5, which is a dead end.
	res, err := rt.UniformRandomWalks(ctx, g, []int32{3}, 3, walk.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Path(0))
	fmt.Println(res.Weights)
	// Output:
	// [3 5 -1 -1]
	// [1 0 0]
}

// Example_errors demonstrates inspecting a failure status.
func Example_errors() {
	ctx := context.Background()

	rt := edgeprop.New(edgeprop.WithNumWorkers(2))
	defer rt.Close()

	g, err := rt.CreateGraph(ctx, exampleLists(), graph.WithStoreTransposed(true))
	if err != nil {
		log.Fatal(err)
	}

	_, err = rt.UniformRandomWalks(ctx, g, []int32{2, 2}, 3)

	var e *edgeprop.Error
	if errors.As(err, &e) {
		fmt.Println(e.Code)
	}
	fmt.Println(errors.Is(err, edgeprop.ErrUnsupported))
	// Output:
	// unsupported
	// true
}
