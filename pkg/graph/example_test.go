package graph_test

import (
	"fmt"

	"github.com/matzehuels/hclayout/pkg/graph"
)

func ExampleGraph_basic() {
	// A triangle plus a pendant node
	g := graph.New()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(graph.Node{ID: id})
	}
	_ = g.AddEdge(graph.Edge{From: "a", To: "b"})
	_ = g.AddEdge(graph.Edge{From: "b", To: "c"})
	_ = g.AddEdge(graph.Edge{From: "c", To: "a"})
	_ = g.AddEdge(graph.Edge{From: "c", To: "d"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Neighbors of c:", g.Neighbors("c"))
	// Output:
	// Nodes: 4
	// Edges: 4
	// Neighbors of c: [b a d]
}

func ExampleGraph_AddWeight() {
	// Coarsened graphs accumulate link multiplicities
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "c0"})
	_ = g.AddNode(graph.Node{ID: "c1"})
	_ = g.AddWeight("c0", "c1", 1)
	_ = g.AddWeight("c0", "c1", 1)
	_ = g.AddWeight("c0", "c0", 3)

	fmt.Println("Weight:", g.Weight("c0", "c1"))
	fmt.Println("Internal:", g.SelfLoop("c0"))
	// Output:
	// Weight: 2
	// Internal: 3
}
