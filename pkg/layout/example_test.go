package layout_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/hclayout/pkg/graph"
	"github.com/matzehuels/hclayout/pkg/layout"
)

func ExampleLayout() {
	// Two triangles joined by one edge.
	g := graph.New()
	for _, id := range []string{"a", "b", "c", "x", "y", "z"} {
		_ = g.AddNode(graph.Node{ID: id})
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"x", "y"}, {"y", "z"}, {"z", "x"}, {"a", "x"}} {
		_ = g.AddEdge(graph.Edge{From: e[0], To: e[1]})
	}

	l, err := layout.New(g, layout.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := l.Run(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	groups := l.GroupsAtLevel(0)
	fmt.Println("Depth:", l.Depth())
	fmt.Println("Positions:", len(l.Positions()))
	fmt.Println("a and c together:", groups["a"] == groups["c"])
	fmt.Println("a and x together:", groups["a"] == groups["x"])
	// Output:
	// Depth: 1
	// Positions: 6
	// a and c together: true
	// a and x together: false
}

func ExampleLayout_NodePosition() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "solo"})

	l, _ := layout.New(g, layout.Options{})
	_, ok := l.NodePosition("solo")
	fmt.Println("before run:", ok)

	_ = l.Run(context.Background())
	p, ok := l.NodePosition("solo")
	fmt.Printf("after run: %v (%.0f, %.0f)\n", ok, p.X, p.Y)
	// Output:
	// before run: false
	// after run: true (0, 0)
}
