package layout

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/hclayout/pkg/graph"
)

// randomGraph builds a graph on n nodes from encoded endpoint pairs.
func randomGraph(n int, pairs []int) *graph.Graph {
	g := graph.New()
	for i := 0; i < n; i++ {
		_ = g.AddNode(graph.Node{ID: fmt.Sprintf("n%d", i)})
	}
	for _, p := range pairs {
		u, v := (p/64)%n, p%64%n
		_ = g.AddEdge(graph.Edge{From: fmt.Sprintf("n%d", u), To: fmt.Sprintf("n%d", v)})
	}
	return g
}

func runLayout(g graph.View, opts Options) (*Layout, error) {
	l, err := New(g, opts)
	if err != nil {
		return nil, err
	}
	return l, l.Run(context.Background())
}

func TestLayoutProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	nodes := gen.IntRange(1, 40)
	edges := gen.SliceOfN(60, gen.IntRange(0, 64*64-1))

	properties.Property("every node gets a finite position", prop.ForAll(
		func(n int, pairs []int) bool {
			g := randomGraph(n, pairs)
			l, err := runLayout(g, Options{})
			if err != nil {
				return false
			}
			for _, id := range g.Nodes() {
				p, ok := l.NodePosition(id)
				if !ok || math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
					return false
				}
			}
			return true
		},
		nodes, edges,
	))

	properties.Property("independent runs agree", prop.ForAll(
		func(n int, pairs []int) bool {
			g := randomGraph(n, pairs)
			a, errA := runLayout(g, Options{})
			b, errB := runLayout(g, Options{})
			if errA != nil || errB != nil {
				return false
			}
			for id, p := range a.Positions() {
				if q, _ := b.NodePosition(id); p != q {
					return false
				}
			}
			return a.Depth() == b.Depth()
		},
		nodes, edges,
	))

	properties.Property("members of a community keep their distance", prop.ForAll(
		func(n int, pairs []int) bool {
			l, err := runLayout(randomGraph(n, pairs), Options{})
			if err != nil {
				return false
			}
			for _, ig := range l.arena.graphs {
				for i := range ig.Nodes {
					for j := i + 1; j < len(ig.Nodes); j++ {
						a, b := ig.Nodes[i], ig.Nodes[j]
						if math.Hypot(a.X-b.X, a.Y-b.Y) < 1.2*math.Min(a.Radius, b.Radius)-1e-6 {
							return false
						}
					}
				}
			}
			return true
		},
		nodes, edges,
	))

	properties.Property("depth counts the levels that coarsened", prop.ForAll(
		func(n int, pairs []int) bool {
			l, err := runLayout(randomGraph(n, pairs), Options{})
			if err != nil {
				return false
			}
			levels := l.Levels()
			coarsened := 0
			for _, lv := range levels {
				if lv.CanCoarsen {
					coarsened++
				}
			}
			return l.Depth() == coarsened && len(levels) == l.Depth()+1 && !levels[len(levels)-1].CanCoarsen
		},
		nodes, edges,
	))

	properties.Property("groups at level 0 cover every node", prop.ForAll(
		func(n int, pairs []int) bool {
			g := randomGraph(n, pairs)
			l, err := runLayout(g, Options{})
			if err != nil {
				return false
			}
			groups := l.GroupsAtLevel(0)
			if len(groups) != g.NodeCount() {
				return false
			}
			top, _ := l.TopLayout()
			ig, _ := l.Graph(top.Graph)
			return distinct(groups) == len(ig.Nodes)
		},
		nodes, edges,
	))

	properties.TestingRun(t)
}
