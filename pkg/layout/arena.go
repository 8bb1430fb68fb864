package layout

import "github.com/matzehuels/hclayout/pkg/geom"

// Handle addresses an [InternalGraph] owned by a [Layout].
type Handle int

// NoHandle marks a node without a nested internal graph, that is an original
// graph node.
const NoHandle Handle = -1

// Node is one member of a community's internal graph. X and Y are local to
// the community: the enclosing circle of all members is centered on the
// origin once the community has been laid out.
type Node struct {
	ID     string
	Index  int
	X, Y   float64
	Radius float64
	// Sized reports whether Radius comes from a sub-layout rather than the
	// configured node radius.
	Sized bool
	// Child is the internal graph of the community this node stands for, or
	// NoHandle for a leaf.
	Child Handle
}

// IsLeaf reports whether n is an original graph node.
func (n *Node) IsLeaf() bool { return n.Child == NoHandle }

// Position returns the local position of n.
func (n *Node) Position() geom.Point { return geom.Point{X: n.X, Y: n.Y} }

// Edge links two nodes of the same internal graph by index.
type Edge struct {
	Source int
	Target int
}

// InternalGraph holds the members of one community and the edges between
// them. Node i is stored at Nodes[i].
type InternalGraph struct {
	Nodes []Node
	Edges []Edge
}

// Result is the layout of one community: the enclosing circle in the
// community's own frame and the laid out internal graph.
type Result struct {
	Size  geom.Circle
	Graph Handle
}

// arena owns every internal graph built during a run. Graphs only reference
// graphs allocated before them, so the nesting is acyclic.
type arena struct {
	graphs []*InternalGraph
}

func (a *arena) alloc(g *InternalGraph) Handle {
	a.graphs = append(a.graphs, g)
	return Handle(len(a.graphs) - 1)
}

func (a *arena) get(h Handle) *InternalGraph {
	if h < 0 || int(h) >= len(a.graphs) {
		return nil
	}
	return a.graphs[h]
}

func (a *arena) len() int { return len(a.graphs) }
