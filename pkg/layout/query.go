package layout

import (
	"maps"

	"github.com/matzehuels/hclayout/pkg/community"
	"github.com/matzehuels/hclayout/pkg/geom"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// HierarchyNode is one circle of the hierarchy view in global coordinates.
// Leaves carry the ID of an original graph node.
type HierarchyNode struct {
	ID       string           `json:"id,omitempty"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	R        float64          `json:"r"`
	Children []*HierarchyNode `json:"children,omitempty"`
}

// IsLeaf reports whether h is an original graph node.
func (h *HierarchyNode) IsLeaf() bool { return len(h.Children) == 0 }

// NodePosition returns the global position of node id. The second result
// is false before Run, for an empty graph and for unknown IDs.
func (l *Layout) NodePosition(id string) (geom.Point, bool) {
	p, ok := l.positions[id]
	return p, ok
}

// Positions returns a copy of all global positions, or nil before Run.
func (l *Layout) Positions() map[string]geom.Point {
	if l.positions == nil {
		return nil
	}
	return maps.Clone(l.positions)
}

// Depth returns the number of levels whose clustering made progress. It is
// zero for a graph that could not be coarsened at all and for an empty
// graph.
func (l *Layout) Depth() int { return l.depth }

// Levels returns statistics for every level, finest first.
func (l *Layout) Levels() []LevelStats {
	out := make([]LevelStats, len(l.levels))
	for i, lv := range l.levels {
		out[i] = lv.stats
	}
	return out
}

// Level returns the graph clustered at level i and its clustering.
func (l *Layout) Level(i int) (graph.View, *community.Clustering, bool) {
	if i < 0 || i >= len(l.levels) {
		return nil, nil, false
	}
	return l.levels[i].graph, l.levels[i].clustering, true
}

// TopLayout returns the layout of the top level, whose internal graph is the
// root of the community tree. The second result is false before Run.
func (l *Layout) TopLayout() (Result, bool) {
	if l.positions == nil {
		return Result{}, false
	}
	return l.top, true
}

// Graph returns the internal graph addressed by h.
func (l *Layout) Graph(h Handle) (*InternalGraph, bool) {
	ig := l.arena.get(h)
	return ig, ig != nil
}

// GroupsAtLevel assigns every node to the community it belongs to at depth
// level of the community tree, counted from the top. Depth 0 is the set of
// top level communities. Nodes whose branch ends above the requested depth
// become clusters of their own. Cluster indices are dense and follow tree
// order. The result is nil before Run.
func (l *Layout) GroupsAtLevel(level int) map[string]int {
	if l.positions == nil {
		return nil
	}
	level = max(level, 0)
	groups := make(map[string]int, len(l.positions))
	next := 0

	var visit func(h Handle, depth, cluster int)
	visit = func(h Handle, depth, cluster int) {
		ig := l.arena.get(h)
		for i := range ig.Nodes {
			n := &ig.Nodes[i]
			k := cluster
			if k < 0 && (depth == level || n.IsLeaf()) {
				k = next
				next++
			}
			if n.IsLeaf() {
				groups[n.ID] = k
				continue
			}
			visit(n.Child, depth+1, k)
		}
	}
	visit(l.top.Graph, 0, -1)
	return groups
}

// Hierarchy returns the community tree as nested circles in global
// coordinates. A community whose only child is another community is
// replaced by that child's children, so chains of single communities do not
// show up as separate levels. The result is nil before Run.
func (l *Layout) Hierarchy() *HierarchyNode {
	if l.positions == nil {
		return nil
	}
	// The global frame puts the top level's enclosing circle on the origin.
	origin := geom.Point{}.Sub(l.top.Size.Center())
	root := &HierarchyNode{R: l.top.Size.R}
	root.Children = l.circles(l.top.Graph, origin)
	collapse(root)
	return root
}

func (l *Layout) circles(h Handle, offset geom.Point) []*HierarchyNode {
	ig := l.arena.get(h)
	out := make([]*HierarchyNode, 0, len(ig.Nodes))
	for i := range ig.Nodes {
		n := &ig.Nodes[i]
		circle := geom.Circle{X: n.X, Y: n.Y, R: n.Radius}.Translate(offset)
		c := &HierarchyNode{X: circle.X, Y: circle.Y, R: circle.R}
		if n.IsLeaf() {
			c.ID = n.ID
		} else {
			c.Children = l.circles(n.Child, circle.Center())
		}
		out = append(out, c)
	}
	return out
}

func collapse(h *HierarchyNode) {
	for len(h.Children) == 1 && !h.Children[0].IsLeaf() {
		h.Children = h.Children[0].Children
	}
	for _, c := range h.Children {
		collapse(c)
	}
}
