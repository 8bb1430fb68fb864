package layout

import (
	"context"
	"fmt"

	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/geom"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// compose lays the top level out as a single community and turns the tree
// of internal graphs into global leaf positions.
func (l *Layout) compose(ctx context.Context, top graph.View, results map[string]Result) error {
	r, _, err := l.layoutCommunity(ctx, top, top.Nodes(), results)
	if err != nil {
		return fmt.Errorf("top level: %w", err)
	}
	l.top = r

	positions := make(map[string]geom.Point, l.g.NodeCount())
	origin := geom.Point{}.Sub(r.Size.Center())
	l.walk(r.Graph, origin, func(n *Node, p geom.Point) {
		positions[n.ID] = p
	})
	if len(positions) != l.g.NodeCount() {
		return errors.New(errors.ErrCodeInternal,
			"composed %d positions for %d nodes", len(positions), l.g.NodeCount())
	}
	l.positions = positions
	return nil
}

// walk visits every leaf below h with its position relative to the frame in
// which h's origin sits at offset.
func (l *Layout) walk(h Handle, offset geom.Point, leaf func(*Node, geom.Point)) {
	ig := l.arena.get(h)
	if ig == nil {
		return
	}
	for i := range ig.Nodes {
		n := &ig.Nodes[i]
		p := offset.Add(n.Position())
		if n.IsLeaf() {
			leaf(n, p)
			continue
		}
		l.walk(n.Child, p, leaf)
	}
}
