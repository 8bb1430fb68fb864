package layout

import (
	"context"
	"time"

	"github.com/matzehuels/hclayout/pkg/geom"
	"github.com/matzehuels/hclayout/pkg/graph"
	"github.com/matzehuels/hclayout/pkg/observability"
)

// strategy is the closed set of ways a community can be laid out. The
// variant is chosen by [strategyFor] from the internal graph alone.
type strategy interface {
	apply(ctx context.Context, ig *InternalGraph, opts *Options) (geom.Circle, int, error)
	String() string
}

// physicsStrategy lays out communities with at least one internal edge.
type physicsStrategy struct{}

// isolateStrategy packs communities without internal edges.
type isolateStrategy struct{}

func (physicsStrategy) String() string { return "physics" }
func (isolateStrategy) String() string { return "isolate" }

func (physicsStrategy) apply(ctx context.Context, ig *InternalGraph, opts *Options) (geom.Circle, int, error) {
	return layoutPhysics(ctx, ig, opts)
}

func (isolateStrategy) apply(_ context.Context, ig *InternalGraph, opts *Options) (geom.Circle, int, error) {
	return layoutIsolates(ig.Nodes, opts), 0, nil
}

func strategyFor(ig *InternalGraph) strategy {
	if len(ig.Edges) > 0 {
		return physicsStrategy{}
	}
	return isolateStrategy{}
}

// layoutCommunity lays out the community made of members of parent and
// stores its internal graph in the arena. prior holds the results of the
// level below, keyed by node of parent.
func (l *Layout) layoutCommunity(ctx context.Context, parent graph.View, members []string, prior map[string]Result) (Result, strategy, error) {
	start := time.Now()
	ig, err := extract(parent, members, prior, l.opts.NodeRadius)
	if err != nil {
		return Result{}, nil, err
	}

	s := strategyFor(ig)
	size, steps, err := s.apply(ctx, ig, &l.opts)
	if err != nil {
		return Result{}, s, err
	}
	l.steps += steps

	l.opts.Logger.Debug("laid out community",
		"strategy", s,
		"nodes", len(ig.Nodes),
		"edges", len(ig.Edges),
		"steps", steps,
		"radius", size.R)
	observability.Layout().OnCommunity(ctx, s.String(), len(ig.Nodes), len(ig.Edges), time.Since(start))

	return Result{Size: size, Graph: l.arena.alloc(ig)}, s, nil
}
