package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/hclayout/pkg/community"
	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/geom"
	"github.com/matzehuels/hclayout/pkg/graph"
	"github.com/matzehuels/hclayout/pkg/observability"
)

// Layout computes and holds the multilevel layout of one graph.
//
// Run fills the layout once; the query methods are read-only afterwards and
// may be called from several goroutines. Run itself must not be called
// concurrently with anything else.
type Layout struct {
	g    graph.View
	opts Options

	ran       bool
	arena     arena
	levels    []level
	depth     int
	steps     int
	top       Result
	positions map[string]geom.Point
}

// level is one step of the hierarchy: the graph that was clustered, its
// clustering, and what laying out its communities produced.
type level struct {
	graph      graph.View
	clustering *community.Clustering
	stats      LevelStats
}

// LevelStats summarises one hierarchy level.
type LevelStats struct {
	Level       int           `json:"level"`
	Nodes       int           `json:"nodes"`
	Edges       int           `json:"edges"`
	Communities int           `json:"communities"`
	CanCoarsen  bool          `json:"can_coarsen"`
	Physics     int           `json:"physics"`
	Isolates    int           `json:"isolates"`
	Duration    time.Duration `json:"duration"`
}

// New returns a layout of g. The graph is borrowed and never modified.
func New(g graph.View, opts Options) (*Layout, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is required")
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Layout{g: g, opts: opts}, nil
}

// Run builds the community hierarchy, lays out every community and
// composes the global positions.
//
// Run on a graph without nodes does nothing. Otherwise it may be called
// once; later calls return an ALREADY_RUN error. Run fails with
// NON_TERMINATING when the detector keeps reporting CanCoarsen beyond
// MaxLevels levels or for StallLimit consecutive levels that do not shrink
// the graph, and with INCONSISTENT_CLUSTERING when detection or coarsening
// disagree with the graph.
func (l *Layout) Run(ctx context.Context) (err error) {
	n := l.g.NodeCount()
	if n == 0 {
		l.opts.Logger.Debug("graph has no nodes, nothing to lay out")
		return nil
	}
	if l.ran {
		return errors.New(errors.ErrCodeAlreadyRun, "layout has already run")
	}
	l.ran = true

	start := time.Now()
	hooks := observability.Layout()
	hooks.OnRunStart(ctx, n, edgeCount(l.g))
	defer func() {
		hooks.OnRunComplete(ctx, l.depth, time.Since(start), err)
	}()

	l.opts.Logger.Info("running clustering on graph, this may take a while", "nodes", n)

	var (
		src     = l.g
		results map[string]Result
		stalls  int
	)
	for lvl := 0; ; lvl++ {
		if lvl == l.opts.MaxLevels {
			return errors.New(errors.ErrCodeNonTerminating,
				"clustering still reports progress after %d levels", lvl)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		next, nextResults, c, err := l.buildLevel(ctx, lvl, src, results)
		if err != nil {
			return fmt.Errorf("level %d: %w", lvl, err)
		}
		if !c.CanCoarsen() {
			src, results = next, nextResults
			break
		}

		l.depth++
		if next.NodeCount() >= src.NodeCount() {
			stalls++
			if stalls >= l.opts.StallLimit {
				return errors.New(errors.ErrCodeNonTerminating,
					"clustering reported progress for %d levels without shrinking the graph", stalls)
			}
		} else {
			stalls = 0
		}
		src, results = next, nextResults
	}

	l.opts.Logger.Info("reached top level, composing positions",
		"communities", src.NodeCount(),
		"depth", l.depth)

	if err := l.compose(ctx, src, results); err != nil {
		return err
	}

	l.opts.Logger.Info("layout complete",
		"nodes", len(l.positions),
		"depth", l.depth,
		"communities", l.arena.len(),
		"duration", time.Since(start))
	return nil
}

// buildLevel clusters src, coarsens it and lays out every community of the
// coarsened graph. prior holds the results of the previous level.
func (l *Layout) buildLevel(ctx context.Context, lvl int, src graph.View, prior map[string]Result) (*community.Graph, map[string]Result, *community.Clustering, error) {
	start := time.Now()

	c, err := l.opts.Detector.Detect(ctx, src)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("detect communities: %w", err)
	}
	if c == nil || c.NodeCount() != src.NodeCount() {
		return nil, nil, nil, errors.New(errors.ErrCodeInconsistentClustering,
			"clustering does not cover the %d nodes of the level", src.NodeCount())
	}
	next, err := l.opts.Coarsen(src, c)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("coarsen: %w", err)
	}

	stats := LevelStats{
		Level:       lvl,
		Nodes:       src.NodeCount(),
		Edges:       edgeCount(src),
		Communities: next.NodeCount(),
		CanCoarsen:  c.CanCoarsen(),
	}
	l.opts.Logger.Info("found communities", "level", lvl, "communities", stats.Communities)

	results := make(map[string]Result, next.NodeCount())
	for _, id := range next.Nodes() {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		r, s, err := l.layoutCommunity(ctx, src, next.Members(id), prior)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("community %s: %w", id, err)
		}
		switch s.(type) {
		case physicsStrategy:
			stats.Physics++
		case isolateStrategy:
			stats.Isolates++
		}
		results[id] = r
	}

	stats.Duration = time.Since(start)
	l.levels = append(l.levels, level{graph: src, clustering: c, stats: stats})
	observability.Layout().OnLevel(ctx, lvl, stats.Nodes, stats.Communities, stats.Duration)
	return next, results, c, nil
}

func edgeCount(g graph.View) int {
	if ec, ok := g.(interface{ EdgeCount() int }); ok {
		return ec.EdgeCount()
	}
	n := 0
	for _, id := range g.Nodes() {
		for _, nb := range g.Neighbors(id) {
			if nb != id {
				n++
			}
		}
	}
	return n / 2
}
