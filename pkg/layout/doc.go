// Package layout computes multilevel hierarchical community layouts.
//
// # Overview
//
// Force-directed layouts of large flat graphs converge slowly and end up as
// unreadable hairballs. This package instead groups nodes into communities,
// groups those communities again, and so on until the clustering stops making
// progress. Each community is laid out on its own, and the results are
// composed bottom-up into one position per original node.
//
// # Basic Usage
//
//	l, err := layout.New(g, layout.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	if err := l.Run(ctx); err != nil {
//	    return err
//	}
//	p, ok := l.NodePosition("alice")
//
// # Hierarchy
//
// [Layout.Run] repeats three steps per level: a [community.Detector] clusters
// the current graph, a [Coarsener] turns every cluster into one node of the
// next graph, and every cluster is laid out. The loop body runs at least
// once and stops when the clustering reports CanCoarsen=false. A detector
// that never stops is cut off after [Options.MaxLevels] levels, or after
// [Options.StallLimit] consecutive levels that do not shrink the graph, with
// a NON_TERMINATING error.
//
// # Community Layout
//
// The members of a community form an [InternalGraph]: the member nodes plus
// the edges between them. Edges that leave the community are dropped; the
// coarsened graph of the next level carries them instead. A member that is
// itself a community from the level below keeps the radius of its own
// layout, so nodes grow as they absorb nested content.
//
// Communities with internal edges run a short force simulation (package
// force): repulsion of -8r per node, links with a rest length of 1.1 times
// the sum of both radii, and collision circles of 1.2r. Communities without
// edges are packed on a grid, or scattered in a disk with
// [IsolatesRandom]. Either way the members are finally centered on their
// minimum enclosing circle, whose radius becomes the community's radius one
// level up.
//
// Internal graphs are stored in an arena and referenced by [Handle]; the
// results of one level are passed to the next in an explicit map.
//
// # Queries
//
// After Run, [Layout.NodePosition], [Layout.Depth], [Layout.GroupsAtLevel]
// and [Layout.Hierarchy] read the finished state. Before Run they report
// nothing rather than failing.
package layout
