package layout

import (
	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// extract builds the internal graph of one community. Members keep their
// order; radii and nested graphs come from prior, the results of the level
// below. Only edges with both ends in the community are kept, each once.
func extract(parent graph.View, members []string, prior map[string]Result, radius float64) (*InternalGraph, error) {
	ig := &InternalGraph{Nodes: make([]Node, 0, len(members))}
	index := make(map[string]int, len(members))

	for _, id := range members {
		if !parent.HasNode(id) {
			return nil, errors.New(errors.ErrCodeInconsistentClustering,
				"community member %q is not part of the level graph", id)
		}
		if _, dup := index[id]; dup {
			return nil, errors.New(errors.ErrCodeInconsistentClustering,
				"node %q is assigned to a community twice", id)
		}
		n := Node{ID: id, Index: len(ig.Nodes), Radius: radius, Child: NoHandle}
		if r, ok := prior[id]; ok {
			n.Radius = r.Size.R
			n.Sized = true
			n.Child = r.Graph
		}
		index[id] = n.Index
		ig.Nodes = append(ig.Nodes, n)
	}

	for i, id := range members {
		for _, nb := range parent.Neighbors(id) {
			if j, ok := index[nb]; ok && j > i {
				ig.Edges = append(ig.Edges, Edge{Source: i, Target: j})
			}
		}
	}
	return ig, nil
}
