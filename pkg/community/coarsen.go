package community

import (
	"fmt"
	"slices"

	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// Graph is a coarsened level. Each node stands for one cluster of the level
// below; its members are recoverable with [Graph.Members].
//
// Links between clusters are aggregated into a single weighted edge whose
// weight is the sum of the underlying edge weights. Links inside a cluster
// become self-loop weight on the cluster node.
type Graph struct {
	*graph.Graph
	members map[string][]string
}

// Members returns the IDs, in the level below, that make up community id.
func (g *Graph) Members(id string) []string {
	return slices.Clone(g.members[id])
}

// ID returns the node ID used for cluster k in a coarsened graph.
func ID(k int) string { return fmt.Sprintf("c%d", k) }

// Coarsen builds the community graph of g under c.
//
// Returns an INCONSISTENT_CLUSTERING error when some node of g, or some
// neighbour reached through g's adjacency, has no cluster in c.
func Coarsen(g graph.View, c *Clustering) (*Graph, error) {
	out := &Graph{
		Graph:   graph.New(),
		members: make(map[string][]string, c.Count()),
	}
	for k := 0; k < c.Count(); k++ {
		id := ID(k)
		members := c.Members(k)
		if err := out.AddNode(graph.Node{ID: id, Meta: graph.Metadata{"size": len(members)}}); err != nil {
			return nil, fmt.Errorf("add community %s: %w", id, err)
		}
		out.members[id] = members
	}

	order := g.Nodes()
	if len(order) != c.NodeCount() {
		return nil, errors.New(errors.ErrCodeInconsistentClustering,
			"clustering covers %d nodes, graph has %d", c.NodeCount(), len(order))
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	loops, _ := g.(graph.SelfLooper)
	for i, u := range order {
		cu, ok := c.ClusterOf(u)
		if !ok {
			return nil, errors.New(errors.ErrCodeInconsistentClustering, "node %q has no cluster assignment", u)
		}
		if loops != nil {
			if w := loops.SelfLoop(u); w > 0 {
				if err := out.AddWeight(ID(cu), ID(cu), w); err != nil {
					return nil, err
				}
			}
		}
		for _, v := range g.Neighbors(u) {
			j, ok := pos[v]
			if !ok {
				return nil, errors.New(errors.ErrCodeInconsistentClustering, "neighbour %q of %q is not part of the graph", v, u)
			}
			if j <= i {
				continue
			}
			cv, ok := c.ClusterOf(v)
			if !ok {
				return nil, errors.New(errors.ErrCodeInconsistentClustering, "node %q has no cluster assignment", v)
			}
			w := g.Weight(u, v)
			if w <= 0 {
				w = 1
			}
			if err := out.AddWeight(ID(cu), ID(cv), w); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
