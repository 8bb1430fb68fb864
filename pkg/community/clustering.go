package community

import (
	"slices"

	"github.com/matzehuels/hclayout/pkg/errors"
)

// Clustering assigns every node of one hierarchy level to exactly one
// cluster. Cluster indices are dense, start at 0 and follow the order in
// which clusters first appear in the node order the clustering was built
// from.
type Clustering struct {
	clusterOf  map[string]int
	members    [][]string
	canCoarsen bool
}

// NewClustering builds a clustering from raw labels.
//
// order lists every node of the level in traversal order; labels maps each
// of them to an arbitrary cluster label. Labels are renumbered by first
// appearance so that equal inputs always produce equal indices. Returns an
// INCONSISTENT_CLUSTERING error if a node in order has no label.
//
// canCoarsen is the termination signal for the hierarchy builder: false
// means running another level would not produce a smaller graph.
func NewClustering(order []string, labels map[string]int, canCoarsen bool) (*Clustering, error) {
	c := &Clustering{
		clusterOf:  make(map[string]int, len(order)),
		canCoarsen: canCoarsen,
	}
	renumber := make(map[int]int)
	for _, id := range order {
		label, ok := labels[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeInconsistentClustering, "node %q has no cluster assignment", id)
		}
		k, seen := renumber[label]
		if !seen {
			k = len(c.members)
			renumber[label] = k
			c.members = append(c.members, nil)
		}
		c.clusterOf[id] = k
		c.members[k] = append(c.members[k], id)
	}
	return c, nil
}

// Singletons returns the clustering that puts every node in its own cluster.
// It never allows further coarsening.
func Singletons(order []string) *Clustering {
	labels := make(map[string]int, len(order))
	for i, id := range order {
		labels[id] = i
	}
	c, _ := NewClustering(order, labels, false)
	return c
}

// ClusterOf returns the cluster index of id.
func (c *Clustering) ClusterOf(id string) (int, bool) {
	k, ok := c.clusterOf[id]
	return k, ok
}

// Count returns the number of clusters.
func (c *Clustering) Count() int { return len(c.members) }

// NodeCount returns the number of clustered nodes.
func (c *Clustering) NodeCount() int { return len(c.clusterOf) }

// Members returns the nodes of cluster k in traversal order.
func (c *Clustering) Members(k int) []string {
	if k < 0 || k >= len(c.members) {
		return nil
	}
	return slices.Clone(c.members[k])
}

// CanCoarsen reports whether coarsening by this clustering makes progress.
func (c *Clustering) CanCoarsen() bool { return c.canCoarsen }
