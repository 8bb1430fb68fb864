// Package community groups the nodes of one hierarchy level into clusters
// and builds the next, coarser level from them.
//
// A [Detector] returns a [Clustering]: the cluster of every node plus the
// CanCoarsen flag that tells the layout whether another level is worth
// building. [Coarsen] turns a graph and its clustering into a [Graph] whose
// nodes are the clusters.
//
// Two detectors are provided. [Louvain] runs one level of Louvain local
// moving and is deterministic. [Modularity] delegates to gonum's full Louvain
// implementation and keeps the finest level it finds.
package community

import (
	"context"

	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// Detector finds communities in one level of the hierarchy.
//
// Implementations must assign every node of g to exactly one cluster and
// must report CanCoarsen=false once clustering would no longer shrink the
// graph. Detect is called once per level, always with a graph that has at
// least one node.
type Detector interface {
	Detect(ctx context.Context, g graph.View) (*Clustering, error)
}

// DetectorFunc adapts a function to the [Detector] interface.
type DetectorFunc func(ctx context.Context, g graph.View) (*Clustering, error)

// Detect calls f(ctx, g).
func (f DetectorFunc) Detect(ctx context.Context, g graph.View) (*Clustering, error) {
	return f(ctx, g)
}

// Detector names accepted by [New].
const (
	DetectorLouvain    = "louvain"
	DetectorModularity = "modularity"
)

// DetectorNames lists the accepted detector names in display order.
var DetectorNames = []string{DetectorLouvain, DetectorModularity}

// New returns the detector registered under name. Resolution and seed are
// passed on to detectors that use them; zero values select defaults.
func New(name string, resolution float64, seed uint64) (Detector, error) {
	switch name {
	case "", DetectorLouvain:
		return Louvain{Resolution: resolution}, nil
	case DetectorModularity:
		return Modularity{Resolution: resolution, Seed: seed}, nil
	default:
		return nil, errors.ValidateOneOf("detector", name, DetectorNames...)
	}
}
