package community

import (
	"context"
	"math/rand/v2"

	gonumgraph "gonum.org/v1/gonum/graph"
	gcommunity "gonum.org/v1/gonum/graph/community"

	"github.com/matzehuels/hclayout/pkg/graph"
)

// DefaultSeed seeds gonum's Louvain when no seed is configured.
const DefaultSeed = uint64(42)

// Modularity is a [Detector] backed by gonum's Louvain implementation
// (community.Modularize). gonum builds the whole modularity hierarchy at
// once; Modularity keeps only its finest aggregated level so that each call
// still coarsens by one level.
type Modularity struct {
	Resolution float64 // γ; zero means DefaultResolution
	Seed       uint64  // zero means DefaultSeed
}

// Detect implements [Detector].
func (d Modularity) Detect(ctx context.Context, g graph.View) (*Clustering, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolution := d.Resolution
	if resolution == 0 {
		resolution = DefaultResolution
	}
	seed := d.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	gg, ids := graph.Gonum(g)
	if gg.Edges().Len() == 0 {
		return Singletons(ids), nil
	}

	reduced := gcommunity.Modularize(gg, resolution, rand.NewPCG(seed, seed))
	comms := finest(reduced).Communities()

	labels := make(map[string]int, len(ids))
	for k, members := range comms {
		for _, n := range members {
			labels[ids[n.ID()]] = k
		}
	}
	return NewClustering(ids, labels, len(comms) < len(ids))
}

// finest returns the lowest level of a gonum modularity hierarchy. Its
// communities are the result of the first local moving pass, in terms of the
// original nodes. Expanded wraps the parent pointer in an interface, so the
// walk compares concrete pointers to find the bottom.
func finest(r gcommunity.ReducedGraph) gcommunity.ReducedGraph {
	level, ok := r.(*gcommunity.ReducedUndirected)
	if !ok {
		return r
	}
	for {
		below, _ := level.Expanded().(*gcommunity.ReducedUndirected)
		if below == nil {
			return level
		}
		level = below
	}
}

// Quality returns the modularity Q of c on g at the given resolution, as
// computed by gonum. It is used for reporting only.
func Quality(g graph.View, c *Clustering, resolution float64) float64 {
	if resolution == 0 {
		resolution = DefaultResolution
	}
	gg, ids := graph.Gonum(g)
	if gg.Edges().Len() == 0 {
		return 0
	}
	index := make(map[string]int64, len(ids))
	for k, id := range ids {
		index[id] = int64(k)
	}
	comms := make([][]gonumgraph.Node, c.Count())
	for k := range comms {
		for _, id := range c.Members(k) {
			comms[k] = append(comms[k], gg.Node(index[id]))
		}
	}
	return gcommunity.Q(gg, comms, resolution)
}
