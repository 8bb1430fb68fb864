package community

import (
	"context"

	"github.com/matzehuels/hclayout/pkg/graph"
)

// Default values for [Louvain].
const (
	// DefaultResolution is the modularity resolution parameter γ.
	DefaultResolution = 1.0

	// DefaultMaxSweeps bounds the local moving phase. Each sweep visits every
	// node once; the phase usually converges after a handful.
	DefaultMaxSweeps = 64

	// minGain is the smallest modularity gain that counts as a move.
	minGain = 1e-12
)

// Louvain is the default [Detector]. It runs the local moving phase of the
// Louvain method once: every node starts in its own cluster and is moved to
// the neighbouring cluster with the largest modularity gain until a sweep
// makes no move. Aggregation is left to [Coarsen], so each hierarchy level
// corresponds to exactly one Louvain level.
//
// Nodes are visited in graph order and ties are broken towards the cluster
// seen first, so the result is fully deterministic.
type Louvain struct {
	Resolution float64 // γ; zero means DefaultResolution
	MaxSweeps  int     // zero means DefaultMaxSweeps
}

// Detect implements [Detector].
func (l Louvain) Detect(ctx context.Context, g graph.View) (*Clustering, error) {
	resolution := l.Resolution
	if resolution == 0 {
		resolution = DefaultResolution
	}
	maxSweeps := l.MaxSweeps
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}

	s := newLouvainState(g)
	if s.m2 > 0 {
		for sweep := 0; sweep < maxSweeps; sweep++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if s.sweep(resolution) == 0 {
				break
			}
		}
	}

	labels := make(map[string]int, len(s.ids))
	distinct := make(map[int]struct{})
	for i, id := range s.ids {
		labels[id] = s.n2c[i]
		distinct[s.n2c[i]] = struct{}{}
	}
	return NewClustering(s.ids, labels, len(distinct) < len(s.ids))
}

type neighbor struct {
	node   int
	weight float64
}

// louvainState is an index based copy of the graph plus per cluster totals.
type louvainState struct {
	ids    []string
	adj    [][]neighbor
	loop   []float64
	degree []float64 // weighted degree, self-loops counted twice
	m2     float64   // twice the total edge weight

	n2c []int
	tot []float64 // sum of degrees per cluster
}

func newLouvainState(g graph.View) *louvainState {
	ids := g.Nodes()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	s := &louvainState{
		ids:    ids,
		adj:    make([][]neighbor, len(ids)),
		loop:   make([]float64, len(ids)),
		degree: make([]float64, len(ids)),
		n2c:    make([]int, len(ids)),
		tot:    make([]float64, len(ids)),
	}
	loops, _ := g.(graph.SelfLooper)
	for i, id := range ids {
		if loops != nil {
			s.loop[i] = loops.SelfLoop(id)
			s.degree[i] += 2 * s.loop[i]
		}
		for _, nb := range g.Neighbors(id) {
			j, ok := index[nb]
			if !ok || j == i {
				continue
			}
			w := g.Weight(id, nb)
			if w <= 0 {
				w = 1
			}
			s.adj[i] = append(s.adj[i], neighbor{node: j, weight: w})
			s.degree[i] += w
		}
	}
	for i := range ids {
		s.m2 += s.degree[i]
		s.n2c[i] = i
		s.tot[i] = s.degree[i]
	}
	return s
}

// sweep visits every node once and returns the number of moves.
func (s *louvainState) sweep(resolution float64) int {
	moves := 0
	weights := make(map[int]float64)
	var order []int
	for i := range s.ids {
		clear(weights)
		order = order[:0]
		own := s.n2c[i]
		weights[own] = 0
		order = append(order, own)
		for _, nb := range s.adj[i] {
			c := s.n2c[nb.node]
			if _, ok := weights[c]; !ok {
				order = append(order, c)
			}
			weights[c] += nb.weight
		}

		s.tot[own] -= s.degree[i]
		best := own
		bestGain := s.gain(i, own, weights[own], resolution)
		for _, c := range order {
			if c == own {
				continue
			}
			if g := s.gain(i, c, weights[c], resolution); g > bestGain+minGain {
				best, bestGain = c, g
			}
		}
		s.tot[best] += s.degree[i]
		if best != own {
			s.n2c[i] = best
			moves++
		}
	}
	return moves
}

// gain is the modularity change, up to a constant factor, of inserting node i
// into cluster c given kin, the weight between i and c's current members.
func (s *louvainState) gain(i, c int, kin, resolution float64) float64 {
	return kin - resolution*s.tot[c]*s.degree[i]/s.m2
}
