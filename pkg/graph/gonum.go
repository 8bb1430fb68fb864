package graph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Gonum converts v into a gonum weighted undirected graph.
//
// Node k of the returned graph has ID k and corresponds to ids[k], where ids
// is v.Nodes(). Edges without an explicit weight get weight 1 so that
// modularity computations treat unweighted inputs as simple graphs.
func Gonum(v View) (*simple.WeightedUndirectedGraph, []string) {
	ids := v.Nodes()
	index := make(map[string]int64, len(ids))
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for k, id := range ids {
		index[id] = int64(k)
		g.AddNode(simple.Node(k))
	}
	for k, id := range ids {
		for _, nb := range v.Neighbors(id) {
			j, ok := index[nb]
			if !ok || j <= int64(k) {
				continue
			}
			w := v.Weight(id, nb)
			if w <= 0 {
				w = 1
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(k), simple.Node(j), w))
		}
	}
	return g, ids
}
