// Package graph provides the undirected host graph consumed by the layout
// engine.
//
// # Overview
//
// hclayout lays out large graphs by grouping nodes into communities. The
// engine only needs a few read-only primitives from the graph it works on,
// captured by the [View] interface: count the nodes, list them in a stable
// order, test membership, enumerate a node's neighbours and read an edge
// weight. [Graph] is the default implementation and is also what every
// coarsened community level is built from.
//
// # Basic Usage
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "a"})
//	g.AddNode(graph.Node{ID: "b"})
//	g.AddEdge(graph.Edge{From: "a", To: "b"})
//
// Nodes and edges keep insertion order, so two runs over the same input visit
// everything in the same sequence.
//
// # Filtering
//
// The graph is simple by construction. [Graph.AddEdge] drops self-loops and
// repeated edges without error. [Graph.AddWeight] is the accumulating variant
// used when coarsening: parallel links between two communities sum their
// weights, and links inside one community are kept as self-loop weight
// ([Graph.SelfLoop]) rather than adjacency.
//
// # Gonum
//
// [Gonum] converts any [View] into a gonum simple.WeightedUndirectedGraph for
// the algorithms in gonum.org/v1/gonum/graph.
package graph
