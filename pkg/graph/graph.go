package graph

import (
	"errors"
	"maps"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] and
	// [Graph.AddWeight] when the From node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] and
	// [Graph.AddWeight] when the To node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrNegativeWeight is returned by [Graph.AddWeight] for weights below
	// zero. Modularity based clustering is undefined for negative weights.
	ErrNegativeWeight = errors.New("edge weight must not be negative")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// It carries through whatever the input format provided (labels, payload)
// and is never interpreted by the layout.
type Metadata map[string]any

// Node is a vertex of the host graph.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID   string   // Unique identifier
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge is an undirected connection between two nodes. Weight is only
// honoured by [Graph.AddWeight]; [Graph.AddEdge] always stores weight 1.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// View is the read-only surface the layout engine needs from a graph.
// Implementations must report nodes and neighbours in a stable order so that
// repeated runs over the same input are deterministic.
type View interface {
	// NodeCount returns the number of nodes.
	NodeCount() int
	// Nodes returns all node IDs in a stable order.
	Nodes() []string
	// HasNode reports whether id is part of the graph.
	HasNode(id string) bool
	// Neighbors returns the IDs adjacent to id, excluding id itself.
	Neighbors(id string) []string
	// Weight returns the weight of the edge between u and v, or 0.
	Weight(u, v string) float64
}

// SelfLooper is implemented by views that keep self-loop weight separately
// from their adjacency. Coarsened graphs use it to remember the weight
// internal to a community.
type SelfLooper interface {
	SelfLoop(id string) float64
}

// Graph is an undirected, weighted graph with string identifiers.
//
// Nodes and edges keep their insertion order, which makes every traversal
// deterministic. Self-loops never appear in the adjacency: [Graph.AddEdge]
// drops them and [Graph.AddWeight] accumulates them separately (see
// [Graph.SelfLoop]). Parallel edges collapse into one.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation; concurrent reads are fine.
type Graph struct {
	nodes  []*Node
	index  map[string]int
	adj    [][]int
	weight []map[int]float64
	loops  []float64
	edges  [][2]int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Meta field is
// automatically initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := n
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, &node)
	g.adj = append(g.adj, nil)
	g.weight = append(g.weight, nil)
	g.loops = append(g.loops, 0)
	return nil
}

// AddEdge adds an unweighted undirected edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is
// missing. Self-loops and repeated edges are silently ignored.
func (g *Graph) AddEdge(e Edge) error {
	u, v, err := g.endpoints(e.From, e.To)
	if err != nil {
		return err
	}
	if u == v {
		return nil
	}
	if _, ok := g.weight[u][v]; ok {
		return nil
	}
	g.link(u, v, 1)
	return nil
}

// AddWeight adds w to the weight of the edge between from and to, creating
// the edge if needed. When from equals to the weight is recorded as a
// self-loop instead of an adjacency entry.
func (g *Graph) AddWeight(from, to string, w float64) error {
	if w < 0 {
		return ErrNegativeWeight
	}
	u, v, err := g.endpoints(from, to)
	if err != nil {
		return err
	}
	if u == v {
		g.loops[u] += w
		return nil
	}
	if _, ok := g.weight[u][v]; ok {
		g.weight[u][v] += w
		g.weight[v][u] += w
		return nil
	}
	g.link(u, v, w)
	return nil
}

func (g *Graph) endpoints(from, to string) (int, int, error) {
	u, ok := g.index[from]
	if !ok {
		return 0, 0, ErrUnknownSourceNode
	}
	v, ok := g.index[to]
	if !ok {
		return 0, 0, ErrUnknownTargetNode
	}
	return u, v, nil
}

func (g *Graph) link(u, v int, w float64) {
	if g.weight[u] == nil {
		g.weight[u] = make(map[int]float64)
	}
	if g.weight[v] == nil {
		g.weight[v] = make(map[int]float64)
	}
	g.weight[u][v] = w
	g.weight[v][u] = w
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	g.edges = append(g.edges, [2]int{u, v})
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct undirected edges, excluding
// self-loops.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all node IDs in insertion order. The slice is a copy.
func (g *Graph) Nodes() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Neighbors returns the IDs adjacent to id in edge insertion order.
// Returns nil if id is unknown.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.nodes[j].ID
	}
	return out
}

// Weight returns the weight of the edge between u and v, or 0 when the edge
// does not exist. Weight(u, u) returns the self-loop weight.
func (g *Graph) Weight(u, v string) float64 {
	i, ok := g.index[u]
	if !ok {
		return 0
	}
	j, ok := g.index[v]
	if !ok {
		return 0
	}
	if i == j {
		return g.loops[i]
	}
	return g.weight[i][j]
}

// SelfLoop returns the accumulated self-loop weight of id.
func (g *Graph) SelfLoop(id string) float64 {
	if i, ok := g.index[id]; ok {
		return g.loops[i]
	}
	return 0
}

// Edges returns all edges in insertion order, with their weights.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for k, e := range g.edges {
		out[k] = Edge{
			From:   g.nodes[e[0]].ID,
			To:     g.nodes[e[1]].ID,
			Weight: g.weight[e[0]][e[1]],
		}
	}
	return out
}

// Clone returns a deep copy of the graph. Metadata maps are copied shallowly.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.nodes {
		_ = c.AddNode(Node{ID: n.ID, Meta: maps.Clone(n.Meta)})
	}
	for i, w := range g.loops {
		c.loops[i] = w
	}
	for _, e := range g.edges {
		c.link(e[0], e[1], g.weight[e[0]][e[1]])
	}
	return c
}
