package io

import (
	"fmt"
	"io"
	"strconv"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// ReadDOT decodes a Graphviz DOT graph from r.
//
// Directed and undirected graphs are both accepted; edge direction is
// ignored. Node attributes end up in the node's metadata. Nodes keep the
// order in which they first appear and self-loops are dropped.
func ReadDOT(r io.Reader) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read DOT: %w", err)
	}

	b := &dotBuilder{UndirectedGraph: simple.NewUndirectedGraph()}
	if err := dot.Unmarshal(data, b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode DOT")
	}

	g := graph.New()
	for _, n := range b.order {
		if err := errors.ValidateNodeID(n.name); err != nil {
			return nil, err
		}
		if err := g.AddNode(graph.Node{ID: n.name, Meta: n.meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s", n.name)
		}
	}
	for _, e := range b.edges {
		if err := g.AddEdge(graph.Edge{From: e[0].name, To: e[1].name}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %s-%s", e[0].name, e[1].name)
		}
	}
	return g, nil
}

// dotNode is a decoded node: gonum assigns the numeric ID, the DOT name
// arrives through SetDOTID.
type dotNode struct {
	id   int64
	name string
	meta graph.Metadata
}

func (n *dotNode) ID() int64 { return n.id }

func (n *dotNode) SetDOTID(id string) {
	if s, err := strconv.Unquote(id); err == nil {
		id = s
	}
	n.name = id
}

func (n *dotNode) SetAttribute(attr encoding.Attribute) error {
	if n.meta == nil {
		n.meta = graph.Metadata{}
	}
	n.meta[attr.Key] = attr.Value
	return nil
}

// dotBuilder receives the decoded graph. It records insertion order, which
// the embedded gonum graph does not keep, and drops self edges, which it
// would reject.
type dotBuilder struct {
	*simple.UndirectedGraph
	order []*dotNode
	edges [][2]*dotNode
}

func (b *dotBuilder) NewNode() gonumgraph.Node {
	return &dotNode{id: b.UndirectedGraph.NewNode().ID()}
}

func (b *dotBuilder) AddNode(n gonumgraph.Node) {
	b.UndirectedGraph.AddNode(n)
	if d, ok := n.(*dotNode); ok {
		b.order = append(b.order, d)
	}
}

func (b *dotBuilder) SetEdge(e gonumgraph.Edge) {
	from, okFrom := e.From().(*dotNode)
	to, okTo := e.To().(*dotNode)
	if !okFrom || !okTo || from.id == to.id {
		return
	}
	b.UndirectedGraph.SetEdge(e)
	b.edges = append(b.edges, [2]*dotNode{from, to})
}
