package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/hclayout/pkg/graph"
	"github.com/matzehuels/hclayout/pkg/layout"
)

type positions struct {
	Depth  int        `json:"depth"`
	Radius float64    `json:"radius"`
	Nodes  []position `json:"nodes"`
}

type position struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group *int    `json:"group,omitempty"`
}

type groups struct {
	Level  int            `json:"level"`
	Count  int            `json:"count"`
	Groups map[string]int `json:"groups"`
}

// WriteJSON encodes a graph as JSON and writes it to w.
// The output can be re-imported with [ReadJSON]. Edge weights other than 1
// are written out.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		nd := node{ID: id}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		ed := edge{From: e.From, To: e.To}
		if wt := g.Weight(e.From, e.To); wt != 1 {
			ed.Weight = wt
		}
		out.Edges = append(out.Edges, ed)
	}
	return encode(w, out)
}

// WritePositions writes the global node positions of a finished layout in
// input order. When group is non-negative every node also carries its
// cluster index from [layout.Layout.GroupsAtLevel].
func WritePositions(l *layout.Layout, group int, w io.Writer) error {
	pos := l.Positions()
	if pos == nil {
		return fmt.Errorf("layout has not been run")
	}
	out := positions{Depth: l.Depth(), Nodes: make([]position, 0, len(pos))}
	if top, ok := l.TopLayout(); ok {
		out.Radius = top.Size.R
	}

	var clusters map[string]int
	if group >= 0 {
		clusters = l.GroupsAtLevel(group)
	}
	if g, _, ok := l.Level(0); ok {
		for _, id := range g.Nodes() {
			p := pos[id]
			n := position{ID: id, X: p.X, Y: p.Y}
			if k, ok := clusters[id]; ok {
				n.Group = &k
			}
			out.Nodes = append(out.Nodes, n)
		}
	}
	return encode(w, out)
}

// WriteHierarchy writes the nested community circles of a finished layout.
func WriteHierarchy(l *layout.Layout, w io.Writer) error {
	h := l.Hierarchy()
	if h == nil {
		return fmt.Errorf("layout has not been run")
	}
	return encode(w, h)
}

// WriteGroups writes the cluster assignment at the given tree depth.
func WriteGroups(l *layout.Layout, level int, w io.Writer) error {
	g := l.GroupsAtLevel(level)
	if g == nil {
		return fmt.Errorf("layout has not been run")
	}
	count := 0
	for _, k := range g {
		count = max(count, k+1)
	}
	return encode(w, groups{Level: max(level, 0), Count: count, Groups: g})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
