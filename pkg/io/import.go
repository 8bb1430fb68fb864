package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// Input formats understood by [Import].
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID   string         `json:"id"`
	Meta graph.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight,omitempty"`
}

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Each node must have an "id" field and may carry a "meta" object. Each edge
// must have "from" and "to" fields that reference node IDs, and may carry a
// positive "weight" (default 1). Self-loops are dropped and repeated edges
// collapse into one (their weights add up).
//
// ReadJSON returns an INVALID_FORMAT error for malformed JSON and an
// INVALID_INPUT error for invalid or duplicate node IDs and for edges that
// reference unknown nodes. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph JSON")
	}

	g := graph.New()
	for _, n := range data.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if err := g.AddNode(graph.Node{ID: n.ID, Meta: n.Meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s", n.ID)
		}
	}
	for _, e := range data.Edges {
		if err := addEdge(g, e.From, e.To, e.Weight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %s-%s", e.From, e.To)
		}
	}
	return g, nil
}

func addEdge(g *graph.Graph, from, to string, w float64) error {
	if from == to {
		if !g.HasNode(from) {
			return graph.ErrUnknownSourceNode
		}
		return nil
	}
	if w < 0 {
		return graph.ErrNegativeWeight
	}
	if w == 0 {
		w = 1
	}
	return g.AddWeight(from, to, w)
}

// FormatOf guesses the input format from the file extension: .dot and .gv
// are DOT, everything else is JSON.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return FormatDOT
	default:
		return FormatJSON
	}
}

// Import reads the graph file at path in the given format. An empty format
// is guessed with [FormatOf].
//
// A missing file is reported as FILE_NOT_FOUND; decoding errors keep the
// codes of [ReadJSON] and [ReadDOT].
func Import(path, format string) (*graph.Graph, error) {
	if format == "" {
		format = FormatOf(path)
	}
	if err := errors.ValidateOneOf("input format", format, FormatJSON, FormatDOT); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatDOT {
		return ReadDOT(f)
	}
	return ReadJSON(f)
}
