package io

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
	"github.com/matzehuels/hclayout/pkg/layout"
)

func TestReadJSON(t *testing.T) {
	in := `{
		"nodes": [{"id": "a", "meta": {"label": "A"}}, {"id": "b"}, {"id": "c"}],
		"edges": [
			{"from": "a", "to": "b"},
			{"from": "b", "to": "c", "weight": 2},
			{"from": "c", "to": "c"},
			{"from": "b", "to": "a"}
		]
	}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Nodes() = %v", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if w := g.Weight("b", "c"); w != 2 {
		t.Errorf("Weight(b, c) = %v, want 2", w)
	}
	if w := g.Weight("a", "b"); w != 2 {
		t.Errorf("Weight(a, b) = %v, want 2 after repeated edge", w)
	}
	if n, _ := g.Node("a"); n.Meta["label"] != "A" {
		t.Errorf("meta = %v", n.Meta)
	}
}

func TestReadJSONRepeatedEdges(t *testing.T) {
	in := `{
		"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
		"edges": [
			{"from": "a", "to": "b"},
			{"from": "a", "to": "b"},
			{"from": "b", "to": "a", "weight": 2.5},
			{"from": "b", "to": "c", "weight": 0}
		]
	}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if w := g.Weight("a", "b"); w != 4.5 {
		t.Errorf("Weight(a, b) = %v, want 4.5", w)
	}
	if w := g.Weight("b", "c"); w != 1 {
		t.Errorf("Weight(b, c) = %v, want 1 for an omitted weight", w)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"empty id", `{"nodes": [{"id": ""}]}`, errors.ErrCodeInvalidInput},
		{"duplicate", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, errors.ErrCodeInvalidInput},
		{"unknown endpoint", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, errors.ErrCodeInvalidInput},
		{"unknown loop", `{"nodes": [], "edges": [{"from": "x", "to": "x"}]}`, errors.ErrCodeInvalidInput},
		{"negative weight", `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b", "weight": -1}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestReadDOT(t *testing.T) {
	in := `graph {
		a [shape=box];
		a -- b -- c;
		c -- c;
		b -- a;
		d;
	}`
	g, err := ReadDOT(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadDOT: %v", err)
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("Nodes() = %v", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if n, _ := g.Node("a"); n.Meta["shape"] != "box" {
		t.Errorf("meta = %v", n.Meta)
	}
}

func TestReadDOTDirected(t *testing.T) {
	g, err := ReadDOT(strings.NewReader(`digraph { x -> y; y -> z; }`))
	if err != nil {
		t.Fatalf("ReadDOT: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if !slices.Contains(g.Neighbors("y"), "x") {
		t.Errorf("Neighbors(y) = %v, want x included", g.Neighbors("y"))
	}
}

func TestReadDOTMalformed(t *testing.T) {
	_, err := ReadDOT(strings.NewReader(`graph { a -- `))
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"g.json":   FormatJSON,
		"g.dot":    FormatDOT,
		"g.GV":     FormatDOT,
		"graph":    FormatJSON,
		"a/b.json": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	dotPath := filepath.Join(dir, "g.gv")
	if err := os.WriteFile(dotPath, []byte("graph { a -- b }"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := Import(dotPath, "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}

	_, err = Import(filepath.Join(dir, "missing.json"), "")
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}

	_, err = Import(dotPath, "yaml")
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("bad format: err = %v, want INVALID_CONFIG", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "a", Meta: graph.Metadata{"k": "v"}})
	_ = g.AddNode(graph.Node{ID: "b"})
	_ = g.AddNode(graph.Node{ID: "c"})
	_ = g.AddEdge(graph.Edge{From: "a", To: "b"})
	_ = g.AddWeight("b", "c", 3)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !slices.Equal(back.Nodes(), g.Nodes()) {
		t.Errorf("nodes = %v, want %v", back.Nodes(), g.Nodes())
	}
	if back.Weight("a", "b") != 1 || back.Weight("b", "c") != 3 {
		t.Errorf("weights = %v, %v", back.Weight("a", "b"), back.Weight("b", "c"))
	}
	if n, _ := back.Node("a"); n.Meta["k"] != "v" {
		t.Errorf("meta = %v", n.Meta)
	}
}

func runLayout(t *testing.T) *layout.Layout {
	t.Helper()
	g, err := ReadJSON(strings.NewReader(`{
		"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "x"}, {"id": "y"}, {"id": "z"}],
		"edges": [
			{"from": "a", "to": "b"}, {"from": "b", "to": "c"}, {"from": "c", "to": "a"},
			{"from": "x", "to": "y"}, {"from": "y", "to": "z"}, {"from": "z", "to": "x"},
			{"from": "a", "to": "x"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.New(g, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestWritePositions(t *testing.T) {
	l := runLayout(t)

	var buf bytes.Buffer
	if err := WritePositions(l, 0, &buf); err != nil {
		t.Fatalf("WritePositions: %v", err)
	}
	var out positions
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Depth != 1 || len(out.Nodes) != 6 {
		t.Fatalf("depth %d, %d nodes", out.Depth, len(out.Nodes))
	}
	if out.Nodes[0].ID != "a" || out.Nodes[5].ID != "z" {
		t.Errorf("order = %s..%s, want a..z", out.Nodes[0].ID, out.Nodes[5].ID)
	}
	for _, n := range out.Nodes {
		if n.Group == nil {
			t.Fatalf("node %s has no group", n.ID)
		}
		p, _ := l.NodePosition(n.ID)
		if p.X != n.X || p.Y != n.Y {
			t.Errorf("node %s at (%v, %v), layout says %v", n.ID, n.X, n.Y, p)
		}
	}

	buf.Reset()
	if err := WritePositions(l, -1, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"group"`) {
		t.Error("groups written with negative level")
	}
}

func TestWriteGroupsAndHierarchy(t *testing.T) {
	l := runLayout(t)

	var buf bytes.Buffer
	if err := WriteGroups(l, 0, &buf); err != nil {
		t.Fatalf("WriteGroups: %v", err)
	}
	var gr groups
	if err := json.Unmarshal(buf.Bytes(), &gr); err != nil {
		t.Fatal(err)
	}
	if gr.Count != 2 || len(gr.Groups) != 6 {
		t.Errorf("count %d, %d entries", gr.Count, len(gr.Groups))
	}

	buf.Reset()
	if err := WriteHierarchy(l, &buf); err != nil {
		t.Fatalf("WriteHierarchy: %v", err)
	}
	var h layout.HierarchyNode
	if err := json.Unmarshal(buf.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if len(h.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(h.Children))
	}
}

func TestWriteBeforeRun(t *testing.T) {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "a"})
	l, err := layout.New(g, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if WritePositions(l, 0, &buf) == nil {
		t.Error("WritePositions before Run: expected error")
	}
	if WriteHierarchy(l, &buf) == nil {
		t.Error("WriteHierarchy before Run: expected error")
	}
	if WriteGroups(l, 0, &buf) == nil {
		t.Error("WriteGroups before Run: expected error")
	}
}
