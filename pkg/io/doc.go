// Package io reads undirected graphs from JSON and DOT files and writes
// layout results as JSON.
//
// # Overview
//
// The layout engine works on [graph.Graph] values. This package is the
// boundary to files: it decodes input graphs and encodes positions, the
// community hierarchy and cluster assignments for downstream tools.
//
// # JSON Format
//
// The input format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "a"},
//	    {"id": "b", "meta": {"label": "B"}},
//	    {"id": "c"}
//	  ],
//	  "edges": [
//	    {"from": "a", "to": "b"},
//	    {"from": "b", "to": "c", "weight": 2}
//	  ]
//	}
//
// Node IDs must be unique and non-empty. Edges are undirected: "from" and
// "to" only name the endpoints. A missing weight counts as 1. Self-loops
// are ignored.
//
// # DOT Format
//
// Graphviz files are parsed with gonum's DOT decoder. Both graph and digraph
// are accepted and edge direction is dropped. Node attributes are kept as
// string metadata:
//
//	graph {
//	  a [label="A"];
//	  a -- b -- c;
//	}
//
// # Output
//
// [WritePositions] writes one entry per node in input order:
//
//	{
//	  "depth": 1,
//	  "radius": 42.5,
//	  "nodes": [{"id": "a", "x": -3.2, "y": 7.9, "group": 0}]
//	}
//
// [WriteHierarchy] writes the nested circles returned by
// [layout.Layout.Hierarchy] and [WriteGroups] the cluster map returned by
// [layout.Layout.GroupsAtLevel]. All output is indented with two spaces.
package io
