// Package pkg provides the libraries behind hclayout, a multilevel layout
// engine for large undirected graphs.
//
// # Overview
//
// hclayout clusters a graph into communities, lays out every community on
// its own, coarsens the graph so that each community becomes one node and
// repeats on the smaller graph. The nested layouts are composed top-down
// into global positions. The pkg directory is organized into four areas:
//
//  1. [graph], [geom] - Data model and 2D geometry
//  2. [community], [force], [layout] - The layout engine
//  3. [io] - Reading graphs and writing results
//  4. [pipeline], [cache], [config], [observability] - Orchestration
//
// # Architecture
//
// The typical data flow through hclayout:
//
//	JSON / DOT file
//	       ↓
//	  [io] package (decode into a graph)
//	       ↓
//	  [layout] package (detect → coarsen → lay out, per level)
//	       ↓
//	  [layout] package (compose global positions)
//	       ↓
//	  positions / hierarchy / groups JSON
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/hclayout/pkg/io"
//	    "github.com/matzehuels/hclayout/pkg/layout"
//	)
//
//	g, _ := io.Import("graph.json", "")
//	l, _ := layout.New(g, layout.Options{})
//	if err := l.Run(context.Background()); err != nil {
//	    panic(err)
//	}
//	io.WritePositions(l, -1, os.Stdout)
//
// # Main Packages
//
// [graph] - Undirected weighted graphs with node metadata and insertion
// order, plus the read-only View the engine works on.
//
// [geom] - Points, circles and smallest enclosing circles.
//
// [community] - Community detection (Louvain and gonum modularity) and
// coarsening of a clustered graph.
//
// [force] - The force simulation that lays out connected communities.
//
// [layout] - The multilevel engine and its queries: positions, group
// membership at a depth and the hierarchy of circles.
//
// [io] - JSON node-link and Graphviz DOT import, JSON export.
//
// [pipeline] - Read → layout → export with artifact caching, shared by the
// CLI and tests.
//
// [cache] - File and null caches with content-addressed keys.
//
// [config] - TOML configuration for layout and detector options.
//
// [observability] - Layout and pipeline hooks with a Prometheus
// implementation.
//
// # Testing
//
//	go test ./pkg/...             # All tests
//	go test -run Properties ./... # Property-based layout checks
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/graph
// [geom]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/geom
// [community]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/community
// [force]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/force
// [layout]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/hclayout/pkg/observability
package pkg
