// Package pipeline runs the read → layout → export pipeline for hclayout.
//
// The CLI and tests share this package so that every entry point reads
// graphs, configures the layout and caches artifacts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Import a JSON or DOT graph file
//  2. Layout: Run the multilevel community layout
//  3. Export: Encode positions, the hierarchy or cluster groups as JSON
//
// Artifacts are cached by graph content and options, so a second run on an
// unchanged input skips the layout.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "graph.json",
//	    Kind:  pipeline.KindPositions,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("graph.positions.json", result.Artifact, 0o644)
//
// Run individual stages:
//
//	g, err := runner.Read(ctx, opts)
//	l, err := runner.Layout(ctx, g, opts)
//	data, err := runner.Export(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hclayout/pkg/cache"
	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
	hcio "github.com/matzehuels/hclayout/pkg/io"
	"github.com/matzehuels/hclayout/pkg/layout"
)

// Artifact kinds.
const (
	KindPositions = "positions"
	KindHierarchy = "hierarchy"
	KindGroups    = "groups"
)

// Kinds lists the artifact kinds in display order.
var Kinds = []string{KindPositions, KindHierarchy, KindGroups}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Read options
	Input  string `json:"input"`
	Format string `json:"format,omitempty"` // empty guesses from the extension

	// Layout options
	Layout layout.Options `json:"layout"`

	// Export options
	Kind       string `json:"kind,omitempty"`
	GroupLevel int    `json:"group_level,omitempty"`
	WithGroups bool   `json:"with_groups,omitempty"` // add groups at GroupLevel to positions
	Refresh    bool   `json:"refresh,omitempty"`     // ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID uuid.UUID

	// Graph is the input graph.
	Graph *graph.Graph

	// Layout is the finished layout. It is nil when the artifact came from
	// the cache.
	Layout *layout.Layout

	// Artifact is the exported JSON.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Depth      int
	ReadTime   time.Duration
	LayoutTime time.Duration
	ExportTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Format == "" && o.Input != "" {
		o.Format = hcio.FormatOf(o.Input)
	}
	if o.Kind == "" {
		o.Kind = KindPositions
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Layout.Logger == nil {
		o.Layout.Logger = o.Logger
	}
	o.Layout.SetDefaults()
}

// Validate checks required fields and option values. Call it after
// SetDefaults.
func (o *Options) Validate() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "input file is required")
	}
	for _, check := range []error{
		errors.ValidateOneOf("input format", o.Format, hcio.FormatJSON, hcio.FormatDOT),
		errors.ValidateOneOf("output kind", o.Kind, Kinds...),
		errors.ValidateMinInt("group level", o.GroupLevel, 0),
	} {
		if check != nil {
			return check
		}
	}
	return o.Layout.Validate()
}

// ArtifactKeyOpts returns the cache key options for the exported artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	level := o.GroupLevel
	if o.Kind == KindPositions && !o.WithGroups {
		level = -1
	}
	if o.Kind == KindHierarchy {
		level = -1
	}
	return cache.ArtifactKeyOpts{
		Kind:       o.Kind,
		GroupLevel: level,
		Detector:   fmt.Sprintf("%T%+v", o.Layout.Detector, o.Layout.Detector),
		Layout:     o.Layout,
	}
}
