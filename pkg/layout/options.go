package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hclayout/pkg/community"
	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultNodeRadius is the radius of an original graph node.
	DefaultNodeRadius = 5.0

	// DefaultLinkDistance is the rest length of a link that touches a node
	// without a sub-layout.
	DefaultLinkDistance = 80.0

	// DefaultFixedIterations is the step count used by IterationsFixed.
	DefaultFixedIterations = 100

	// DefaultCollideIterations is the number of collision relaxation passes
	// per simulation step.
	DefaultCollideIterations = 1

	// DefaultSettlePasses bounds the overlap removal run after each
	// simulation.
	DefaultSettlePasses = 64

	// DefaultMaxLevels caps the number of coarsening iterations.
	DefaultMaxLevels = 64

	// DefaultStallLimit is the number of consecutive levels that may fail to
	// shrink the graph while still reporting CanCoarsen.
	DefaultStallLimit = 3

	// DefaultSeed seeds the simulation jiggle and random isolate placement.
	DefaultSeed = uint64(1)
)

// IsolatePolicy selects how edge-less communities are packed.
type IsolatePolicy string

// Isolate placement policies.
const (
	// IsolatesGrid places nodes row by row on a square lattice.
	IsolatesGrid IsolatePolicy = "grid"
	// IsolatesRandom scatters nodes uniformly in a disk of radius 2n.
	IsolatesRandom IsolatePolicy = "random"
)

// IterationPolicy selects the number of simulation steps per community.
type IterationPolicy string

// Iteration policies.
const (
	// IterationsAdaptive runs max(2, min(n, 30 ln n)) steps.
	IterationsAdaptive IterationPolicy = "adaptive"
	// IterationsFixed runs FixedIterations steps regardless of size.
	IterationsFixed IterationPolicy = "fixed"
)

// Coarsener builds the next hierarchy level from a graph and its clustering.
type Coarsener func(g graph.View, c *community.Clustering) (*community.Graph, error)

// =============================================================================
// Options
// =============================================================================

// Options configures a [Layout]. The zero value is usable: [Options.SetDefaults]
// fills every unset field.
type Options struct {
	// Detector groups the nodes of each level. Defaults to [community.Louvain].
	Detector community.Detector `toml:"-" json:"-"`
	// Coarsen builds the next level. Defaults to [community.Coarsen].
	Coarsen Coarsener `toml:"-" json:"-"`

	NodeRadius        float64         `toml:"node_radius" json:"node_radius,omitempty"`
	LinkDistance      float64         `toml:"link_distance" json:"link_distance,omitempty"`
	Isolates          IsolatePolicy   `toml:"isolates" json:"isolates,omitempty"`
	// IsolateSpacing is the grid pitch of IsolatesGrid. It defaults to
	// NodeRadius, and the pitch never drops below the largest diameter of the
	// packed nodes, so communities of grown circles do not overlap.
	IsolateSpacing    float64         `toml:"isolate_spacing" json:"isolate_spacing,omitempty"`
	Iterations        IterationPolicy `toml:"iterations" json:"iterations,omitempty"`
	FixedIterations   int             `toml:"fixed_iterations" json:"fixed_iterations,omitempty"`
	CollideIterations int             `toml:"collide_iterations" json:"collide_iterations,omitempty"`
	// SettlePasses bounds the overlap removal after each simulation. Zero
	// means DefaultSettlePasses; a negative value turns it off.
	SettlePasses      int             `toml:"settle_passes" json:"settle_passes,omitempty"`
	MaxLevels         int             `toml:"max_levels" json:"max_levels,omitempty"`
	StallLimit        int             `toml:"stall_limit" json:"stall_limit,omitempty"`
	Seed              uint64          `toml:"seed" json:"seed,omitempty"`

	Logger *log.Logger `toml:"-" json:"-"`
}

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Detector == nil {
		o.Detector = community.Louvain{}
	}
	if o.Coarsen == nil {
		o.Coarsen = community.Coarsen
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.LinkDistance == 0 {
		o.LinkDistance = DefaultLinkDistance
	}
	if o.Isolates == "" {
		o.Isolates = IsolatesGrid
	}
	if o.IsolateSpacing == 0 {
		o.IsolateSpacing = o.NodeRadius
	}
	if o.Iterations == "" {
		o.Iterations = IterationsAdaptive
	}
	if o.FixedIterations == 0 {
		o.FixedIterations = DefaultFixedIterations
	}
	if o.CollideIterations == 0 {
		o.CollideIterations = DefaultCollideIterations
	}
	if o.SettlePasses == 0 {
		o.SettlePasses = DefaultSettlePasses
	}
	if o.MaxLevels == 0 {
		o.MaxLevels = DefaultMaxLevels
	}
	if o.StallLimit == 0 {
		o.StallLimit = DefaultStallLimit
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call it after SetDefaults.
func (o *Options) Validate() error {
	for _, check := range []error{
		errors.ValidatePositive("node radius", o.NodeRadius),
		errors.ValidatePositive("link distance", o.LinkDistance),
		errors.ValidatePositive("isolate spacing", o.IsolateSpacing),
		errors.ValidateOneOf("isolate policy", string(o.Isolates), string(IsolatesGrid), string(IsolatesRandom)),
		errors.ValidateOneOf("iteration policy", string(o.Iterations), string(IterationsAdaptive), string(IterationsFixed)),
		errors.ValidateMinInt("fixed iterations", o.FixedIterations, 1),
		errors.ValidateMinInt("collide iterations", o.CollideIterations, 1),
		errors.ValidateMinInt("max levels", o.MaxLevels, 1),
		errors.ValidateMinInt("stall limit", o.StallLimit, 1),
	} {
		if check != nil {
			return check
		}
	}
	return nil
}
