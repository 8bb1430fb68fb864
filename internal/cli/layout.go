package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hclayout/pkg/config"
	"github.com/matzehuels/hclayout/pkg/layout"
	"github.com/matzehuels/hclayout/pkg/pipeline"
)

// layoutFlags are shared by every command that runs a layout. Values only
// override the config file when the flag is set explicitly.
type layoutFlags struct {
	output  string
	format  string
	noCache bool
	refresh bool

	nodeRadius   float64
	linkDistance float64
	isolates     string
	iterations   string
	maxLevels    int
	seed         uint64
	detector     string
	resolution   float64
}

func (f *layoutFlags) register(cmd *cobra.Command, withOutput bool) {
	fs := cmd.Flags()
	if withOutput {
		fs.StringVarP(&f.output, "output", "o", "", "output file (default: <input>.<kind>.json)")
		fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
		fs.BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
	}
	fs.StringVar(&f.format, "format", "", "input format: json, dot (default: from extension)")

	fs.Float64Var(&f.nodeRadius, "node-radius", layout.DefaultNodeRadius, "radius of an original node")
	fs.Float64Var(&f.linkDistance, "link-distance", layout.DefaultLinkDistance, "rest length of links between original nodes")
	fs.StringVar(&f.isolates, "isolates", string(layout.IsolatesGrid), "placement of edge-less communities: grid, random")
	fs.StringVar(&f.iterations, "iterations", string(layout.IterationsAdaptive), "simulation steps: adaptive, fixed")
	fs.IntVar(&f.maxLevels, "max-levels", layout.DefaultMaxLevels, "maximum number of hierarchy levels")
	fs.Uint64Var(&f.seed, "seed", layout.DefaultSeed, "random seed")
	fs.StringVar(&f.detector, "detector", "louvain", "community detector: louvain, modularity")
	fs.Float64Var(&f.resolution, "resolution", 1, "modularity resolution")
}

// options merges explicitly set flags into cfg and returns the layout
// options.
func (f *layoutFlags) options(cmd *cobra.Command, cfg config.Config) (layout.Options, error) {
	set := cmd.Flags().Changed
	if set("node-radius") {
		cfg.Layout.NodeRadius = f.nodeRadius
	}
	if set("link-distance") {
		cfg.Layout.LinkDistance = f.linkDistance
	}
	if set("isolates") {
		cfg.Layout.Isolates = layout.IsolatePolicy(f.isolates)
	}
	if set("iterations") {
		cfg.Layout.Iterations = layout.IterationPolicy(f.iterations)
	}
	if set("max-levels") {
		cfg.Layout.MaxLevels = f.maxLevels
	}
	if set("seed") {
		cfg.Layout.Seed = f.seed
		cfg.Community.Seed = f.seed
	}
	if set("detector") {
		cfg.Community.Detector = f.detector
	}
	if set("resolution") {
		cfg.Community.Resolution = f.resolution
	}
	if err := cfg.Validate(); err != nil {
		return layout.Options{}, err
	}
	return cfg.Options()
}

// layoutCommand creates the layout command, which writes node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		groups int
	)

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The input is a JSON node-link file or a Graphviz DOT file. The output is a
JSON file with one entry per node, in input order. With --groups N every
node also carries the index of its community at depth N of the hierarchy.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Kind: pipeline.KindPositions}
			switch {
			case cmd.Flags().Changed("groups"):
				opts.WithGroups, opts.GroupLevel = true, groups
			case c.config.Output.GroupLevel != nil:
				opts.WithGroups, opts.GroupLevel = true, *c.config.Output.GroupLevel
			}
			return c.runArtifact(cmd, args[0], &flags, opts)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVar(&groups, "groups", 0, "add community indices at this hierarchy depth")
	return cmd
}

// hierarchyCommand creates the hierarchy command, which writes the nested
// community circles.
func (c *CLI) hierarchyCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "hierarchy [graph]",
		Short: "Write the community hierarchy as nested circles",
		Long: `Write the community hierarchy as nested circles.

Every community becomes a circle with its children inside; leaves are the
original nodes. Coordinates are global, so the file can be drawn directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArtifact(cmd, args[0], &flags, pipeline.Options{Kind: pipeline.KindHierarchy})
		},
	}
	flags.register(cmd, true)
	return cmd
}

// groupsCommand creates the groups command, which writes cluster indices at
// one depth of the hierarchy.
func (c *CLI) groupsCommand() *cobra.Command {
	var (
		flags layoutFlags
		level int
	)

	cmd := &cobra.Command{
		Use:   "groups [graph]",
		Short: "Write the community of every node at one hierarchy depth",
		Long: `Write the community of every node at one hierarchy depth.

Depth 0 is the coarsest grouping. Nodes whose branch of the hierarchy ends
above the requested depth form a group of their own.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("level") && c.config.Output.GroupLevel != nil {
				level = *c.config.Output.GroupLevel
			}
			return c.runArtifact(cmd, args[0], &flags, pipeline.Options{Kind: pipeline.KindGroups, GroupLevel: level})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVarP(&level, "level", "l", 0, "hierarchy depth, 0 is the top")
	return cmd
}

// runArtifact runs the pipeline and writes its artifact.
func (c *CLI) runArtifact(cmd *cobra.Command, input string, flags *layoutFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	lopts, err := flags.options(cmd, *c.config)
	if err != nil {
		return err
	}
	opts.Input = input
	opts.Format = flags.format
	opts.Layout = lopts
	opts.Refresh = flags.refresh

	runner, err := c.newRunner(flags.noCache, inputLogger(ctx, input))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	restore := followLevels(spinner)
	result, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(input, opts.Kind, flags.output, c.config.Output.Dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	depth := result.Stats.Depth
	if result.CacheHit {
		depth = -1
	}
	printSuccess("Wrote %s", opts.Kind)
	printFile(path)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, depth, result.CacheHit)
	printNewline()
	printNextStep("Inspect levels", appName+" inspect "+input)
	return nil
}
