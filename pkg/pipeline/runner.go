package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hclayout/pkg/cache"
	"github.com/matzehuels/hclayout/pkg/graph"
	hcio "github.com/matzehuels/hclayout/pkg/io"
	"github.com/matzehuels/hclayout/pkg/layout"
	"github.com/matzehuels/hclayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete read → layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.New()}
	if opts.Logger == nil {
		opts.Logger = r.Logger.With("run", result.RunID.String()[:8])
	}
	if err := r.prepare(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	// Stage 1: Read
	readStart := time.Now()
	g, err := r.Read(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	result.Graph = g
	result.Stats.ReadTime = time.Since(readStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	logger.Info("read graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ReadTime)

	key := r.artifactKey(g, opts)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			result.Artifact = data
			result.CacheHit = true
			logger.Info("using cached artifact", "kind", opts.Kind, "bytes", len(data))
			return result, nil
		}
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := r.Layout(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Depth = l.Depth()

	logger.Info("computed layout",
		"depth", l.Depth(),
		"levels", len(l.Levels()),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	exportStart := time.Now()
	data, err := r.Export(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifact = data
	result.Stats.ExportTime = time.Since(exportStart)

	logger.Info("exported artifact",
		"kind", opts.Kind,
		"bytes", len(data),
		"duration", result.Stats.ExportTime)

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		logger.Debug("cache write failed", "error", err)
	}
	return result, nil
}

// Read imports the input graph.
func (r *Runner) Read(ctx context.Context, opts Options) (g *graph.Graph, err error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, opts.Format)
	start := time.Now()
	defer func() {
		n := 0
		if g != nil {
			n = g.NodeCount()
		}
		hooks.OnReadComplete(ctx, opts.Format, n, time.Since(start), err)
	}()
	return hcio.Import(opts.Input, opts.Format)
}

// Layout runs the layout on g.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (*layout.Layout, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	l, err := layout.New(g, opts.Layout)
	if err != nil {
		return nil, err
	}
	if err := l.Run(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Export encodes the artifact selected by opts.Kind.
func (r *Runner) Export(ctx context.Context, l *layout.Layout, opts Options) (data []byte, err error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Kind)
	start := time.Now()
	defer func() {
		hooks.OnExportComplete(ctx, opts.Kind, len(data), time.Since(start), err)
	}()

	var buf bytes.Buffer
	switch opts.Kind {
	case KindPositions:
		level := -1
		if opts.WithGroups {
			level = opts.GroupLevel
		}
		err = hcio.WritePositions(l, level, &buf)
	case KindHierarchy:
		err = hcio.WriteHierarchy(l, &buf)
	case KindGroups:
		err = hcio.WriteGroups(l, opts.GroupLevel, &buf)
	default:
		err = fmt.Errorf("unknown artifact kind %q", opts.Kind)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) prepare(opts *Options) error {
	r.applyLogger(opts)
	opts.SetDefaults()
	return opts.Validate()
}

// artifactKey hashes the graph as it would be exported, so that node order,
// weights and metadata all count.
func (r *Runner) artifactKey(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	if err := hcio.WriteJSON(g, &buf); err != nil {
		return ""
	}
	return r.Keyer.ArtifactKey(cache.Hash(buf.Bytes()), opts.ArtifactKeyOpts())
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
