// Package prom implements the observability hooks with Prometheus metrics.
//
// Metrics are registered on a caller supplied registry, never the global
// default one, so a CLI run can dump exactly its own metrics with
// [Metrics.WriteFile].
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/hclayout/pkg/observability"
)

const namespace = "hclayout"

// Metrics records layout and pipeline events.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal         *prometheus.CounterVec
	RunDuration       prometheus.Histogram
	RunDepth          prometheus.Gauge
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge
	LevelsTotal       prometheus.Counter
	LevelCommunities  *prometheus.GaugeVec
	LevelDuration     prometheus.Histogram
	CommunitiesTotal  *prometheus.CounterVec
	CommunitySize     *prometheus.HistogramVec
	CommunityDuration *prometheus.HistogramVec
	ReadsTotal        *prometheus.CounterVec
	ReadDuration      *prometheus.HistogramVec
	ExportsTotal      *prometheus.CounterVec
	ExportBytes       *prometheus.CounterVec
}

var (
	_ observability.LayoutHooks   = (*Metrics)(nil)
	_ observability.PipelineHooks = (*Metrics)(nil)
)

// New registers all metrics on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,

		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Layout runs by outcome",
		}, []string{"status"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of complete layout runs",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
		}),
		RunDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_depth",
			Help:      "Hierarchy depth of the last run",
		}),
		GraphNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Node count of the last graph laid out",
		}),
		GraphEdges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edge count of the last graph laid out",
		}),
		LevelsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_total",
			Help:      "Hierarchy levels built",
		}),
		LevelCommunities: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "level_communities",
			Help:      "Communities found per level in the last run",
		}, []string{"level"}),
		LevelDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_duration_seconds",
			Help:      "Time to cluster, coarsen and lay out one level",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		CommunitiesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "communities_total",
			Help:      "Communities laid out by strategy",
		}, []string{"strategy"}),
		CommunitySize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "community_nodes",
			Help:      "Members per laid out community",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"strategy"}),
		CommunityDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "community_duration_seconds",
			Help:      "Time to lay out one community",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"strategy"}),
		ReadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_total",
			Help:      "Graph reads by format and outcome",
		}, []string{"format", "status"}),
		ReadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "read_duration_seconds",
			Help:      "Time to read and parse an input graph",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		ExportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports by kind and outcome",
		}, []string{"kind", "status"}),
		ExportBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_bytes_total",
			Help:      "Bytes written by exports",
		}, []string{"kind"}),
	}
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteFile writes the current metrics in the text exposition format, as
// read by the node exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Install registers m as the global layout and pipeline hooks.
func (m *Metrics) Install() {
	observability.SetLayoutHooks(m)
	observability.SetPipelineHooks(m)
}

func (m *Metrics) OnRunStart(_ context.Context, nodes, edges int) {
	m.GraphNodes.Set(float64(nodes))
	m.GraphEdges.Set(float64(edges))
	m.LevelCommunities.Reset()
}

func (m *Metrics) OnLevel(_ context.Context, level, _, communities int, d time.Duration) {
	m.LevelsTotal.Inc()
	m.LevelCommunities.WithLabelValues(strconv.Itoa(level)).Set(float64(communities))
	m.LevelDuration.Observe(d.Seconds())
}

func (m *Metrics) OnCommunity(_ context.Context, strategy string, nodes, _ int, d time.Duration) {
	m.CommunitiesTotal.WithLabelValues(strategy).Inc()
	m.CommunitySize.WithLabelValues(strategy).Observe(float64(nodes))
	m.CommunityDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

func (m *Metrics) OnRunComplete(_ context.Context, depth int, d time.Duration, err error) {
	m.RunsTotal.WithLabelValues(status(err)).Inc()
	m.RunDuration.Observe(d.Seconds())
	m.RunDepth.Set(float64(depth))
}

func (m *Metrics) OnReadStart(context.Context, string) {}

func (m *Metrics) OnReadComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	m.ReadsTotal.WithLabelValues(format, status(err)).Inc()
	m.ReadDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnExportStart(context.Context, string) {}

func (m *Metrics) OnExportComplete(_ context.Context, kind string, size int, _ time.Duration, err error) {
	m.ExportsTotal.WithLabelValues(kind, status(err)).Inc()
	if err == nil {
		m.ExportBytes.WithLabelValues(kind).Add(float64(size))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
