// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout runs and the read/write pipeline around them.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the layout packages do
// not import any metrics framework. Package prom provides a Prometheus
// implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New(prometheus.NewRegistry())
//	    observability.SetLayoutHooks(m)
//	    observability.SetPipelineHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnRunStart(ctx, nodes, edges)
//	// ... build the hierarchy ...
//	observability.Layout().OnRunComplete(ctx, depth, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from a layout run.
type LayoutHooks interface {
	// OnRunStart records the start of a run on a graph of the given size.
	OnRunStart(ctx context.Context, nodes, edges int)

	// OnLevel records a finished hierarchy level.
	OnLevel(ctx context.Context, level, nodes, communities int, duration time.Duration)

	// OnCommunity records one laid out community. Strategy is "physics" or
	// "isolate".
	OnCommunity(ctx context.Context, strategy string, nodes, edges int, duration time.Duration)

	// OnRunComplete records the end of a run.
	OnRunComplete(ctx context.Context, depth int, duration time.Duration, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the read → layout → export pipeline.
type PipelineHooks interface {
	// Read events
	OnReadStart(ctx context.Context, format string)
	OnReadComplete(ctx context.Context, format string, nodeCount int, duration time.Duration, err error)

	// Export events
	OnExportStart(ctx context.Context, kind string)
	OnExportComplete(ctx context.Context, kind string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnRunStart(context.Context, int, int)                         {}
func (NoopLayoutHooks) OnLevel(context.Context, int, int, int, time.Duration)        {}
func (NoopLayoutHooks) OnCommunity(context.Context, string, int, int, time.Duration) {}
func (NoopLayoutHooks) OnRunComplete(context.Context, int, time.Duration, error)     {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnExportStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. Nil is ignored. Hooks may be
// swapped between runs; a run in progress keeps emitting to the hooks it
// looked up last.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
