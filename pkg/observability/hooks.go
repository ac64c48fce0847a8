// Package observability provides hooks for metrics, tracing, and logging.
//
// The topology pipeline emits events at each stage (generate, render, write)
// without depending on a particular backend. Consumers register hooks at
// startup; the default is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGraphHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Graph().OnGenerateStart(ctx, nodes)
//	// ... build topology ...
//	observability.Graph().OnGenerateComplete(ctx, nodes, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from the topology pipeline.
type GraphHooks interface {
	// Generate events
	OnGenerateStart(ctx context.Context, nodes int)
	OnGenerateComplete(ctx context.Context, nodes, edges int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, nodes int)
	OnRenderComplete(ctx context.Context, size int, duration time.Duration, err error)

	// OnWrite records a write of the finished document to a sink.
	// sink is the file path, or "-" for standard output.
	OnWrite(ctx context.Context, sink string, size int, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnGenerateStart(context.Context, int)                               {}
func (NoopGraphHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error) {}
func (NoopGraphHooks) OnRenderStart(context.Context, int)                                 {}
func (NoopGraphHooks) OnRenderComplete(context.Context, int, time.Duration, error)        {}
func (NoopGraphHooks) OnWrite(context.Context, string, int, error)                        {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks reports pipeline events as debug log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l. A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnGenerateStart(_ context.Context, nodes int) {
	h.logger.Debug("generating topology", "nodes", nodes)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("topology generation failed", "nodes", nodes, "err", err)
		return
	}
	h.logger.Debug("generated topology", "nodes", nodes, "edges", edges, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, nodes int) {
	h.logger.Debug("rendering graphml", "nodes", nodes)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("graphml render failed", "err", err)
		return
	}
	h.logger.Debug("rendered graphml", "bytes", size, "duration", d)
}

func (h *LogHooks) OnWrite(_ context.Context, sink string, size int, err error) {
	if err != nil {
		h.logger.Debug("write failed", "sink", sink, "err", err)
		return
	}
	h.logger.Debug("wrote document", "sink", sink, "bytes", size)
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks GraphHooks = NoopGraphHooks{}
	hooksMu    sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any pipeline operations.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
}
