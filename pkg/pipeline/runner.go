package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/warnet/warcli/pkg/bitcoinconf"
	"github.com/warnet/warcli/pkg/errors"
	"github.com/warnet/warcli/pkg/graphml"
	"github.com/warnet/warcli/pkg/observability"
	"github.com/warnet/warcli/pkg/topology"
)

// Runner executes the pipeline stages and reports them to the graph hooks.
// It holds no per-run state, so one Runner can serve concurrent runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs configure → generate → render. Nothing is written anywhere;
// on error no partial document is returned.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Configure
	values := opts.Values
	if opts.BitcoinConf != "" {
		conf, err := bitcoinconf.Parse(opts.BitcoinConf)
		if err != nil {
			return nil, err
		}
		result.Conf = conf
		values.BitcoinConfig = bitcoinconf.Dump(conf)
		r.Logger.Debug("parsed bitcoin conf", "path", opts.BitcoinConf, "sections", len(conf.Sections()))
	}

	// Stage 2: Generate
	start := time.Now()
	g, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.GenerateTime = time.Since(start)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	start = time.Now()
	data, err := r.Render(ctx, g, values)
	if err != nil {
		return nil, err
	}
	result.Document = data
	result.Stats.RenderTime = time.Since(start)
	result.Stats.Size = len(data)

	r.Logger.Debug("rendered topology",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"bytes", result.Stats.Size,
		"duration", result.Stats.GenerateTime+result.Stats.RenderTime)

	return result, nil
}

// Generate builds the topology described by opts.
func (r *Runner) Generate(ctx context.Context, opts Options) (*topology.Graph, error) {
	hooks := observability.Graph()
	hooks.OnGenerateStart(ctx, opts.Nodes)
	start := time.Now()

	g, err := topology.Generate(opts.Nodes, opts.topologyOptions()...)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Nodes, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeConstruction, err, "creating graph")
	}
	hooks.OnGenerateComplete(ctx, opts.Nodes, g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

// Render augments and serializes g. The whole document is held in memory
// so a failure here never reaches a sink.
func (r *Runner) Render(ctx context.Context, g *topology.Graph, v graphml.Values) ([]byte, error) {
	hooks := observability.Graph()
	hooks.OnRenderStart(ctx, g.NodeCount())
	start := time.Now()

	data, err := render(g, v)
	hooks.OnRenderComplete(ctx, len(data), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocument, err, "augmenting document")
	}
	return data, nil
}

func render(g *topology.Graph, v graphml.Values) ([]byte, error) {
	doc, err := graphml.Render(g, v)
	if err != nil {
		return nil, err
	}
	return graphml.Marshal(doc)
}
