package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warnet/warcli/pkg/errors"
	"github.com/warnet/warcli/pkg/graphml"
	"github.com/warnet/warcli/pkg/io"
	"github.com/warnet/warcli/pkg/observability"
	"github.com/warnet/warcli/pkg/pipeline"
	"github.com/warnet/warcli/pkg/render/nodelink"
	"github.com/warnet/warcli/pkg/topology"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// graphCommand creates the graph command group.
func (c *CLI) graphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Create, inspect and preview network topologies",
	}
	cmd.AddCommand(c.graphCreateCommand())
	cmd.AddCommand(c.graphRenderCommand())
	cmd.AddCommand(c.graphValidateCommand())
	cmd.AddCommand(c.graphExportCommand())
	return cmd
}

// =============================================================================
// graph create
// =============================================================================

// createOpts holds the command-line flags for graph create. Attribute flags
// override the settings file only when given explicitly.
type createOpts struct {
	output      string
	version     string
	bitcoinConf string
	image       string
	tcNetem     string
	buildArgs   string
	exporter    bool
	collectLogs bool
	seed        uint64
}

func (c *CLI) graphCreateCommand() *cobra.Command {
	var opts createOpts

	cmd := &cobra.Command{
		Use:   "create <number>",
		Short: "Create a GraphML topology of <number> bitcoin nodes",
		Long: `Create a GraphML topology of <number> bitcoin nodes.

Nodes are joined in a directed ring and each node then gets up to seven
additional outbound connections to distinct random peers. Every node carries
the version, bitcoin_config, tc_netem, build_args, exporter, collect_logs and
image attributes. The document is written to --output or to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNodeCount(args[0])
			if err != nil {
				return err
			}
			return c.runCreate(cmd, n, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.version, "version", "", "bitcoin core version for every node (default \""+graphml.DefaultVersion+"\")")
	cmd.Flags().StringVarP(&opts.bitcoinConf, "bitcoin_conf", "b", "", "bitcoin.conf embedded in every node")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible topologies")
	cmd.Flags().StringVar(&opts.image, "image", "", "container image for every node")
	cmd.Flags().StringVar(&opts.tcNetem, "tc-netem", "", "tc netem rule for every node")
	cmd.Flags().StringVar(&opts.buildArgs, "build-args", "", "build arguments for every node")
	cmd.Flags().BoolVar(&opts.exporter, "exporter", false, "enable the metrics exporter on every node")
	cmd.Flags().BoolVar(&opts.collectLogs, "collect-logs", false, "collect logs from every node")

	return cmd
}

func (c *CLI) runCreate(cmd *cobra.Command, n int, opts *createOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("creating graph", "network", cfg.Network, "nodes", n)

	extra := cfg.Graph.Extra()
	popts := pipeline.Options{
		Nodes:         n,
		ExtraOutbound: &extra,
		BitcoinConf:   cfg.Graph.BitcoinConf,
		Values:        cfg.Graph.Values(),
	}
	flags := cmd.Flags()
	if flags.Changed("version") {
		if err := errors.ValidateVersion(opts.version); err != nil {
			return err
		}
		popts.Values.Version = opts.version
	}
	if flags.Changed("image") {
		popts.Values.Image = opts.image
	}
	if flags.Changed("tc-netem") {
		popts.Values.TcNetem = opts.tcNetem
	}
	if flags.Changed("build-args") {
		popts.Values.BuildArgs = opts.buildArgs
	}
	if flags.Changed("exporter") {
		popts.Values.Exporter = opts.exporter
	}
	if flags.Changed("collect-logs") {
		popts.Values.CollectLogs = opts.collectLogs
	}
	if flags.Changed("bitcoin_conf") {
		popts.BitcoinConf = opts.bitcoinConf
	}
	if flags.Changed("seed") {
		popts.Seed = &opts.seed
	}

	if n < 2 {
		printWarning(cmd.ErrOrStderr(), "%d node(s): the topology has no connections", n)
	}
	result, err := pipeline.NewRunner(logger).Execute(ctx, popts)
	if err != nil {
		return err
	}
	if result.Conf != nil {
		printConfSections(cmd.ErrOrStderr(), result.Conf)
	}

	if err := writeOutput(ctx, cmd, opts.output, result.Document); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d nodes, %d edges to %s", result.Stats.NodeCount, result.Stats.EdgeCount, sinkName(opts.output)))
	return nil
}

// parseNodeCount parses the positional node count argument.
func parseNodeCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "node count must be an integer, got %q", arg)
	}
	if err := errors.ValidateNodeCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// writeOutput sends data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(ctx context.Context, cmd *cobra.Command, path string, data []byte) error {
	var err error
	if path == "" || path == stdoutSink {
		err = graphml.Write(cmd.OutOrStdout(), data)
	} else if err = errors.ValidateOutputPath(path); err == nil {
		err = graphml.WriteFile(path, data)
	}
	observability.Graph().OnWrite(ctx, sinkName(path), len(data), err)
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeInvalidPath {
			return err
		}
		return errors.Wrap(errors.ErrCodeSink, err, "writing %s", sinkName(path))
	}
	return nil
}

func sinkName(path string) string {
	if path == "" || path == stdoutSink {
		return "stdout"
	}
	return path
}

// =============================================================================
// graph render
// =============================================================================

// renderOpts holds the command-line flags for graph render.
type renderOpts struct {
	output string
	format string
}

func (c *CLI) graphRenderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Preview a topology as an SVG node-link diagram",
		Long: `Preview a topology as an SVG node-link diagram.

The input may be a GraphML document written by "graph create" or a JSON
topology written by "graph export". Ring edges are drawn bold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatSVG, formatDOT:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "invalid format %q: must be %s or %s", opts.format, formatSVG, formatDOT)
			}
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input basename with format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")

	return cmd
}

func runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))

	g, labels, err := loadTopology(input)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Labels: labels, HighlightRing: true})
	data := []byte(dot)
	if opts.format == formatSVG {
		if data, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "rendering %s", input)
		}
	}

	out := opts.output
	if out == "" {
		out = basePath(input) + "." + opts.format
	}
	if err := writeOutput(ctx, cmd, out, data); err != nil {
		return err
	}
	if out != stdoutSink {
		prog.done("Rendered " + input)
		printFile(cmd.ErrOrStderr(), out)
	}
	return nil
}

// loadTopology reads a GraphML or JSON topology, picking the decoder by
// file extension.
func loadTopology(path string) (*topology.Graph, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return io.ImportJSON(path)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	doc, err := graphml.Read(f)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", path)
	}
	g, labels, err := graphml.Decode(doc)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	return g, labels, nil
}

func basePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// graph validate
// =============================================================================

func (c *CLI) graphValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a GraphML file is a well-formed warnet topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	report, err := graphml.Validate(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDocument, err, "validating %s", path)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "%s is a valid topology", path)
	printStats(out, report.Nodes, report.Edges)
	for _, v := range slices.Sorted(maps.Keys(report.Versions)) {
		printKeyValue(out, "version "+v, fmt.Sprintf("%d nodes", report.Versions[v]))
	}
	return nil
}

// =============================================================================
// graph export
// =============================================================================

// exportOpts holds the command-line flags for graph export.
type exportOpts struct {
	output string
	seed   uint64
}

func (c *CLI) graphExportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <number>",
		Short: "Export a generated topology as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNodeCount(args[0])
			if err != nil {
				return err
			}
			return c.runExport(cmd, n, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible topologies")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, n int, opts *exportOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	extra := cfg.Graph.Extra()
	popts := pipeline.Options{Nodes: n, ExtraOutbound: &extra}
	if cmd.Flags().Changed("seed") {
		popts.Seed = &opts.seed
	}
	g, err := pipeline.NewRunner(loggerFromContext(ctx)).Generate(ctx, popts)
	if err != nil {
		return err
	}

	if opts.output == "" || opts.output == stdoutSink {
		err = io.WriteJSON(g, cmd.OutOrStdout())
	} else if err = errors.ValidateOutputPath(opts.output); err == nil {
		err = io.ExportJSON(g, opts.output)
	}
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeInvalidPath {
			return err
		}
		return errors.Wrap(errors.ErrCodeSink, err, "writing %s", sinkName(opts.output))
	}
	loggerFromContext(ctx).Infof("Exported %d nodes, %d edges to %s", g.NodeCount(), g.EdgeCount(), sinkName(opts.output))
	return nil
}
