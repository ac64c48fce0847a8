// Package pipeline provides the topology pipeline behind "warcli graph create".
//
// The pipeline consists of three stages:
//
//  1. Configure: Parse the optional bitcoin.conf into the bitcoin_config value
//  2. Generate: Build the ring-plus-random-peers topology
//  3. Render: Serialize the topology to GraphML and augment every node
//
// Writing the result is left to the caller, which receives the complete
// document and can hand it to any sink.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Nodes:  12,
//	    Values: graphml.Values{Version: "27.0"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Document)
package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/warnet/warcli/pkg/bitcoinconf"
	"github.com/warnet/warcli/pkg/errors"
	"github.com/warnet/warcli/pkg/graphml"
	"github.com/warnet/warcli/pkg/topology"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Nodes is the number of nodes in the topology.
	Nodes int

	// ExtraOutbound caps the random connections per node, at most
	// [topology.DefaultExtraOutbound]. Nil means the default.
	ExtraOutbound *int

	// Seed makes the topology reproducible. Nil draws a fresh seed.
	Seed *uint64

	// Rand overrides Seed with an explicit source, mostly for tests.
	Rand *rand.Rand

	// BitcoinConf is the bitcoin.conf path. When set, its flattened form
	// replaces Values.BitcoinConfig.
	BitcoinConf string

	// Values are the node attributes written to every node.
	Values graphml.Values
}

// Validate checks the options before any stage runs.
func (o Options) Validate() error {
	if err := errors.ValidateNodeCount(o.Nodes); err != nil {
		return err
	}
	if o.ExtraOutbound != nil {
		if k := *o.ExtraOutbound; k < 0 || k > topology.DefaultExtraOutbound {
			return errors.New(errors.ErrCodeInvalidInput, "extra outbound must be between 0 and %d, got %d", topology.DefaultExtraOutbound, k)
		}
	}
	if o.Values.Version != "" {
		if err := errors.ValidateVersion(o.Values.Version); err != nil {
			return err
		}
	}
	return nil
}

// topologyOptions maps o onto generator options.
func (o Options) topologyOptions() []topology.Option {
	var opts []topology.Option
	if o.ExtraOutbound != nil {
		opts = append(opts, topology.WithExtraOutbound(*o.ExtraOutbound))
	}
	switch {
	case o.Rand != nil:
		opts = append(opts, topology.WithRand(o.Rand))
	case o.Seed != nil:
		opts = append(opts, topology.WithSeed(*o.Seed))
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the generated topology.
	Graph *topology.Graph

	// Conf is the parsed bitcoin.conf, or nil when none was given.
	Conf *bitcoinconf.Conf

	// Document is the complete GraphML document.
	Document []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	Size         int
	GenerateTime time.Duration
	RenderTime   time.Duration
}
