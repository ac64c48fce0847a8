package topology

import (
	"fmt"
	"math/rand/v2"
)

// DefaultExtraOutbound is the number of random outbound connections added
// to each node on top of its ring edge.
const DefaultExtraOutbound = 7

type options struct {
	rng   *rand.Rand
	extra int
}

// Option configures [Generate].
type Option func(*options)

// WithRand makes Generate draw from r instead of a fresh source.
// A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithSeed makes Generate reproducible: the same seed and node count always
// yield the same edge set.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// WithExtraOutbound lowers the number of random connections per node.
// k is clamped to [0, DefaultExtraOutbound], so out-degree never exceeds
// DefaultExtraOutbound+1.
func WithExtraOutbound(k int) Option {
	return func(o *options) {
		o.extra = min(max(k, 0), DefaultExtraOutbound)
	}
}

// Cycle returns a directed ring over n nodes where node i has a single
// outbound edge to node (i+1) mod n.
//
// With n < 2 a ring would need a self-loop, so the graph has n nodes and
// no edges. Returns ErrInvalidNodeCount for negative n.
func Cycle(n int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNodeCount, n)
	}
	g := New(n)
	if n < 2 {
		return g, nil
	}
	for i := range n {
		if err := g.AddEdge(NodeID(i), NodeID((i+1)%n)); err != nil {
			return nil, fmt.Errorf("build ring: %w", err)
		}
	}
	return g, nil
}

// Generate builds a ring over n nodes and then gives every node up to
// DefaultExtraOutbound additional distinct outbound connections.
//
// Targets for node i are drawn uniformly without replacement from all nodes
// other than i that i does not already connect to. Nodes are processed in
// ascending order. When fewer candidates remain than requested, all of them
// are used.
func Generate(n int, opts ...Option) (*Graph, error) {
	o := options{extra: DefaultExtraOutbound}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g, err := Cycle(n)
	if err != nil {
		return nil, err
	}

	for _, node := range g.Nodes() {
		candidates := make([]NodeID, 0, n)
		for _, target := range g.Nodes() {
			if target != node && !g.HasEdge(node, target) {
				candidates = append(candidates, target)
			}
		}
		for range o.extra {
			if len(candidates) == 0 {
				break
			}
			i := o.rng.IntN(len(candidates))
			target := candidates[i]
			candidates[i] = candidates[len(candidates)-1]
			candidates = candidates[:len(candidates)-1]
			if err := g.AddEdge(node, target); err != nil {
				return nil, fmt.Errorf("add outbound %s -> %s: %w", node, target, err)
			}
		}
	}
	return g, nil
}
