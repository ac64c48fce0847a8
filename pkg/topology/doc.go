// Package topology builds the directed peer graph of a simulated network.
//
// # Overview
//
// A topology is a directed graph of N nodes identified by 0..N-1. Every
// edge is an outbound peer connection from one node to another. The graph
// never contains self-loops and never contains two edges for the same
// ordered pair of nodes.
//
// # Generation
//
// [Generate] starts from a directed ring ([Cycle]) where node i connects to
// node (i+1) mod N. The ring makes every node reachable from every other
// node with the fewest possible edges. Each node then receives up to
// [DefaultExtraOutbound] additional outbound connections, chosen uniformly
// at random without replacement among the nodes it is not yet connected to:
//
//	g, err := topology.Generate(12)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.NodeCount(), g.EdgeCount()) // 12 96
//
// With fewer than 9 nodes there are not enough distinct targets and nodes
// simply end up with fewer connections. This is not an error.
//
// # Randomness
//
// By default each call draws from a fresh, randomly seeded source, so only
// the ring is reproducible across runs. Pass [WithSeed] or [WithRand] to get
// a reproducible edge set:
//
//	g, _ := topology.Generate(12, topology.WithSeed(42))
//
// # Concurrency
//
// A [Graph] is not safe for concurrent mutation. Once returned by
// [Generate] it is treated as immutable and may be read concurrently.
package topology
