package topology

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrInvalidNodeCount is returned by [Cycle] and [Generate] when the
	// requested node count is negative.
	ErrInvalidNodeCount = errors.New("node count must not be negative")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint is
	// outside 0..N-1.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target are
	// the same node.
	ErrSelfLoop = errors.New("self-loop")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the ordered pair
	// is already connected.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// NodeID identifies a node within a topology. IDs are dense: a graph with
// N nodes uses exactly 0..N-1.
type NodeID int

// String returns the GraphML-style identifier of the node ("n3").
func (id NodeID) String() string { return "n" + strconv.Itoa(int(id)) }

// Edge is a directed outbound connection. Edges carry no payload.
type Edge struct {
	From NodeID
	To   NodeID
}

// Graph is a directed graph with no self-loops and no parallel edges.
//
// The zero value is an empty graph with no nodes. Use [New], [Cycle] or
// [Generate] to create a graph with nodes.
type Graph struct {
	n        int
	edges    []Edge
	outgoing [][]NodeID
	incoming [][]NodeID
	index    map[Edge]struct{}
}

// New creates a graph with n nodes and no edges. A negative n yields an
// empty graph; callers that accept user input should use [Cycle] or
// [Generate], which report ErrInvalidNodeCount instead.
func New(n int) *Graph {
	n = max(n, 0)
	return &Graph{
		n:        n,
		outgoing: make([][]NodeID, n),
		incoming: make([][]NodeID, n),
		index:    make(map[Edge]struct{}),
	}
}

// AddEdge adds the directed edge from→to.
// Returns ErrUnknownNode if either endpoint does not exist, ErrSelfLoop if
// from == to, or ErrDuplicateEdge if the edge is already present.
func (g *Graph) AddEdge(from, to NodeID) error {
	if !g.contains(from) || !g.contains(to) {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownNode, from, to)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrSelfLoop, from)
	}
	e := Edge{From: from, To: to}
	if _, ok := g.index[e]; ok {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, from, to)
	}
	g.index[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

func (g *Graph) contains(id NodeID) bool { return id >= 0 && int(id) < g.n }

// HasEdge reports whether the edge from→to exists.
func (g *Graph) HasEdge(from, to NodeID) bool {
	_, ok := g.index[Edge{From: from, To: to}]
	return ok
}

// Nodes returns all node IDs in ascending order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, g.n)
	for i := range ids {
		ids[i] = NodeID(i)
	}
	return ids
}

// Edges returns a copy of all edges in insertion order: the ring first,
// then each node's extra connections in node order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return g.n }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the outbound neighbors of id in insertion order.
// The returned slice should not be modified.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.contains(id) {
		return nil
	}
	return g.outgoing[id]
}

// Parents returns the inbound neighbors of id in insertion order.
// The returned slice should not be modified.
func (g *Graph) Parents(id NodeID) []NodeID {
	if !g.contains(id) {
		return nil
	}
	return g.incoming[id]
}

// OutDegree returns the number of outbound edges of id.
func (g *Graph) OutDegree(id NodeID) int { return len(g.Children(id)) }

// InDegree returns the number of inbound edges of id.
func (g *Graph) InDegree(id NodeID) int { return len(g.Parents(id)) }

// Validate re-checks the structural invariants from scratch: every edge
// references existing nodes, no edge is a self-loop and no ordered pair
// appears twice. AddEdge already enforces all three; Validate exists for
// graphs decoded from external input.
func (g *Graph) Validate() error {
	seen := make(map[Edge]struct{}, len(g.edges))
	for _, e := range g.edges {
		if !g.contains(e.From) || !g.contains(e.To) {
			return fmt.Errorf("%w: %s -> %s", ErrUnknownNode, e.From, e.To)
		}
		if e.From == e.To {
			return fmt.Errorf("%w: %s", ErrSelfLoop, e.From)
		}
		if _, ok := seen[e]; ok {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, e.From, e.To)
		}
		seen[e] = struct{}{}
	}
	return nil
}

// StronglyConnected reports whether every node can reach every other node.
// Graphs with fewer than two nodes are trivially strongly connected.
//
// Runs a forward and a reverse breadth-first search from node 0 in O(N+E).
func (g *Graph) StronglyConnected() bool {
	if g.n < 2 {
		return true
	}
	return g.reachAll(g.outgoing) && g.reachAll(g.incoming)
}

func (g *Graph) reachAll(adj [][]NodeID) bool {
	visited := make([]bool, g.n)
	visited[0] = true
	queue := []NodeID{0}
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}
	return count == g.n
}
