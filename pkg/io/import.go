package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/warnet/warcli/pkg/topology"
)

// ReadJSON decodes a JSON topology from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": ["n0", "n1"],
//	  "edges": [{"from": "n0", "to": "n1"}, {"from": "n1", "to": "n0"}]
//	}
//
// Nodes are numbered in array order; the returned labels hold the original
// identifiers indexed by [topology.NodeID].
//
// ReadJSON returns an error if the JSON is malformed, a node id is empty or
// repeated, or an edge references an unknown node, repeats an earlier edge
// or is a self-loop. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*topology.Graph, []string, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	index := make(map[string]topology.NodeID, len(data.Nodes))
	for i, id := range data.Nodes {
		if id == "" {
			return nil, nil, fmt.Errorf("node %d: empty id", i)
		}
		if _, dup := index[id]; dup {
			return nil, nil, fmt.Errorf("node %s: duplicate id", id)
		}
		index[id] = topology.NodeID(i)
	}

	g := topology.New(len(data.Nodes))
	for _, e := range data.Edges {
		from, ok := index[e.From]
		if !ok {
			return nil, nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, topology.ErrUnknownNode)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, topology.ErrUnknownNode)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, data.Nodes, nil
}

// ImportJSON reads a JSON file at path and returns the decoded topology.
// See [ReadJSON] for the format and validation rules.
func ImportJSON(path string) (*topology.Graph, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
