package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/warnet/warcli/pkg/topology"
)

type graph struct {
	Nodes []string `json:"nodes"`
	Edges []edge   `json:"edges"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a topology as JSON and writes it to w.
// Edges keep their insertion order, so the ring comes first.
// This format can be re-imported with [ReadJSON].
func WriteJSON(g *topology.Graph, w io.Writer) error {
	out := graph{
		Nodes: make([]string, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, id.String())
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From.String(), To: e.To.String()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a topology to a JSON file at path.
// The document is encoded in memory and written with [WriteFile], so a
// failed export leaves any existing file at path untouched.
func ExportJSON(g *topology.Graph, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}
