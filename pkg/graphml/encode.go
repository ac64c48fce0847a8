package graphml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/warnet/warcli/pkg/topology"
)

// Namespace is the GraphML XML namespace.
const Namespace = "http://graphml.graphdrawing.org/xmlns"

type xmlGraphML struct {
	XMLName xml.Name `xml:"graphml"`
	Xmlns   string   `xml:"xmlns,attr"`
	Graph   xmlGraph `xml:"graph"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID string `xml:"id,attr"`
}

type xmlEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// Encode writes g as a plain, pretty-printed GraphML document: nodes and
// edges only, no attributes. Nodes are named "n<i>" and edges "e<k>" in
// the order of [topology.Graph.Edges].
func Encode(g *topology.Graph) ([]byte, error) {
	doc := xmlGraphML{
		Xmlns: Namespace,
		Graph: xmlGraph{
			EdgeDefault: "directed",
			Nodes:       make([]xmlNode, 0, g.NodeCount()),
			Edges:       make([]xmlEdge, 0, g.EdgeCount()),
		},
	}
	for _, id := range g.Nodes() {
		doc.Graph.Nodes = append(doc.Graph.Nodes, xmlNode{ID: id.String()})
	}
	for i, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, xmlEdge{
			ID:     "e" + strconv.Itoa(i),
			Source: e.From.String(),
			Target: e.To.String(),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode graphml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
