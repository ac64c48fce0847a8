package graphml

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/beevik/etree"

	"github.com/warnet/warcli/pkg/topology"
)

// ErrInvalidDocument is wrapped by every structural problem [Validate]
// reports.
var ErrInvalidDocument = errors.New("graphml: invalid document")

// Report summarizes a valid document.
type Report struct {
	Nodes int
	Edges int
	// Versions counts nodes per version data value.
	Versions map[string]int
}

// Read parses a GraphML document from r.
func Read(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Validate parses r and checks it against the augmented document contract:
// the root declares exactly the schema keys in order before a single graph
// element, every node carries exactly one data element per key in schema
// order, and edges form a topology without self-loops or duplicates.
func Validate(r io.Reader) (*Report, error) {
	doc, err := Read(r)
	if err != nil {
		return nil, err
	}
	return ValidateDocument(doc)
}

// ValidateDocument is [Validate] for an already parsed document.
func ValidateDocument(doc *etree.Document) (*Report, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingRoot)
	}
	if root.Tag != "graphml" {
		return nil, invalid("root element is <%s>, want <graphml>", root.Tag)
	}

	var keys []string
	var graphs []*etree.Element
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "key":
			if len(graphs) > 0 {
				return nil, invalid("key %q declared after graph", el.SelectAttrValue("id", ""))
			}
			if err := checkKey(el); err != nil {
				return nil, err
			}
			keys = append(keys, el.SelectAttrValue("id", ""))
		case "graph":
			graphs = append(graphs, el)
		}
	}
	if want := KeyNames(); !slices.Equal(keys, want) {
		return nil, invalid("keys %v, want %v", keys, want)
	}
	switch len(graphs) {
	case 0:
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingGraph)
	case 1:
	default:
		return nil, invalid("%d graph elements, want 1", len(graphs))
	}

	report := &Report{Versions: make(map[string]int)}
	for _, node := range graphs[0].SelectElements("node") {
		version, err := checkNodeData(node)
		if err != nil {
			return nil, err
		}
		report.Versions[version]++
	}

	g, _, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	report.Nodes = g.NodeCount()
	report.Edges = g.EdgeCount()
	return report, nil
}

func checkKey(el *etree.Element) error {
	id := el.SelectAttrValue("id", "")
	idx := slices.Index(KeyNames(), id)
	if idx < 0 {
		return invalid("unknown key %q", id)
	}
	a := schema[idx]
	if got := el.SelectAttrValue("attr.name", ""); got != a.Name {
		return invalid("key %q: attr.name %q", id, got)
	}
	if got := el.SelectAttrValue("attr.type", ""); got != a.Type {
		return invalid("key %q: attr.type %q, want %q", id, got, a.Type)
	}
	if got := el.SelectAttrValue("for", ""); got != "node" {
		return invalid("key %q: for=%q, want node", id, got)
	}
	return nil
}

// checkNodeData verifies the data children of node and returns its version.
func checkNodeData(node *etree.Element) (string, error) {
	id := node.SelectAttrValue("id", "")
	data := node.SelectElements("data")
	if len(data) != len(schema) {
		return "", invalid("node %q has %d data elements, want %d", id, len(data), len(schema))
	}
	var version string
	for i, d := range data {
		key := d.SelectAttrValue("key", "")
		if key != schema[i].Name {
			return "", invalid("node %q data %d has key %q, want %q", id, i, key, schema[i].Name)
		}
		text := d.Text()
		if schema[i].Type == TypeBoolean && text != "true" && text != "false" {
			return "", invalid("node %q %s=%q is not a boolean", id, key, text)
		}
		if key == "version" {
			version = text
		}
	}
	return version, nil
}

// Decode rebuilds the topology of the first graph element in doc. Nodes are
// numbered in document order; the returned labels hold the original node
// ids indexed by [topology.NodeID].
func Decode(doc *etree.Document) (*topology.Graph, []string, error) {
	root := doc.Root()
	if root == nil {
		return nil, nil, ErrMissingRoot
	}
	graph := findGraph(root)
	if graph == nil {
		return nil, nil, ErrMissingGraph
	}

	nodes := graph.SelectElements("node")
	labels := make([]string, len(nodes))
	index := make(map[string]topology.NodeID, len(nodes))
	for i, n := range nodes {
		id := n.SelectAttrValue("id", "")
		if id == "" {
			return nil, nil, fmt.Errorf("node %d has no id", i)
		}
		if _, dup := index[id]; dup {
			return nil, nil, fmt.Errorf("duplicate node id %q", id)
		}
		index[id] = topology.NodeID(i)
		labels[i] = id
	}

	g := topology.New(len(nodes))
	for _, e := range graph.SelectElements("edge") {
		src, tgt := e.SelectAttrValue("source", ""), e.SelectAttrValue("target", "")
		from, ok := index[src]
		if !ok {
			return nil, nil, fmt.Errorf("edge source %q: %w", src, topology.ErrUnknownNode)
		}
		to, ok := index[tgt]
		if !ok {
			return nil, nil, fmt.Errorf("edge target %q: %w", tgt, topology.ErrUnknownNode)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, nil, fmt.Errorf("edge %s -> %s: %w", src, tgt, err)
		}
	}
	return g, labels, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
