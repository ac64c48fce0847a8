package graphml

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/warnet/warcli/pkg/topology"
)

var (
	// ErrMissingRoot is returned when a document has no root element.
	ErrMissingRoot = errors.New("graphml: document has no root element")

	// ErrMissingGraph is returned when the root has no graph child element.
	ErrMissingGraph = errors.New("graphml: root has no graph element")
)

// Render encodes g, re-parses the result and augments it with v.
func Render(g *topology.Graph, v Values) (*etree.Document, error) {
	base, err := Encode(g)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(base); err != nil {
		return nil, fmt.Errorf("parse base graphml: %w", err)
	}
	if err := Augment(doc, v); err != nil {
		return nil, err
	}
	return doc, nil
}

// Augment declares the schema keys on the document root, ahead of the graph
// element, and appends one data element per key to every node element that
// is a direct child of the graph. Edges and other children are untouched.
//
// Values are resolved once and shared by all nodes.
func Augment(doc *etree.Document, v Values) error {
	root := doc.Root()
	if root == nil {
		return ErrMissingRoot
	}
	graph := findGraph(root)
	if graph == nil {
		return ErrMissingGraph
	}

	for _, a := range schema {
		key := etree.NewElement("key")
		key.CreateAttr("id", a.Name)
		key.CreateAttr("for", "node")
		key.CreateAttr("attr.name", a.Name)
		key.CreateAttr("attr.type", a.Type)
		root.InsertChildAt(graph.Index(), key)
	}

	values := v.resolve()
	for _, node := range graph.ChildElements() {
		if node.Tag != "node" {
			continue
		}
		for i, a := range schema {
			data := node.CreateElement("data")
			data.CreateAttr("key", a.Name)
			if values[i] != "" {
				data.SetText(values[i])
			}
		}
	}
	return nil
}

func findGraph(root *etree.Element) *etree.Element {
	for _, el := range root.ChildElements() {
		if el.Tag == "graph" {
			return el
		}
	}
	return nil
}
