// Package nodelink renders network topologies as node-link diagrams.
//
// # Usage
//
// Convert a topology to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{HighlightRing: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
