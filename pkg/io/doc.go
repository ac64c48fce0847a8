// Package io provides JSON import and export for network topologies.
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": ["n0", "n1", "n2"],
//	  "edges": [
//	    {"from": "n0", "to": "n1"},
//	    {"from": "n1", "to": "n2"},
//	    {"from": "n2", "to": "n0"}
//	  ]
//	}
//
// It carries structure only. Per-node configuration belongs in the GraphML
// document produced by package graphml.
//
// # Import
//
// Use [ImportJSON] to read a topology from a file path, or [ReadJSON] to
// read from any io.Reader. Both reject self-loops, duplicate edges and
// edges to unknown nodes.
//
// # Export
//
// Use [ExportJSON] to write a topology to a file, or [WriteJSON] to write
// to any io.Writer. Export followed by import yields the same edge list.
package io
