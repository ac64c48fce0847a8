// Package pkg provides the core libraries for warcli, the warnet topology tool.
//
// # Overview
//
// warcli produces GraphML documents that describe simulated Bitcoin
// networks: every node is a bitcoind instance and every directed edge an
// outbound peer connection. The pkg directory is organized as follows:
//
//  1. [topology] - Graph structure and the ring-plus-random-peers generator
//  2. [graphml] - Base serializer, attribute schema, augmenter, validator, sinks
//  3. [bitcoinconf] - bitcoin.conf parsing and flattening
//  4. [pipeline] - Orchestration (configure → generate → render)
//  5. [config] - The warcli settings file
//  6. [render/nodelink] - Graphviz previews of a topology
//  7. [io] - JSON export and import of a topology
//
// # Architecture
//
// The data flow through "warcli graph create":
//
//	node count, bitcoin.conf, attribute values
//	         ↓
//	    [topology] package (ring + up to seven extra peers per node)
//	         ↓
//	    [graphml] package (encode, augment with keys and data, marshal)
//	         ↓
//	    file (atomic rename) or stdout
//
// # Quick Start
//
//	g, _ := topology.Generate(12, topology.WithSeed(42))
//	doc, _ := graphml.Render(g, graphml.Values{Version: "27.0"})
//	data, _ := graphml.Marshal(doc)
//	_ = graphml.WriteFile("network.graphml", data)
//
// Supporting packages: [errors] defines the coded error type shared by all
// stages, [observability] exposes hooks around generation, rendering and
// writing, and [buildinfo] carries version information set at link time.
package pkg
