// Package graphml turns a [topology.Graph] into the annotated GraphML
// document consumed by the network orchestrator.
//
// # Pipeline
//
// Rendering runs in two passes:
//
//  1. [Encode] writes a plain GraphML document: one graph element holding
//     one node element per topology node and one edge element per edge.
//  2. [Augment] re-parses that document into a mutable tree, declares the
//     attribute keys of [Schema] and attaches one data element per key to
//     every node.
//
// [Render] runs both passes and [Marshal] emits the result with a fixed
// layout (XML declaration, 4-space indentation, "\n" line endings) so the
// same graph and values always produce the same bytes.
//
// # Structure
//
// Augment relies on this shape and fails with [ErrMissingGraph] rather
// than silently skipping nodes when it does not hold:
//
//	<graphml>
//	    <key .../>        seven declarations, in schema order
//	    <graph>
//	        <node>        seven data children each, in schema order
//	        <edge/>       source/target references, no data
//	    </graph>
//	</graphml>
//
// # Output
//
// [WriteFile] replaces the target file atomically so a failed write never
// leaves a truncated document behind. [Write] sends the same bytes to any
// io.Writer, typically standard output.
//
// [Validate] checks an existing document against the same contract.
package graphml
