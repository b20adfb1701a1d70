// Package layout computes top-to-bottom hierarchical positions for a tree
// graph.
//
// # Pipeline
//
// Layout runs in three stages:
//
//  1. Layer assignment ([AssignLayers]): nodes are pushed down to one row
//     below their deepest parent using a longest-path topological traversal,
//     so every wire flows strictly downward.
//  2. Row ordering ([OrderRows]): barycenter sweeps reduce wire crossings
//     between consecutive rows.
//  3. Coordinate assignment ([Positions]): each row is centered horizontally,
//     rows are stacked vertically, and measured node sizes (when provided)
//     widen the spacing so neighbors never overlap.
//
// [Compute] runs all three and [Apply] writes the result back into the
// graph's node positions. Nodes with no wires keep falling back to the
// configured start offset, matching how a fresh node dropped on the canvas
// behaves before its first connection.
//
// Wires only participate in layering when both endpoints show the relevant
// pin: a hidden output or input pin (see the widget's Viewer) removes the
// wire from consideration without touching the graph itself.
package layout
