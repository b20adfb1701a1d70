// Package tree provides the graph container used by the treeize widget:
// nodes connected by wires that flow strictly top-to-bottom.
//
// # Overview
//
// A treeize graph is a set of nodes, each exposing exactly one input pin
// (top edge) and one output pin (bottom edge), plus a set of wires joining
// output pins to input pins. The single-pin rule keeps the data model flat:
// a wire is fully described by its two node IDs, and pin bookkeeping reduces
// to the graph's adjacency lists.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode] or
// [Graph.InsertNode], and wires with [Graph.Connect]:
//
//	g := tree.New(nil)
//	g.AddNode(tree.Node{ID: "root", Open: true})
//	g.AddNode(tree.Node{ID: "child", Open: true})
//	g.Connect("root", "child")
//
// Connect enforces the wire rules up front: no self-wires, no duplicates,
// and no cycles (a cycle cannot be drawn strictly downward). Query structure
// with [Graph.Children], [Graph.Parents], [Graph.Sources], and [Graph.Sinks].
//
// # Deferred Effects
//
// Interactive code must not mutate the graph while the widget is mid-frame:
// a viewer callback removing a node would invalidate iteration state. The
// [Effects] queue records mutations during input handling, and
// [Graph.Apply] replays them afterwards. Effects referencing nodes that no
// longer exist are skipped.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package tree
