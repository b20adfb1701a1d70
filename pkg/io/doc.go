// Package io provides JSON import and export for tree graphs.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "root", "label": "Root", "pos": {"x": 0, "y": 0}},
//	    {"id": "leaf", "label": "Leaf", "open": false}
//	  ],
//	  "wires": [
//	    {"from": "root", "to": "leaf"}
//	  ]
//	}
//
// Each node requires an "id"; "label" defaults to the id, "pos" to the
// origin, and "open" to true. An optional "meta" object carries
// freeform key-value data. Wires reference node IDs and always run
// from a node's output pin to another node's input pin.
//
// # Usage
//
// [ImportJSON] reads a graph from a file path, [ReadJSON] from any
// io.Reader. Both validate structure: duplicate IDs, unknown wire
// endpoints, and wires that would close a cycle are rejected, with
// errors wrapped naming the offending node or wire. [ExportJSON] and
// [WriteJSON] are the write-side counterparts; the output round-trips
// through ReadJSON identically.
package io
