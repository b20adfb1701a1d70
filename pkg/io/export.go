package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treeize/pkg/tree"
)

// WriteJSON encodes a graph as JSON and writes it to w. Positions,
// openness, and metadata are preserved, so the output re-imports with
// [ReadJSON] identically. Nodes are written in sorted ID order for
// stable output.
func WriteJSON(g *tree.Graph, w io.Writer) error {
	ids := g.NodeIDs()
	out := graph{
		Nodes: make([]node, len(ids)),
		Wires: make([]wire, 0, g.WireCount()),
		Meta:  g.Meta(),
	}

	for i, id := range ids {
		n := g.Node(id)
		nd := node{ID: n.ID, Meta: n.Meta}
		if n.Label != n.ID {
			nd.Label = n.Label
		}
		if n.Pos != (tree.Point{}) {
			nd.Pos = &point{X: n.Pos.X, Y: n.Pos.Y}
		}
		if !n.Open {
			open := false
			nd.Open = &open
		}
		out.Nodes[i] = nd
	}
	for _, wr := range g.Wires() {
		out.Wires = append(out.Wires, wire{From: wr.From, To: wr.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *tree.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
