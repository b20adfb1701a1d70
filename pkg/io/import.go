package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treeize/pkg/tree"
)

type graph struct {
	Nodes []node        `json:"nodes"`
	Wires []wire        `json:"wires"`
	Meta  tree.Metadata `json:"meta,omitempty"`
}

type node struct {
	ID    string        `json:"id"`
	Label string        `json:"label,omitempty"`
	Pos   *point        `json:"pos,omitempty"`
	Open  *bool         `json:"open,omitempty"`
	Meta  tree.Metadata `json:"meta,omitempty"`
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type wire struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadJSON decodes a JSON graph from r.
//
// Each node must have an "id". Optional fields:
//   - label: display label (defaults to the id)
//   - pos: {"x": .., "y": ..} position in pixels (defaults to origin)
//   - open: whether the node body is expanded (defaults to true)
//   - meta: object with arbitrary key-value pairs
//
// Each wire must have "from" and "to" fields referencing node IDs.
//
// ReadJSON returns an error if the JSON is malformed, a node ID
// repeats, a wire references an unknown node, or a wire would close a
// cycle. Errors are wrapped with the offending node or wire; use
// errors.Is to check for the sentinel errors in [tree].
//
// The returned graph is independent of r and can be modified freely.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := tree.New(data.Meta)
	for _, n := range data.Nodes {
		nd := tree.Node{ID: n.ID, Label: n.Label, Open: true, Meta: n.Meta}
		if nd.Label == "" {
			nd.Label = n.ID
		}
		if n.Pos != nil {
			nd.Pos = tree.Point{X: n.Pos.X, Y: n.Pos.Y}
		}
		if n.Open != nil {
			nd.Open = *n.Open
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, w := range data.Wires {
		if err := g.Connect(w.From, w.To); err != nil {
			return nil, fmt.Errorf("wire %s->%s: %w", w.From, w.To, err)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with
// the file path for context.
func ImportJSON(path string) (*tree.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}
