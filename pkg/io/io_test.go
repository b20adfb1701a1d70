package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treeize/pkg/tree"
)

const sampleJSON = `{
  "nodes": [
    {"id": "root", "label": "Root", "pos": {"x": 10, "y": 0}},
    {"id": "mid", "open": false, "meta": {"kind": "branch"}},
    {"id": "leaf"}
  ],
  "wires": [
    {"from": "root", "to": "mid"},
    {"from": "mid", "to": "leaf"}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if got := g.NodeCount(); got != 3 {
		t.Errorf("NodeCount() = %d, want 3", got)
	}
	if got := g.WireCount(); got != 2 {
		t.Errorf("WireCount() = %d, want 2", got)
	}

	root := g.Node("root")
	if root.Label != "Root" {
		t.Errorf("root label = %q, want %q", root.Label, "Root")
	}
	if root.Pos != (tree.Point{X: 10, Y: 0}) {
		t.Errorf("root pos = %v, want {10 0}", root.Pos)
	}
	if !root.Open {
		t.Error("open should default to true")
	}

	mid := g.Node("mid")
	if mid.Label != "mid" {
		t.Errorf("label should default to id, got %q", mid.Label)
	}
	if mid.Open {
		t.Error("mid should be collapsed")
	}
	if mid.Meta["kind"] != "branch" {
		t.Errorf(`mid meta kind = %v, want "branch"`, mid.Meta["kind"])
	}

	if !g.Connected("root", "mid") || !g.Connected("mid", "leaf") {
		t.Error("wires missing after import")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{nodes")); err == nil {
		t.Error("ReadJSON() should fail on malformed JSON")
	}
}

func TestReadJSONDuplicateNode(t *testing.T) {
	in := `{"nodes": [{"id": "a"}, {"id": "a"}], "wires": []}`
	_, err := ReadJSON(strings.NewReader(in))
	if !errors.Is(err, tree.ErrDuplicateNodeID) {
		t.Errorf("error = %v, want ErrDuplicateNodeID", err)
	}
	if err == nil || !strings.Contains(err.Error(), "node a") {
		t.Errorf("error should name the node: %v", err)
	}
}

func TestReadJSONUnknownWireEndpoint(t *testing.T) {
	in := `{"nodes": [{"id": "a"}], "wires": [{"from": "a", "to": "ghost"}]}`
	_, err := ReadJSON(strings.NewReader(in))
	if !errors.Is(err, tree.ErrUnknownTargetNode) {
		t.Errorf("error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestReadJSONCycle(t *testing.T) {
	in := `{
	  "nodes": [{"id": "a"}, {"id": "b"}],
	  "wires": [{"from": "a", "to": "b"}, {"from": "b", "to": "a"}]
	}`
	_, err := ReadJSON(strings.NewReader(in))
	if !errors.Is(err, tree.ErrWireCycle) {
		t.Errorf("error = %v, want ErrWireCycle", err)
	}
}

func TestRoundTrip(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	g2, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(round-trip) error: %v", err)
	}

	if g2.NodeCount() != g.NodeCount() || g2.WireCount() != g.WireCount() {
		t.Fatalf("round-trip counts = (%d nodes, %d wires), want (%d, %d)",
			g2.NodeCount(), g2.WireCount(), g.NodeCount(), g.WireCount())
	}
	for _, id := range g.NodeIDs() {
		a, b := g.Node(id), g2.Node(id)
		if b == nil {
			t.Fatalf("node %s missing after round-trip", id)
		}
		if a.Label != b.Label || a.Pos != b.Pos || a.Open != b.Open {
			t.Errorf("node %s = %+v after round-trip, want %+v", id, b, a)
		}
	}
}

func TestExportImportFiles(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	g2, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if g2.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d after file round-trip, want 3", g2.NodeCount())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportJSON() on missing file should fail")
	}
}
