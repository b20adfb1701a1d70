package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/treeize/pkg/tree"
)

func TestToDOT(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, DOTOptions{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"root" [label="root"];`,
		`"root" -> "left";`,
		`"root" -> "right";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := tree.New(nil)
	err := g.AddNode(tree.Node{
		ID:    "n",
		Label: "node",
		Open:  true,
		Meta:  tree.Metadata{"weight": 3, "kind": "leaf"},
	})
	if err != nil {
		t.Fatalf("AddNode() error: %v", err)
	}

	dot := ToDOT(g, DOTOptions{Detailed: true})
	if !strings.Contains(dot, "kind: leaf") || !strings.Contains(dot, "weight: 3") {
		t.Errorf("detailed DOT missing metadata:\n%s", dot)
	}
}

func TestToDOTCollapsedStyling(t *testing.T) {
	g := tree.New(nil)
	if err := g.AddNode(tree.Node{ID: "c", Label: "c", Open: false}); err != nil {
		t.Fatalf("AddNode() error: %v", err)
	}

	dot := ToDOT(g, DOTOptions{})
	if !strings.Contains(dot, "dashed") || !strings.Contains(dot, "lightgrey") {
		t.Errorf("collapsed node should use dashed grey styling:\n%s", dot)
	}
}

func TestToDOTHiddenPins(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, DOTOptions{
		HasOutput: func(id string) bool { return id != "root" },
	})
	if strings.Contains(dot, "->") {
		t.Errorf("wires from a hidden output pin should be skipped:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 120.50 80.25" xmlns="http://www.w3.org/2000/svg">rest`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 120.50 80.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="121"`) && !strings.Contains(out, `width="120"`) {
		t.Errorf("width not rewritten in pixels: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg>no viewbox</svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("normalizeViewBox() changed input without a viewBox: %s", got)
	}
}
