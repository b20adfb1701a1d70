package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/treeize/pkg/tree"
)

// Default spacing values, in graph-space pixels.
const (
	// DefaultHorizontalSpacing is the gap between node centers in a row.
	DefaultHorizontalSpacing = 200.0
	// DefaultVerticalSpacing is the gap between row baselines.
	DefaultVerticalSpacing = 150.0
)

// Config holds tuning parameters for the tree layout.
// The zero value is usable: zero spacing fields fall back to the defaults.
type Config struct {
	// HorizontalSpacing is the minimum distance between node centers within
	// a row. Measured node widths can stretch it further.
	HorizontalSpacing float64

	// VerticalSpacing is the distance between consecutive rows. Measured
	// node heights can stretch it further.
	VerticalSpacing float64

	// StartX and StartY offset the whole layout. Disconnected nodes are
	// placed directly at this offset.
	StartX float64
	StartY float64

	// Sizes optionally maps node IDs to measured extents. When present,
	// spacing honors the actual node boxes so neighbors don't overlap.
	Sizes map[string]tree.Size

	// Keep filters which wires participate in layering and ordering.
	// Nil keeps every wire.
	Keep func(tree.Wire) bool
}

func (c Config) horizontal() float64 {
	if c.HorizontalSpacing > 0 {
		return c.HorizontalSpacing
	}
	return DefaultHorizontalSpacing
}

func (c Config) vertical() float64 {
	if c.VerticalSpacing > 0 {
		return c.VerticalSpacing
	}
	return DefaultVerticalSpacing
}

// Result is a computed layout: per-node positions plus the row structure
// that produced them.
type Result struct {
	// Positions maps node IDs to their computed top-left positions.
	Positions map[string]tree.Point

	// Rows maps row indices to node IDs in left-to-right order.
	Rows map[int][]string

	// Crossings is the wire crossing count of the final ordering.
	Crossings int
}

// Compute performs the full hierarchical layout: layer assignment, crossing
// reduction, and coordinate assignment. It never mutates the graph; use
// [Apply] or [AndApply] to write the positions back.
func Compute(g *tree.Graph, cfg Config) Result {
	rows := AssignLayers(g, cfg.Keep)
	orders := OrderRows(g, rows, cfg.Keep)
	_, children := adjacency(g, cfg.Keep)

	result := Result{
		Positions: make(map[string]tree.Point, g.NodeCount()),
		Rows:      orders,
		Crossings: CountCrossings(orders, children),
	}

	hSpace := cfg.horizontal()
	vSpace := cfg.vertical()

	y := cfg.StartY
	for _, row := range slices.Sorted(maps.Keys(orders)) {
		ids := orders[row]

		// Per-node slot widths: at least the configured spacing, stretched
		// by measured widths.
		slots := make([]float64, len(ids))
		rowWidth := 0.0
		rowHeight := 0.0
		for i, id := range ids {
			slots[i] = hSpace
			if sz, ok := cfg.Sizes[id]; ok {
				if sz.W > slots[i] {
					slots[i] = sz.W
				}
				if sz.H > rowHeight {
					rowHeight = sz.H
				}
			}
			rowWidth += slots[i]
		}

		// Center the row around StartX.
		x := cfg.StartX - rowWidth/2
		for i, id := range ids {
			result.Positions[id] = tree.Point{X: x + slots[i]/2, Y: y}
			x += slots[i]
		}

		if rowHeight < vSpace {
			rowHeight = vSpace
		}
		y += rowHeight
	}

	// Fully disconnected nodes sit in row 0 with everything else only when
	// wires exist for them; nodes of an empty graph or isolated islands
	// still get positions above, so nothing is left out. Guard anyway
	// against callers passing foreign row maps through RowsOf.
	for _, id := range g.NodeIDs() {
		if _, ok := result.Positions[id]; !ok {
			result.Positions[id] = tree.Point{X: cfg.StartX, Y: cfg.StartY}
		}
	}

	return result
}

// Apply writes computed positions into the graph.
// Positions for unknown node IDs are ignored.
func Apply(g *tree.Graph, positions map[string]tree.Point) {
	for id, pos := range positions {
		g.SetPos(id, pos)
	}
}

// AndApply computes the layout and applies it in one step, returning the
// result for inspection.
func AndApply(g *tree.Graph, cfg Config) Result {
	result := Compute(g, cfg)
	Apply(g, result.Positions)
	return result
}
