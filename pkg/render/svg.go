package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/treeize/pkg/layout"
	"github.com/matzehuels/treeize/pkg/tree"
)

// Option configures the SVG sink.
type Option func(*svgRenderer)

// WithStyle replaces the default style.
func WithStyle(style Style) Option {
	return func(r *svgRenderer) { r.style = style }
}

// WithPadding sets the margin around the drawing, in pixels.
func WithPadding(px float64) Option {
	return func(r *svgRenderer) { r.padding = px }
}

// WithGrid toggles the background grid.
func WithGrid(on bool) Option {
	return func(r *svgRenderer) { r.grid = on }
}

// WithSelection marks a node as selected; it is drawn with a highlight
// stroke. An empty id clears the selection.
func WithSelection(id string) Option {
	return func(r *svgRenderer) { r.selected = id }
}

// WithPinVisibility controls which pins are drawn per node. Both
// functions default to showing every pin; wires touching a hidden pin
// are skipped.
func WithPinVisibility(hasInput, hasOutput func(id string) bool) Option {
	return func(r *svgRenderer) {
		if hasInput != nil {
			r.hasInput = hasInput
		}
		if hasOutput != nil {
			r.hasOutput = hasOutput
		}
	}
}

type svgRenderer struct {
	style     Style
	padding   float64
	grid      bool
	selected  string
	hasInput  func(id string) bool
	hasOutput func(id string) bool
}

// SVG renders the graph to a standalone SVG document using the node
// positions in res. Nodes are drawn as header+body boxes (header only
// when collapsed), with the input pin centered on the top edge and the
// output pin centered on the bottom edge. Wires run as cubic beziers
// from output pins down to input pins and sit behind the node boxes.
func SVG(g *tree.Graph, res layout.Result, opts ...Option) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("render svg: nil graph")
	}
	r := &svgRenderer{
		style:     DefaultStyle(),
		padding:   40,
		grid:      true,
		hasInput:  func(string) bool { return true },
		hasOutput: func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r.render(g, res)
}

func (r *svgRenderer) render(g *tree.Graph, res layout.Result) ([]byte, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("render svg: empty graph")
	}

	pos := func(n *tree.Node) tree.Point {
		if p, ok := res.Positions[n.ID]; ok {
			return p
		}
		return n.Pos
	}

	// Bounding box over node boxes.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		p := pos(n)
		w, h := r.style.NodeWidth, r.style.NodeHeight(n.Open)
		minX = math.Min(minX, p.X-w/2)
		minY = math.Min(minY, p.Y-h/2)
		maxX = math.Max(maxX, p.X+w/2)
		maxY = math.Max(maxY, p.Y+h/2)
	}
	ox, oy := r.padding-minX, r.padding-minY
	width := maxX - minX + 2*r.padding
	height := maxY - minY + 2*r.padding

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill=%q/>`+"\n", r.style.Background)
	if r.grid {
		r.writeGrid(&b, width, height)
	}

	byID := make(map[string]*tree.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	// Wires first so node boxes cover their endpoints.
	for _, w := range g.Wires() {
		from, to := byID[w.From], byID[w.To]
		if from == nil || to == nil {
			continue
		}
		if !r.hasOutput(from.ID) || !r.hasInput(to.ID) {
			continue
		}
		fp, tp := pos(from), pos(to)
		x1 := fp.X
		y1 := fp.Y + r.style.NodeHeight(from.Open)/2
		x2 := tp.X
		y2 := tp.Y - r.style.NodeHeight(to.Open)/2
		frame := r.style.WireFrame
		fmt.Fprintf(&b, `<path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke=%q stroke-width="%.1f"/>`+"\n",
			x1+ox, y1+oy, x1+ox, y1+frame+oy, x2+ox, y2-frame+oy, x2+ox, y2+oy, r.style.WireColor, r.style.WireWidth)
	}

	for _, id := range g.NodeIDs() {
		r.writeNode(&b, byID[id], pos(byID[id]), ox, oy)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func (r *svgRenderer) writeGrid(b *strings.Builder, width, height float64) {
	s := r.style.GridSpacing
	if s <= 0 {
		return
	}
	for x := s; x < width; x += s {
		fmt.Fprintf(b, `<line x1="%.1f" y1="0" x2="%.1f" y2="%.0f" stroke=%q stroke-width="1"/>`+"\n",
			x, x, height, r.style.GridStroke)
	}
	for y := s; y < height; y += s {
		fmt.Fprintf(b, `<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke=%q stroke-width="1"/>`+"\n",
			y, width, y, r.style.GridStroke)
	}
}

func (r *svgRenderer) writeNode(b *strings.Builder, n *tree.Node, p tree.Point, ox, oy float64) {
	st := r.style
	w := st.NodeWidth
	h := st.NodeHeight(n.Open)
	x := p.X - w/2 + ox
	y := p.Y - h/2 + oy

	stroke := st.NodeStroke
	strokeW := 1.5
	if n.ID == r.selected {
		stroke = st.SelectStroke
		strokeW = 3
	}

	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill=%q stroke=%q stroke-width="%.1f"/>`+"\n",
		x, y, w, h, st.NodeRadius, st.NodeFill, stroke, strokeW)
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill=%q/>`+"\n",
		x, y, w, st.HeaderH, st.NodeRadius, st.HeaderFill)
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="%.0f" fill=%q text-anchor="middle" font-family="sans-serif">%s</text>`+"\n",
		x+w/2, y+st.HeaderH/2+st.FontSize/3, st.FontSize, st.TextColor, escapeText(n.Label))

	if r.hasInput(n.ID) {
		r.writePin(b, p.X+ox, y)
	}
	if r.hasOutput(n.ID) {
		r.writePin(b, p.X+ox, y+h)
	}
}

func (r *svgRenderer) writePin(b *strings.Builder, cx, cy float64) {
	st := r.style
	half := st.PinSize / 2
	switch st.PinShape {
	case PinSquare:
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q stroke=%q/>`+"\n",
			cx-half, cy-half, st.PinSize, st.PinSize, st.PinFill, st.PinStroke)
	case PinTriangle:
		fmt.Fprintf(b, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill=%q stroke=%q/>`+"\n",
			cx-half, cy-half, cx+half, cy-half, cx, cy+half, st.PinFill, st.PinStroke)
	default:
		fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill=%q stroke=%q/>`+"\n",
			cx, cy, half, st.PinFill, st.PinStroke)
	}
}

func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}
