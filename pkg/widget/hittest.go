package widget

import (
	"github.com/matzehuels/treeize/pkg/tree"
)

// Cell scale: graph positions are float64 pixels, the canvas is cells.
// One column covers 10px and one row 15px, so the default layout
// spacing (200px horizontal, 150px vertical) maps to 20 columns and 10
// rows between node centers.
const (
	pxPerCol = 10.0
	pxPerRow = 15.0

	minFrameWidth = 12
	maxBodyLines  = 3
)

// frame is a node box in content cell space (before viewport offset).
type frame struct {
	x, y, w, h int
}

func (f frame) contains(x, y int) bool {
	return x >= f.x && x < f.x+f.w && y >= f.y && y < f.y+f.h
}

func (f frame) inPinCell() (int, int)  { return f.x + f.w/2, f.y }
func (f frame) outPinCell() (int, int) { return f.x + f.w/2, f.y + f.h - 1 }

// frameFor sizes a node box from its viewer presentation and centers
// it on the node position.
func frameFor(n *tree.Node, v Viewer) frame {
	title := v.Title(n)
	w := len([]rune(title)) + 4
	if w < minFrameWidth {
		w = minFrameWidth
	}

	h := 3 // border, header, border
	var body []string
	if n.Open && v.HasBody(n) {
		body = bodyLines(v.Body(n))
		if len(body) > 0 {
			h += 1 + len(body) // separator + body rows
			for _, line := range body {
				if lw := len([]rune(line)) + 2; lw > w {
					w = lw
				}
			}
		}
	}

	cx := int(n.Pos.X / pxPerCol)
	cy := int(n.Pos.Y / pxPerRow)
	return frame{x: cx - w/2, y: cy - h/2, w: w, h: h}
}

// nodeAt returns the topmost node whose frame contains the cell.
// Later IDs draw on top, so the scan runs in reverse order.
func (m *Model) nodeAt(x, y int) (string, bool) {
	ids := m.graph.NodeIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		if f, ok := m.frames[ids[i]]; ok && f.contains(x, y) {
			return ids[i], true
		}
	}
	return "", false
}

// pinAt reports the pin at a cell: the owning node and whether it is
// the output pin. Hidden pins are never hit.
func (m *Model) pinAt(x, y int) (id string, out bool, ok bool) {
	for _, nid := range m.graph.NodeIDs() {
		f, found := m.frames[nid]
		if !found {
			continue
		}
		n := m.graph.Node(nid)
		if px, py := f.outPinCell(); m.viewer.HasOutput(n) && px == x && py == y {
			return nid, true, true
		}
		if px, py := f.inPinCell(); m.viewer.HasInput(n) && px == x && py == y {
			return nid, false, true
		}
	}
	return "", false, false
}

func bodyLines(body string) []string {
	if body == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i <= len(body); i++ {
		if i == len(body) || body[i] == '\n' {
			lines = append(lines, body[start:i])
			start = i + 1
			if len(lines) == maxBodyLines {
				break
			}
		}
	}
	return lines
}
