package widget

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treeize/pkg/tree"
)

// Mode controls which interactions the widget allows.
type Mode int

const (
	// ModeReadonly allows selection, collapsing, and panning only.
	ModeReadonly Mode = iota

	// ModeEditable additionally allows dragging nodes and drawing new
	// wires between pins.
	ModeEditable
)

func (m Mode) String() string {
	if m == ModeEditable {
		return "editable"
	}
	return "readonly"
}

const panStep = 2

var (
	statusModeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	statusDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// Option configures a [Model].
type Option func(*Model)

// WithMode sets the starting interaction mode.
func WithMode(mode Mode) Option {
	return func(m *Model) { m.mode = mode }
}

// WithSize sets the initial canvas size. The model also listens for
// [tea.WindowSizeMsg], so this mostly matters for tests and for use
// outside a terminal.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// Model is the bubbletea model for a tree graph.
type Model struct {
	graph  *tree.Graph
	viewer Viewer
	fx     *tree.Effects
	mode   Mode

	width, height    int
	offsetX, offsetY int

	selected string
	dragging string
	wireFrom string
	lastX    int
	lastY    int
	mouseX   int
	mouseY   int

	frames map[string]frame
	edited bool
}

// New builds a widget model for the graph. A nil viewer falls back to
// [DefaultViewer]. The graph is edited in place when the widget runs
// in [ModeEditable].
func New(g *tree.Graph, v Viewer, opts ...Option) Model {
	if v == nil {
		v = DefaultViewer{}
	}
	m := Model{
		graph:  g,
		viewer: v,
		fx:     &tree.Effects{},
		width:  80,
		height: 24,
		frames: map[string]frame{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	m.centerView()
	return m
}

// Graph returns the underlying graph.
func (m Model) Graph() *tree.Graph { return m.graph }

// Mode returns the current interaction mode.
func (m Model) Mode() Mode { return m.mode }

// Selected returns the ID of the selected node, or "".
func (m Model) Selected() string { return m.selected }

// Edited reports whether the graph was changed through the widget.
func (m Model) Edited() bool { return m.edited }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)

	case "enter":
		if n := m.graph.Node(m.selected); n != nil {
			m.fx.OpenNode(n.ID, !n.Open)
			m.apply(false)
		}

	case "left", "h":
		m.offsetX -= panStep
	case "right", "l":
		m.offsetX += panStep
	case "up", "k":
		m.offsetY -= panStep
	case "down", "j":
		m.offsetY += panStep
	case "c":
		m.centerView()

	case "e":
		m.mode = ModeEditable
	case "r":
		m.mode = ModeReadonly
		m.dragging = ""
		m.wireFrom = ""

	case "esc":
		if m.wireFrom != "" {
			m.wireFrom = ""
		} else {
			m.selected = ""
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX, m.mouseY = msg.X, msg.Y
	cx, cy := msg.X+m.offsetX, msg.Y+m.offsetY

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.mode == ModeEditable {
			if id, out, ok := m.pinAt(cx, cy); ok {
				if out {
					m.wireFrom = id
				} else if m.wireFrom != "" {
					m.connect(m.wireFrom, id)
					m.wireFrom = ""
				}
				return m, nil
			}
		}
		if id, ok := m.nodeAt(cx, cy); ok {
			m.selected = id
			if m.mode == ModeEditable {
				m.dragging = id
				m.lastX, m.lastY = cx, cy
			}
		} else {
			m.selected = ""
		}

	case msg.Action == tea.MouseActionMotion:
		if m.dragging != "" && m.mode == ModeEditable {
			dx, dy := cx-m.lastX, cy-m.lastY
			if dx != 0 || dy != 0 {
				m.fx.Move(m.dragging, float64(dx)*pxPerCol, float64(dy)*pxPerRow)
				m.lastX, m.lastY = cx, cy
				m.apply(true)
			}
		}

	case msg.Action == tea.MouseActionRelease:
		m.dragging = ""
		if m.wireFrom != "" && m.mode == ModeEditable {
			if id, out, ok := m.pinAt(cx, cy); ok && !out && id != m.wireFrom {
				m.connect(m.wireFrom, id)
			}
			m.wireFrom = ""
		}
	}
	return m, nil
}

// connect queues a wire from one node's output pin to another's input
// pin, routed through the viewer's [Connector] when it implements one.
// The effects layer drops wires that would duplicate or form a cycle.
func (m *Model) connect(from, to string) {
	before := m.graph.WireCount()
	if c, ok := m.viewer.(Connector); ok {
		c.Connect(m.graph.OutPinOf(from), m.graph.InPinOf(to), m.fx)
	} else {
		m.fx.Connect(from, to)
	}
	m.apply(false)
	if m.graph.WireCount() != before {
		m.edited = true
	}
}

func (m *Model) apply(edit bool) {
	if m.fx.Empty() {
		return
	}
	m.graph.Apply(m.fx)
	if edit {
		m.edited = true
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.frames = make(map[string]frame, m.graph.NodeCount())
	for _, n := range m.graph.Nodes() {
		m.frames[n.ID] = frameFor(n, m.viewer)
	}
}

func (m *Model) cycleSelection(dir int) {
	ids := m.graph.NodeIDs()
	if len(ids) == 0 {
		return
	}
	idx := -1
	for i, id := range ids {
		if id == m.selected {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(ids)) % len(ids)
	m.selected = ids[idx]
}

// centerView pans so the content bounding box sits centered on the
// canvas.
func (m *Model) centerView() {
	if len(m.frames) == 0 {
		return
	}
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	maxX, maxY := -minX, -minY
	for _, f := range m.frames {
		minX = min(minX, f.x)
		minY = min(minY, f.y)
		maxX = max(maxX, f.x+f.w)
		maxY = max(maxY, f.y+f.h)
	}
	canvasH := m.height - 1
	m.offsetX = minX - (m.width-(maxX-minX))/2
	m.offsetY = minY - (canvasH-(maxY-minY))/2
}

func (m Model) View() string {
	canvasH := m.height - 1
	c := newCanvas(m.width, canvasH)

	// Wires sit behind node boxes.
	for _, w := range m.graph.Wires() {
		from, to := m.graph.Node(w.From), m.graph.Node(w.To)
		ff, fok := m.frames[w.From]
		tf, tok := m.frames[w.To]
		if from == nil || to == nil || !fok || !tok {
			continue
		}
		if !m.viewer.HasOutput(from) || !m.viewer.HasInput(to) {
			continue
		}
		x1, y1 := ff.outPinCell()
		x2, y2 := tf.inPinCell()
		c.wire(x1-m.offsetX, y1-m.offsetY, x2-m.offsetX, y2-m.offsetY, paintWire)
	}

	if m.wireFrom != "" {
		if f, ok := m.frames[m.wireFrom]; ok {
			x1, y1 := f.outPinCell()
			c.wire(x1-m.offsetX, y1-m.offsetY, m.mouseX, m.mouseY, paintPending)
		}
	}

	for _, id := range m.graph.NodeIDs() {
		n := m.graph.Node(id)
		f := m.frames[id]
		var body []string
		if n.Open && m.viewer.HasBody(n) {
			body = bodyLines(m.viewer.Body(n))
		}
		c.box(f.x-m.offsetX, f.y-m.offsetY, f.w, f.h, m.viewer.Title(n), body, id == m.selected)

		if m.viewer.HasInput(n) {
			px, py := f.inPinCell()
			c.set(px-m.offsetX, py-m.offsetY, '○', paintPin)
		}
		if m.viewer.HasOutput(n) {
			px, py := f.outPinCell()
			c.set(px-m.offsetX, py-m.offsetY, '●', paintPin)
		}
	}

	return c.String() + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	hints := "tab select · enter fold · hjkl pan · c center · e edit · q quit"
	if m.mode == ModeEditable {
		hints = "drag move · pin→pin wire · esc cancel · r readonly · q quit"
	}
	status := statusModeStyle.Render(fmt.Sprintf(" %s ", m.mode)) +
		statusDimStyle.Render(" "+hints)
	if m.selected != "" {
		if n := m.graph.Node(m.selected); n != nil {
			status += statusDimStyle.Render("  ["+m.viewer.Title(n)+"]")
		}
	}
	return status
}
