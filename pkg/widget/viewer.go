package widget

import "github.com/matzehuels/treeize/pkg/tree"

// Viewer controls how nodes are presented. Implementations decide the
// header title, which pins are shown, and an optional body below the
// header. Pins the viewer hides take no wires in the widget and
// contribute no edges to layout.
type Viewer interface {
	// Title returns the header text for a node.
	Title(n *tree.Node) string

	// HasInput reports whether the node shows its input pin.
	HasInput(n *tree.Node) bool

	// HasOutput reports whether the node shows its output pin.
	HasOutput(n *tree.Node) bool

	// HasBody reports whether an open node shows a body section.
	HasBody(n *tree.Node) bool

	// Body returns the body text for an open node. Multiple lines are
	// allowed; the widget truncates to fit the node frame.
	Body(n *tree.Node) string
}

// Connector lets a [Viewer] intercept new wires. When the user drops a
// pending wire on an input pin, Connect is called instead of queueing
// the wire directly; the implementation may queue a different wire, or
// nothing at all to veto the connection.
type Connector interface {
	Connect(from tree.OutPin, to tree.InPin, fx *tree.Effects)
}

// DefaultViewer shows the node label as title, both pins, and no body.
type DefaultViewer struct{}

func (DefaultViewer) Title(n *tree.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

func (DefaultViewer) HasInput(*tree.Node) bool  { return true }
func (DefaultViewer) HasOutput(*tree.Node) bool { return true }
func (DefaultViewer) HasBody(*tree.Node) bool   { return false }
func (DefaultViewer) Body(*tree.Node) string    { return "" }
