// Package widget implements an interactive terminal view of a tree
// graph, built on bubbletea and lipgloss.
//
// # Overview
//
// [Model] is a bubbletea model that draws a [tree.Graph] as node boxes
// connected by wires on a cell canvas. Layout is always top to bottom:
// each node exposes at most one input pin on its top edge and one
// output pin on its bottom edge, and wires flow downward between them.
//
// The widget starts in [ModeReadonly]: nodes can be selected and
// collapsed and the viewport panned, but the graph cannot be changed.
// [ModeEditable] additionally allows dragging nodes and drawing new
// wires from an output pin to an input pin. Wires can never be removed
// through the widget, in either mode; structural edits beyond moving
// and connecting go through [tree.Effects] on the caller's side.
//
// # Viewer
//
// Node appearance is delegated to a [Viewer]. The zero-configuration
// [DefaultViewer] shows the node label and both pins; callers provide
// their own Viewer to hide pins, add bodies, or retitle nodes. A Viewer
// that also implements [Connector] can veto or redirect wire creation.
//
// # Usage
//
//	m := widget.New(g, widget.DefaultViewer{}, widget.WithMode(widget.ModeEditable))
//	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
//	out, err := p.Run()
package widget
