package tree

import (
	"errors"
	"maps"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.Connect] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.Connect] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateWire is returned by [Graph.Connect] when a wire between the
	// same pair of pins already exists. With a single output pin and a single
	// input pin per node, at most one wire can join two nodes.
	ErrDuplicateWire = errors.New("duplicate wire")

	// ErrSelfWire is returned by [Graph.Connect] when From and To name the
	// same node. A node cannot feed its own input pin.
	ErrSelfWire = errors.New("wire endpoints must differ")

	// ErrWireCycle is returned by [Graph.Connect] when the new wire would
	// close a directed cycle. Wires flow strictly downward, so a cyclic graph
	// cannot be drawn.
	ErrWireCycle = errors.New("wire would create a cycle")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a cycle is
	// detected. Cycles are found using depth-first search with
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrInvalidWireEndpoint is returned by [Graph.Validate] when a wire
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidWireEndpoint = errors.New("invalid wire endpoint")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// It is commonly used by viewers to carry application data (kind, URL,
// tooltip text). Metadata maps are never nil - they are automatically
// initialized to empty maps when needed.
type Metadata map[string]any

// Point is a position in graph space. Units are abstract pixels; render
// sinks and the terminal widget map them to their own coordinate systems.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the measured extent of a node, used by the layout engine to keep
// neighbors from overlapping.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Node represents a single box in the tree graph. Every node exposes exactly
// one input pin (top edge) and one output pin (bottom edge); a viewer may
// hide either pin but never multiplies them.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label (defaults to ID when empty)
	Pos   Point    // Top-left position in graph space
	Open  bool     // Whether the node body is expanded
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Wire is a directed connection from one node's output pin to another
// node's input pin. Wires always flow downward after layout.
type Wire struct {
	From string `json:"from"` // Source node ID (output pin)
	To   string `json:"to"`   // Target node ID (input pin)
}

// Graph holds nodes and the wires connecting them.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	wires    []Wire
	outgoing map[string][]string // nodeID -> target IDs
	incoming map[string][]string // nodeID -> source IDs
	meta     Metadata
}

// New creates an empty Graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the node ID
// is empty, or ErrDuplicateNodeID if a node with the same ID already exists.
// The node's Meta field is automatically initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	return nil
}

// InsertNode adds a node with a generated UUID at the given position and
// returns its ID. The node starts open. This is the programmatic counterpart
// of dropping a new node onto the canvas.
func (g *Graph) InsertNode(label string, pos Point) string {
	id := uuid.NewString()
	// uuid collisions are not a practical concern; AddNode cannot fail here.
	_ = g.AddNode(Node{ID: id, Label: label, Pos: pos, Open: true})
	return id
}

// RemoveNode removes the node and every wire attached to either of its pins.
// Removing an unknown node is a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	g.wires = slices.DeleteFunc(g.wires, func(w Wire) bool { return w.From == id || w.To == id })
	for _, to := range g.outgoing[id] {
		g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == id })
	}
	for _, from := range g.incoming[id] {
		g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == id })
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
	delete(g.nodes, id)
}

// SetPos moves a node to the given position. Unknown IDs are ignored.
func (g *Graph) SetPos(id string, pos Point) {
	if n, ok := g.nodes[id]; ok {
		n.Pos = pos
	}
}

// MoveBy shifts a node by the given delta. Unknown IDs are ignored.
func (g *Graph) MoveBy(id string, dx, dy float64) {
	if n, ok := g.nodes[id]; ok {
		n.Pos.X += dx
		n.Pos.Y += dy
	}
}

// OpenNode expands or collapses a node's body. Unknown IDs are ignored.
func (g *Graph) OpenNode(id string, open bool) {
	if n, ok := g.nodes[id]; ok {
		n.Open = open
	}
}

// Connect adds a wire from the output pin of node from to the input pin of
// node to. It returns ErrUnknownSourceNode or ErrUnknownTargetNode if either
// endpoint is missing, ErrSelfWire if both name the same node,
// ErrDuplicateWire if the wire already exists, and ErrWireCycle if the wire
// would close a directed cycle.
func (g *Graph) Connect(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownTargetNode
	}
	if from == to {
		return ErrSelfWire
	}
	if g.Connected(from, to) {
		return ErrDuplicateWire
	}
	if g.reaches(to, from) {
		return ErrWireCycle
	}
	g.wires = append(g.wires, Wire{From: from, To: to})
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// Disconnect removes the wire from→to if it exists.
// No error is returned if the wire does not exist.
func (g *Graph) Disconnect(from, to string) {
	g.wires = slices.DeleteFunc(g.wires, func(w Wire) bool { return w.From == from && w.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// DropOutputs removes every wire leaving the node's output pin.
func (g *Graph) DropOutputs(id string) {
	for _, to := range slices.Clone(g.outgoing[id]) {
		g.Disconnect(id, to)
	}
}

// DropInputs removes every wire entering the node's input pin.
func (g *Graph) DropInputs(id string) {
	for _, from := range slices.Clone(g.incoming[id]) {
		g.Disconnect(from, id)
	}
}

// Connected reports whether a wire from→to exists.
func (g *Graph) Connected(from, to string) bool {
	return slices.Contains(g.outgoing[from], to)
}

// reaches reports whether a directed path from start to goal exists.
func (g *Graph) reaches(start, goal string) bool {
	if start == goal {
		return true
	}
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.outgoing[curr] {
			if next == goal {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// Nodes returns all nodes in the graph.
// The order is not guaranteed. The returned slice contains pointers to the
// actual node structs, so modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// NodeIDs returns all node IDs in sorted order.
func (g *Graph) NodeIDs() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Wires returns a copy of all wires in the graph.
// The order matches insertion order.
func (g *Graph) Wires() []Wire { return slices.Clone(g.wires) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// WireCount returns the number of wires in the graph.
func (g *Graph) WireCount() int { return len(g.wires) }

// Children returns the IDs of nodes wired to this node's output pin.
// Returns nil if the node has no children or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes wired into this node's input pin.
// Returns nil if the node has no parents or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of wires leaving the node's output pin.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of wires entering the node's input pin.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Node returns the node with the given ID, or nil if not found.
// The returned pointer refers to the actual node in the graph.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Sources returns nodes with no incoming wires (tree roots).
// The order is not guaranteed. Returns nil for an empty graph.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, n := range g.nodes {
		if len(g.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing wires (leaves).
// The order is not guaranteed. Returns nil for an empty graph.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, n := range g.nodes {
		if len(g.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Clone returns a deep copy of the graph. Node metadata maps are copied
// shallowly (values are shared).
func (g *Graph) Clone() *Graph {
	out := New(maps.Clone(g.meta))
	for _, n := range g.nodes {
		c := *n
		c.Meta = maps.Clone(n.Meta)
		out.nodes[c.ID] = &c
	}
	out.wires = slices.Clone(g.wires)
	for id, targets := range g.outgoing {
		out.outgoing[id] = slices.Clone(targets)
	}
	for id, sources := range g.incoming {
		out.incoming[id] = slices.Clone(sources)
	}
	return out
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that all wires connect existing nodes and that the graph is
// acyclic. Returns ErrInvalidWireEndpoint if a wire references a missing
// node, or ErrGraphHasCycle if a cycle is detected.
//
// Connect maintains both properties, so Validate is mainly useful after
// importing foreign data or applying closure effects.
//
// Cycle detection runs in O(N+W) time using depth-first search.
func (g *Graph) Validate() error {
	for _, w := range g.wires {
		if _, ok := g.nodes[w.From]; !ok {
			return ErrInvalidWireEndpoint
		}
		if _, ok := g.nodes[w.To]; !ok {
			return ErrInvalidWireEndpoint
		}
	}
	return g.detectCycles()
}

func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range g.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
