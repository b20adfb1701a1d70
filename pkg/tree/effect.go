package tree

// EffectKind identifies a deferred graph mutation.
type EffectKind int

const (
	// EffectInsertNode adds a new node at a position.
	EffectInsertNode EffectKind = iota
	// EffectRemoveNode removes a node and its wires.
	EffectRemoveNode
	// EffectOpenNode expands or collapses a node.
	EffectOpenNode
	// EffectConnect adds a wire between two nodes.
	EffectConnect
	// EffectDisconnect removes a wire between two nodes.
	EffectDisconnect
	// EffectDropOutputs removes all wires leaving a node's output pin.
	EffectDropOutputs
	// EffectDropInputs removes all wires entering a node's input pin.
	EffectDropInputs
	// EffectMove shifts a node by a delta.
	EffectMove
	// EffectFunc runs an arbitrary closure against the graph.
	EffectFunc
)

// Effect is a single deferred mutation. Effects are recorded while the
// widget processes input and applied to the graph afterwards, so viewer
// callbacks never mutate the graph mid-frame.
type Effect struct {
	Kind  EffectKind
	Node  Node    // InsertNode
	ID    string  // RemoveNode, OpenNode, DropOutputs, DropInputs, Move
	From  string  // Connect, Disconnect
	To    string  // Connect, Disconnect
	Open  bool    // OpenNode
	DX    float64 // Move
	DY    float64 // Move
	Apply func(*Graph) // Func
}

// Effects is a container for deferred execution of graph mutations.
// It is populated during widget interaction and then applied to the graph
// with [Graph.Apply].
type Effects struct {
	effects []Effect
}

// Empty reports whether no effects are queued.
func (e *Effects) Empty() bool { return len(e.effects) == 0 }

// Len returns the number of queued effects.
func (e *Effects) Len() int { return len(e.effects) }

// InsertNode queues insertion of a new node.
func (e *Effects) InsertNode(n Node) {
	e.effects = append(e.effects, Effect{Kind: EffectInsertNode, Node: n})
}

// RemoveNode queues removal of a node.
func (e *Effects) RemoveNode(id string) {
	e.effects = append(e.effects, Effect{Kind: EffectRemoveNode, ID: id})
}

// OpenNode queues expanding or collapsing a node.
func (e *Effects) OpenNode(id string, open bool) {
	e.effects = append(e.effects, Effect{Kind: EffectOpenNode, ID: id, Open: open})
}

// Connect queues a wire between two nodes.
func (e *Effects) Connect(from, to string) {
	e.effects = append(e.effects, Effect{Kind: EffectConnect, From: from, To: to})
}

// Disconnect queues removal of a wire between two nodes.
func (e *Effects) Disconnect(from, to string) {
	e.effects = append(e.effects, Effect{Kind: EffectDisconnect, From: from, To: to})
}

// DropOutputs queues removal of all wires leaving the node's output pin.
func (e *Effects) DropOutputs(id string) {
	e.effects = append(e.effects, Effect{Kind: EffectDropOutputs, ID: id})
}

// DropInputs queues removal of all wires entering the node's input pin.
func (e *Effects) DropInputs(id string) {
	e.effects = append(e.effects, Effect{Kind: EffectDropInputs, ID: id})
}

// Move queues shifting a node by a delta.
func (e *Effects) Move(id string, dx, dy float64) {
	e.effects = append(e.effects, Effect{Kind: EffectMove, ID: id, DX: dx, DY: dy})
}

// Func queues an arbitrary mutation closure.
func (e *Effects) Func(fn func(*Graph)) {
	e.effects = append(e.effects, Effect{Kind: EffectFunc, Apply: fn})
}

// Apply drains the queue and applies every effect to the graph in order.
// Effects referencing unknown node IDs are skipped rather than reported:
// the node may have been removed by an earlier effect in the same batch.
// Connect effects that violate wire rules (duplicate, self, cycle) are
// likewise dropped silently.
func (g *Graph) Apply(effects *Effects) {
	if effects == nil || effects.Empty() {
		return
	}
	queued := effects.effects
	effects.effects = nil
	for _, eff := range queued {
		g.applyEffect(eff)
	}
}

func (g *Graph) applyEffect(eff Effect) {
	switch eff.Kind {
	case EffectInsertNode:
		_ = g.AddNode(eff.Node)
	case EffectRemoveNode:
		g.RemoveNode(eff.ID)
	case EffectOpenNode:
		g.OpenNode(eff.ID, eff.Open)
	case EffectConnect:
		_ = g.Connect(eff.From, eff.To)
	case EffectDisconnect:
		g.Disconnect(eff.From, eff.To)
	case EffectDropOutputs:
		g.DropOutputs(eff.ID)
	case EffectDropInputs:
		g.DropInputs(eff.ID)
	case EffectMove:
		g.MoveBy(eff.ID, eff.DX, eff.DY)
	case EffectFunc:
		if eff.Apply != nil {
			eff.Apply(g)
		}
	}
}
