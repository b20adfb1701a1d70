package tree

// InPin is a view of a node's single input pin together with the remote
// output pins currently wired into it. Remotes are source node IDs.
type InPin struct {
	Node    string
	Remotes []string
}

// OutPin is a view of a node's single output pin together with the remote
// input pins currently wired out of it. Remotes are target node IDs.
type OutPin struct {
	Node    string
	Remotes []string
}

// InPinOf returns the input pin view for the node.
// The Remotes slice is a copy and can be modified freely.
func (g *Graph) InPinOf(id string) InPin {
	remotes := make([]string, len(g.incoming[id]))
	copy(remotes, g.incoming[id])
	return InPin{Node: id, Remotes: remotes}
}

// OutPinOf returns the output pin view for the node.
// The Remotes slice is a copy and can be modified freely.
func (g *Graph) OutPinOf(id string) OutPin {
	remotes := make([]string, len(g.outgoing[id]))
	copy(remotes, g.outgoing[id])
	return OutPin{Node: id, Remotes: remotes}
}
