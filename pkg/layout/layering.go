package layout

import "github.com/matzehuels/treeize/pkg/tree"

// AssignLayers assigns nodes to horizontal rows based on their depth in the
// graph and returns the row for each node ID.
//
// AssignLayers uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum row of any of its
// parents, ensuring that:
//   - Source nodes (no incoming wires) are at row 0
//   - All parents are strictly above their children
//   - Each node is pushed as deep as necessary to avoid parent conflicts
//
// Only wires for which keep returns true participate; pass nil to keep all
// wires. The widget uses this to exclude wires whose endpoint pins are
// hidden by the viewer.
//
// The graph is acyclic by construction ([tree.Graph.Connect] rejects
// cycles), so every node reaches zero in-degree. Time complexity is
// O(N + W).
func AssignLayers(g *tree.Graph, keep func(tree.Wire) bool) map[string]int {
	children := make(map[string][]string, g.NodeCount())
	inDegree := make(map[string]int, g.NodeCount())
	for _, n := range g.Nodes() {
		inDegree[n.ID] = 0
	}
	for _, w := range g.Wires() {
		if keep != nil && !keep(w) {
			continue
		}
		children[w.From] = append(children[w.From], w.To)
		inDegree[w.To]++
	}

	rows := make(map[string]int, g.NodeCount())
	queue := make([]string, 0, g.NodeCount())
	for _, id := range g.NodeIDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return rows
}

// RowsOf groups node IDs by their assigned row. Within a row, nodes appear
// in sorted ID order so the grouping is deterministic before ordering runs.
func RowsOf(g *tree.Graph, rows map[string]int) map[int][]string {
	grouped := make(map[int][]string)
	for _, id := range g.NodeIDs() {
		row := rows[id]
		grouped[row] = append(grouped[row], id)
	}
	return grouped
}
