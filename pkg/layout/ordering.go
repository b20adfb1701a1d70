package layout

import (
	"maps"
	"slices"
	"sort"

	"github.com/matzehuels/treeize/pkg/tree"
)

// defaultSweeps is the number of down/up barycenter passes. Orderings
// stabilize quickly on tree-like graphs; extra sweeps buy nothing.
const defaultSweeps = 4

// OrderRows determines the left-to-right sequence of nodes in each row so
// that wires cross as little as possible.
//
// It runs alternating downward and upward barycenter sweeps: in a downward
// sweep each node is sorted by the mean position of its parents in the row
// above, in an upward sweep by the mean position of its children in the row
// below. Nodes without neighbors in the reference row keep their current
// position. Ties break on the previous ordering, so the result is stable
// and deterministic.
//
// The sweep keeps an ordering only when it does not increase the total
// crossing count, so the result is never worse than the initial sorted-ID
// ordering.
func OrderRows(g *tree.Graph, rows map[string]int, keep func(tree.Wire) bool) map[int][]string {
	orders := RowsOf(g, rows)
	if len(orders) == 0 {
		return orders
	}

	parents, children := adjacency(g, keep)
	rowIDs := slices.Sorted(maps.Keys(orders))

	best := cloneOrders(orders)
	bestCrossings := CountCrossings(best, children)

	for sweep := 0; sweep < defaultSweeps; sweep++ {
		// Downward pass: order each row by parent barycenters.
		for i := 1; i < len(rowIDs); i++ {
			above := orders[rowIDs[i-1]]
			orders[rowIDs[i]] = sortByBarycenter(orders[rowIDs[i]], above, parents)
		}
		// Upward pass: order each row by child barycenters.
		for i := len(rowIDs) - 2; i >= 0; i-- {
			below := orders[rowIDs[i+1]]
			orders[rowIDs[i]] = sortByBarycenter(orders[rowIDs[i]], below, children)
		}

		if crossings := CountCrossings(orders, children); crossings < bestCrossings {
			best = cloneOrders(orders)
			bestCrossings = crossings
			if bestCrossings == 0 {
				break
			}
		}
	}

	return best
}

// CountCrossings returns the total number of wire crossings for the given
// row orderings. Two wires between the same pair of rows cross when their
// endpoints appear in opposite horizontal order.
func CountCrossings(orders map[int][]string, children map[string][]string) int {
	total := 0
	rowIDs := slices.Sorted(maps.Keys(orders))
	for i := 0; i+1 < len(rowIDs); i++ {
		total += rowCrossings(orders[rowIDs[i]], orders[rowIDs[i+1]], children)
	}
	return total
}

func rowCrossings(upper, lower []string, children map[string][]string) int {
	lowerPos := posMap(lower)

	// Collect wire endpoint positions in upper-row order.
	type span struct{ up, down int }
	var spans []span
	for up, id := range upper {
		for _, child := range children[id] {
			if down, ok := lowerPos[child]; ok {
				spans = append(spans, span{up: up, down: down})
			}
		}
	}

	// Count inversions. Rows hold tens of nodes at most, so the quadratic
	// scan beats setting up a Fenwick tree.
	count := 0
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if (a.up < b.up && a.down > b.down) || (a.up > b.up && a.down < b.down) {
				count++
			}
		}
	}
	return count
}

// sortByBarycenter reorders row so each node sits near the mean position of
// its neighbors in the reference row. Nodes without neighbors keep their
// current barycenter (their own position), which leaves them in place.
func sortByBarycenter(row, reference []string, neighbors map[string][]string) []string {
	refPos := posMap(reference)

	type entry struct {
		id   string
		bary float64
		prev int
	}
	entries := make([]entry, len(row))
	for i, id := range row {
		sum, n := 0.0, 0
		for _, nb := range neighbors[id] {
			if p, ok := refPos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		bary := float64(i)
		if n > 0 {
			bary = sum / float64(n)
		}
		entries[i] = entry{id: id, bary: bary, prev: i}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].bary != entries[j].bary {
			return entries[i].bary < entries[j].bary
		}
		return entries[i].prev < entries[j].prev
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}

// adjacency builds parent and child lists restricted to kept wires.
func adjacency(g *tree.Graph, keep func(tree.Wire) bool) (parents, children map[string][]string) {
	parents = make(map[string][]string)
	children = make(map[string][]string)
	for _, w := range g.Wires() {
		if keep != nil && !keep(w) {
			continue
		}
		children[w.From] = append(children[w.From], w.To)
		parents[w.To] = append(parents[w.To], w.From)
	}
	return parents, children
}

func posMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for row, ids := range orders {
		out[row] = slices.Clone(ids)
	}
	return out
}
