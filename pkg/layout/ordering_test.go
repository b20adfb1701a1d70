package layout

import (
	"testing"

	"github.com/matzehuels/treeize/pkg/tree"
)

func TestCountCrossings(t *testing.T) {
	children := map[string][]string{
		"a": {"y"},
		"b": {"x"},
	}

	tests := []struct {
		name   string
		orders map[int][]string
		want   int
	}{
		{
			name:   "crossed pair",
			orders: map[int][]string{0: {"a", "b"}, 1: {"x", "y"}},
			want:   1,
		},
		{
			name:   "uncrossed pair",
			orders: map[int][]string{0: {"b", "a"}, 1: {"x", "y"}},
			want:   0,
		},
		{
			name:   "single row",
			orders: map[int][]string{0: {"a", "b"}},
			want:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCrossings(tt.orders, children); got != tt.want {
				t.Errorf("CountCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOrderRows_RemovesCrossing(t *testing.T) {
	// a→y and b→x cross under sorted-ID ordering; the barycenter sweep
	// must untangle them.
	g := tree.New(nil)
	for _, id := range []string{"a", "b", "x", "y"} {
		_ = g.AddNode(tree.Node{ID: id})
	}
	_ = g.Connect("a", "y")
	_ = g.Connect("b", "x")

	rows := AssignLayers(g, nil)
	orders := OrderRows(g, rows, nil)

	_, children := adjacency(g, nil)
	if got := CountCrossings(orders, children); got != 0 {
		t.Errorf("CountCrossings() after ordering = %d, want 0", got)
	}
}

func TestOrderRows_NeverWorseThanInitial(t *testing.T) {
	// Dense bipartite fan: ordering may not reach zero, but it must not
	// exceed the initial sorted-ID crossing count.
	g := tree.New(nil)
	uppers := []string{"u1", "u2", "u3"}
	lowers := []string{"l1", "l2", "l3"}
	for _, id := range append(append([]string{}, uppers...), lowers...) {
		_ = g.AddNode(tree.Node{ID: id})
	}
	for _, u := range uppers {
		for _, l := range lowers {
			_ = g.Connect(u, l)
		}
	}

	rows := AssignLayers(g, nil)
	_, children := adjacency(g, nil)
	initial := CountCrossings(RowsOf(g, rows), children)

	orders := OrderRows(g, rows, nil)
	if got := CountCrossings(orders, children); got > initial {
		t.Errorf("CountCrossings() = %d, worse than initial %d", got, initial)
	}
}

func TestOrderRows_EmptyGraph(t *testing.T) {
	g := tree.New(nil)
	orders := OrderRows(g, AssignLayers(g, nil), nil)
	if len(orders) != 0 {
		t.Errorf("OrderRows() = %v, want empty", orders)
	}
}
