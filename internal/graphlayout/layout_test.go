package graphlayout

import (
	"reflect"
	"testing"

	"clipsight/internal/model"
)

var testPairs = []model.HashtagPair{
	{First: "#a", Second: "#b", Count: 3},
	{First: "#a", Second: "#c", Count: 1},
	{First: "#b", Second: "#c", Count: 1},
}

func TestLayoutShape(t *testing.T) {
	g := NewEades().Layout(testPairs, 42)
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(g.Edges))
	}
	pos := make(map[string][2]float64)
	for _, n := range g.Nodes {
		pos[n.Tag] = [2]float64{n.X, n.Y}
	}
	for _, e := range g.Edges {
		a, b := pos[e.First], pos[e.Second]
		if e.X0 != a[0] || e.Y0 != a[1] || e.X1 != b[0] || e.Y1 != b[1] {
			t.Fatalf("edge segment does not match node positions: %+v", e)
		}
	}
}

func TestLayoutDeterministicForSeed(t *testing.T) {
	a := NewEades().Layout(testPairs, 42)
	b := NewEades().Layout(testPairs, 42)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed must produce identical positions")
	}
}

func TestLayoutEmptyPairs(t *testing.T) {
	g := NewEades().Layout(nil, 42)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Fatalf("expected empty graph, got %+v", g)
	}
}

func TestLayoutEdgeWeights(t *testing.T) {
	g := NewEades().Layout(testPairs, 42)
	if g.Edges[0].Weight != 3 {
		t.Fatalf("expected weight carried through, got %+v", g.Edges[0])
	}
}
