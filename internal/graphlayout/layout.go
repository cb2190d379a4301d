// Package graphlayout assigns 2-D positions to the hashtag co-occurrence
// graph. The force-directed physics is delegated to gonum's layout
// package behind a small interface so the analytical core stays
// deterministic and testable.
package graphlayout

import (
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"clipsight/internal/model"
)

// Engine lays out a set of weighted hashtag pairs. Given the same pairs
// and seed, implementations must return identical positions.
type Engine interface {
	Layout(pairs []model.HashtagPair, seed int64) model.CooccurrenceGraph
}

// Eades runs gonum's Eades spring layout over the pair graph.
type Eades struct {
	Updates   int
	Repulsion float64
	Rate      float64
	Theta     float64
}

// NewEades returns an Eades engine with the tuning used by the graph view.
func NewEades() Eades {
	return Eades{Updates: 100, Repulsion: 1, Rate: 0.05, Theta: 0.2}
}

// Layout builds a weighted undirected graph from pairs and iterates the
// spring optimizer to convergence. Node IDs are assigned in sorted tag
// order so the seeded layout is reproducible run to run. Empty input
// yields an empty graph.
func (e Eades) Layout(pairs []model.HashtagPair, seed int64) model.CooccurrenceGraph {
	var out model.CooccurrenceGraph
	if len(pairs) == 0 {
		return out
	}

	tags := make([]string, 0, 2*len(pairs))
	seen := make(map[string]struct{}, 2*len(pairs))
	for _, p := range pairs {
		for _, t := range []string{p.First, p.Second} {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	ids := make(map[string]int64, len(tags))
	for i, t := range tags {
		ids[t] = int64(i)
	}

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, p := range pairs {
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(ids[p.First]),
			T: simple.Node(ids[p.Second]),
			W: float64(p.Count),
		})
	}

	eades := layout.EadesR2{
		Updates:   e.Updates,
		Repulsion: e.Repulsion,
		Rate:      e.Rate,
		Theta:     e.Theta,
		Src:       rand.NewSource(uint64(seed)),
	}
	optimizer := layout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
	}

	out.Nodes = make([]model.GraphNode, 0, len(tags))
	for _, t := range tags {
		pos := optimizer.Coord2(ids[t])
		out.Nodes = append(out.Nodes, model.GraphNode{Tag: t, X: pos.X, Y: pos.Y})
	}
	out.Edges = make([]model.GraphEdge, 0, len(pairs))
	for _, p := range pairs {
		a := optimizer.Coord2(ids[p.First])
		b := optimizer.Coord2(ids[p.Second])
		out.Edges = append(out.Edges, model.GraphEdge{
			First:  p.First,
			Second: p.Second,
			Weight: p.Count,
			X0:     a.X, Y0: a.Y,
			X1: b.X, Y1: b.Y,
		})
	}
	return out
}
