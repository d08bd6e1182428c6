package coloring

import (
	"github.com/candlerb/ganeti/pkg/graph"
)

// Dcolor implements a recursive-largest-first style heuristic:
// repeatedly extracts a maximal independent set from the uncolored
// subgraph (built greedily by always taking the highest-degree
// remaining vertex, ties by ascending index, then discarding its
// neighbors) and assigns it a fresh color, until no vertices remain.
func Dcolor(g *graph.Graph) ColorMap {
	remaining := map[int]bool{}
	for _, v := range g.Vertices() {
		remaining[v] = true
	}

	cm := ColorMap{}
	color := 0
	for len(remaining) > 0 {
		indep := maximalIndependentSet(g, remaining)
		for _, v := range indep {
			assign(cm, color, v)
			delete(remaining, v)
		}
		color++
	}
	sortGroups(cm)
	return cm
}

// maximalIndependentSet greedily builds an independent set within the
// uncolored subgraph induced by remaining.
func maximalIndependentSet(g *graph.Graph, remaining map[int]bool) []int {
	pool := make(map[int]bool, len(remaining))
	for v := range remaining {
		pool[v] = true
	}

	degreeIn := func(v int) int {
		d := 0
		for _, n := range g.Neighbors(v) {
			if pool[n] {
				d++
			}
		}
		return d
	}

	var set []int
	for len(pool) > 0 {
		best, bestDeg := -1, -1
		for v := range pool {
			d := degreeIn(v)
			if d > bestDeg || (d == bestDeg && (best == -1 || v < best)) {
				best, bestDeg = v, d
			}
		}
		set = append(set, best)
		delete(pool, best)
		for _, n := range g.Neighbors(best) {
			delete(pool, n)
		}
	}
	return set
}
