// Package coloring implements the three proper-coloring heuristics
// that turn a conflict graph into a set of candidate reboot
// groups: Largest-First, DSATUR, and a recursive-largest-first
// variant ("Dcolor"). All three are deterministic for a given
// adjacency: ties are always broken by ascending vertex index.
package coloring

import (
	"sort"

	"github.com/candlerb/ganeti/pkg/graph"
)

// ColorMap maps a color id to the (ascending-sorted) vertices
// assigned that color. The color ids are arbitrary small integers
// starting at 0; callers should not rely on their values beyond
// grouping and counting.
type ColorMap map[int][]int

// NumColors reports how many distinct colors are used.
func (c ColorMap) NumColors() int {
	return len(c)
}

// Groups returns the color classes as slices, ordered by ascending
// color id, for callers that only care about the partition.
func (c ColorMap) Groups() [][]int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([][]int, len(ids))
	for i, id := range ids {
		out[i] = c[id]
	}
	return out
}

// Algorithm is a named coloring heuristic, sharing the Color(g)
// contract. Name is used only for logging/statistics output.
type Algorithm struct {
	Name  string
	Color func(g *graph.Graph) ColorMap
}

// Algorithms lists the three heuristics in declaration order; this
// order is also the tie-break when two algorithms produce colorings
// of equal size (see Best).
var Algorithms = []Algorithm{
	{Name: "LF", Color: LF},
	{Name: "DSATUR", Color: DSATUR},
	{Name: "Dcolor", Color: Dcolor},
}

// Best runs every algorithm in Algorithms and returns the one
// producing the fewest colors, breaking ties by declaration order.
func Best(g *graph.Graph) (Algorithm, ColorMap) {
	var bestAlg Algorithm
	var bestMap ColorMap
	for _, alg := range Algorithms {
		cm := alg.Color(g)
		if bestMap == nil || cm.NumColors() < bestMap.NumColors() {
			bestAlg, bestMap = alg, cm
		}
	}
	return bestAlg, bestMap
}

// smallestFreeColor returns the smallest non-negative color id not
// present in used.
func smallestFreeColor(used map[int]bool) int {
	for c := 0; ; c++ {
		if !used[c] {
			return c
		}
	}
}

func assign(cm ColorMap, color, vertex int) {
	cm[color] = append(cm[color], vertex)
}

// sortGroups sorts every color class in cm in place, ascending.
func sortGroups(cm ColorMap) {
	for _, g := range cm {
		sort.Ints(g)
	}
}
