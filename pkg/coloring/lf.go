package coloring

import (
	"sort"

	"github.com/candlerb/ganeti/pkg/graph"
)

// LF implements the Largest-First heuristic: vertices are visited in
// descending-degree order (ties broken by ascending index) and each
// is given the smallest color id free among its already-colored
// neighbors.
func LF(g *graph.Graph) ColorMap {
	vertices := g.Vertices()
	sort.Slice(vertices, func(i, j int) bool {
		di, dj := g.Degree(vertices[i]), g.Degree(vertices[j])
		if di != dj {
			return di > dj
		}
		return vertices[i] < vertices[j]
	})

	colorOf := make(map[int]int, len(vertices))
	cm := ColorMap{}
	for _, v := range vertices {
		used := map[int]bool{}
		for _, n := range g.Neighbors(v) {
			if c, ok := colorOf[n]; ok {
				used[c] = true
			}
		}
		c := smallestFreeColor(used)
		colorOf[v] = c
		assign(cm, c, v)
	}
	sortGroups(cm)
	return cm
}
