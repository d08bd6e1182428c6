package coloring

import (
	"github.com/candlerb/ganeti/pkg/graph"
)

// DSATUR colors the vertex of maximum saturation degree (distinct
// colors among its colored neighbors) at each step, breaking ties by
// maximum degree within the subgraph induced on still-uncolored
// vertices, and finally by ascending index.
func DSATUR(g *graph.Graph) ColorMap {
	vertices := g.Vertices()
	colorOf := make(map[int]int, len(vertices))
	colored := make(map[int]bool, len(vertices))
	cm := ColorMap{}

	uncoloredDegree := func(v int) int {
		d := 0
		for _, n := range g.Neighbors(v) {
			if !colored[n] {
				d++
			}
		}
		return d
	}

	saturation := func(v int) int {
		seen := map[int]bool{}
		for _, n := range g.Neighbors(v) {
			if c, ok := colorOf[n]; ok {
				seen[c] = true
			}
		}
		return len(seen)
	}

	for range vertices {
		best := -1
		bestSat, bestDeg := -1, -1
		for _, v := range vertices {
			if colored[v] {
				continue
			}
			sat := saturation(v)
			deg := uncoloredDegree(v)
			switch {
			case sat > bestSat:
				best, bestSat, bestDeg = v, sat, deg
			case sat == bestSat && deg > bestDeg:
				best, bestSat, bestDeg = v, sat, deg
			case sat == bestSat && deg == bestDeg && (best == -1 || v < best):
				best, bestSat, bestDeg = v, sat, deg
			}
		}

		used := map[int]bool{}
		for _, n := range g.Neighbors(best) {
			if c, ok := colorOf[n]; ok {
				used[c] = true
			}
		}
		c := smallestFreeColor(used)
		colorOf[best] = c
		colored[best] = true
		assign(cm, c, best)
	}

	sortGroups(cm)
	return cm
}
