// Package graph builds the node conflict graph: the undirected,
// symmetric "may-reboot-together" relation over a subset of node
// indices, derived from instance primary/secondary placement.
package graph

import (
	"fmt"
	"sort"

	"github.com/candlerb/ganeti/pkg/cluster"
)

// Graph is an adjacency structure over a fixed vertex set. Self-loops
// never occur; edges are recorded symmetrically.
type Graph struct {
	vertices []int
	adj      map[int]map[int]struct{}
}

// Vertices returns the full vertex set in ascending order.
func (g *Graph) Vertices() []int {
	out := make([]int, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Neighbors returns v's neighbors in ascending order.
func (g *Graph) Neighbors(v int) []int {
	nbrs := g.adj[v]
	out := make([]int, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Degree reports len(Neighbors(v)).
func (g *Graph) Degree(v int) int {
	return len(g.adj[v])
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.adj[u][v]
	return ok
}

func (g *Graph) addEdge(u, v int) {
	if u == v {
		return
	}
	if g.adj[u] == nil {
		g.adj[u] = map[int]struct{}{}
	}
	if g.adj[v] == nil {
		g.adj[v] = map[int]struct{}{}
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
}

// Build constructs the conflict graph over vertices. For every
// instance with both a primary and a secondary node, an edge is added
// between those two nodes if both lie in vertices; when rebootOnly is
// set, only instances with Running == true contribute edges (the
// "reboot graph" flavor — offline instances don't force separation).
// Build fails fatally if an instance's node references do not resolve
// in nodes, regardless of whether either endpoint lies in vertices.
func Build(nodes cluster.Container[cluster.Node], instances cluster.Container[cluster.Instance], vertices []int, rebootOnly bool) (*Graph, error) {
	vset := make(map[int]struct{}, len(vertices))
	for _, v := range vertices {
		vset[v] = struct{}{}
	}

	sorted := append([]int{}, vertices...)
	sort.Ints(sorted)
	g := &Graph{vertices: sorted, adj: map[int]map[int]struct{}{}}
	for _, v := range sorted {
		if _, ok := g.adj[v]; !ok {
			g.adj[v] = map[int]struct{}{}
		}
	}

	for _, inst := range instances.Elems() {
		if _, err := nodes.Find(inst.PNode); err != nil {
			return nil, fmt.Errorf("graph: instance %d has invalid primary node %d: %w", inst.Idx, inst.PNode, err)
		}
		if !inst.Redundant() {
			continue
		}
		if _, err := nodes.Find(inst.SNode); err != nil {
			return nil, fmt.Errorf("graph: instance %d has invalid secondary node %d: %w", inst.Idx, inst.SNode, err)
		}
		if rebootOnly && !inst.Running {
			continue
		}

		_, pIn := vset[inst.PNode]
		_, sIn := vset[inst.SNode]
		if pIn && sIn {
			g.addEdge(inst.PNode, inst.SNode)
		}
	}

	return g, nil
}
