/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package planner implements the plan assembler: the pipeline
// that filters nodes, builds the conflict graph, picks the best
// coloring, capacity-refines each color class, and orders the result
// into a deterministic reboot plan.
package planner

import (
	"context"
	"sort"

	"k8s.io/klog/v2"

	v1alpha1 "github.com/candlerb/ganeti/pkg/api/v1alpha1"
	"github.com/candlerb/ganeti/pkg/cluster"
	"github.com/candlerb/ganeti/pkg/coloring"
	"github.com/candlerb/ganeti/pkg/graph"
	"github.com/candlerb/ganeti/pkg/partition"
)

// Move is one evacuation move attributed to a reboot group: instance
// InstanceIdx's primary changed to NewPrimaryNdx ahead of that group's
// reboot.
type Move struct {
	InstanceIdx   int
	NewPrimaryNdx int
}

// Group is one reboot group: the node indices scheduled to reboot
// together, in final output order (master last, if present), and the
// moves required to clear its non-redundant instances beforehand.
type Group struct {
	Nodes []int
	Moves []Move
}

// Plan is the ordered sequence of reboot groups.
type Plan struct {
	Groups []Group
}

// Stats carries observational data about a Plan run, for callers that
// want to feed pkg/metrics or verbose output. Nothing in the pipeline
// reads Stats back.
type Stats struct {
	Algorithm         string
	ColorsByAlgorithm map[string]int
	PartitionRetries  int
}

// Plan runs the assembly pipeline against state, given the cluster's group
// catalogue (to resolve Options.Group by name) and options. It
// returns the plan, observational stats, any non-fatal warnings, or a
// fatal error (*InputInvalidError, *UnsupportedError, or
// *partition.NoCapacityError).
func Plan(ctx context.Context, state cluster.State, groups []v1alpha1.Group, opts v1alpha1.Options) (*Plan, Stats, []string, error) {
	logger := klog.FromContext(ctx).WithValues("component", "planner")
	var warnings []string
	stats := Stats{ColorsByAlgorithm: map[string]int{}}

	masterNdx, err := checkMasterCount(state, opts.Force)
	if err != nil {
		return nil, stats, nil, err
	}
	if masterNdx == cluster.NoNode {
		warnings = append(warnings, "no master node found; proceeding without a master-last ordering constraint")
		logger.V(1).Info("no master node found, continuing under force", "force", opts.Force)
	}

	vertices, err := filterVertices(state, groups, opts)
	if err != nil {
		return nil, stats, nil, err
	}
	if len(vertices) == 0 {
		return nil, stats, warnings, &UnsupportedError{Reason: "no nodes remain after filtering"}
	}
	logger.V(1).Info("filtered vertex set", "count", len(vertices))

	g, err := graph.Build(state.Nodes, state.Instances, vertices, !opts.OfflineMaintenance)
	if err != nil {
		return nil, stats, nil, &InputInvalidError{Reason: err.Error()}
	}
	if opts.Verbose >= 3 {
		logRawGraph(logger, g)
	}

	alg, cm := bestColoring(logger, g, opts.Verbose, stats.ColorsByAlgorithm)
	stats.Algorithm = alg.Name
	logger.V(1).Info("selected coloring", "algorithm", alg.Name, "colors", cm.NumColors())

	target := allowedTargets(state)
	results, err := refineGroups(state, cm, target, opts.IgnoreNonRedundant, &stats.PartitionRetries)
	if err != nil {
		return nil, stats, nil, err
	}

	orderGroupsBySize(results)
	results = moveMasterGroupLast(results, masterNdx)

	if opts.OneStepOnly && len(results) > 1 {
		results = results[:1]
	}

	plan := &Plan{Groups: make([]Group, len(results))}
	for i, r := range results {
		plan.Groups[i] = Group{
			Nodes: r.Nodes,
			Moves: deriveMoves(state, r.State),
		}
	}
	return plan, stats, warnings, nil
}

// checkMasterCount returns the master's node index, or cluster.NoNode
// if there is no master and force is set. It returns *InputInvalidError
// if there are zero masters without force, or more than one master
// under any setting.
func checkMasterCount(state cluster.State, force bool) (int, error) {
	masters := 0
	found := cluster.NoNode
	for _, n := range state.Nodes.Elems() {
		if n.Master {
			masters++
			found = n.Ndx
		}
	}
	switch {
	case masters > 1:
		return 0, &InputInvalidError{Reason: "more than one master node"}
	case masters == 0 && !force:
		return 0, &InputInvalidError{Reason: "no master node found"}
	case masters == 0:
		return cluster.NoNode, nil
	default:
		return found, nil
	}
}

// filterVertices applies the group/tag/skip-non-redundant/offline
// filters of the assembly pipeline's first step.
func filterVertices(state cluster.State, groups []v1alpha1.Group, opts v1alpha1.Options) ([]int, error) {
	var groupIdx int
	restrictGroup := false
	if opts.Group != "" {
		restrictGroup = true
		found := false
		for _, g := range groups {
			if g.Name == opts.Group {
				groupIdx = g.Idx
				found = true
				break
			}
		}
		if !found {
			return nil, &InputInvalidError{Reason: "unknown group " + opts.Group}
		}
	}

	var out []int
	for _, n := range state.Nodes.Elems() {
		if n.Offline {
			continue
		}
		if restrictGroup && n.Group != groupIdx {
			continue
		}
		if len(opts.NodeTags) > 0 && !n.HasAnyTag(opts.NodeTags) {
			continue
		}
		if opts.SkipNonRedundant && n.HasNonRedundantPrimary(state.Instances) {
			continue
		}
		out = append(out, n.Ndx)
	}
	sort.Ints(out)
	return out, nil
}

// bestColoring runs every coloring heuristic, logging per-algorithm
// statistics at verbose>=2, and returns the one with fewest colors
// (ties broken by declaration order, i.e. first-seen minimum).
func bestColoring(logger klog.Logger, g *graph.Graph, verbose int, colorsByAlgorithm map[string]int) (coloring.Algorithm, coloring.ColorMap) {
	var bestAlg coloring.Algorithm
	var bestMap coloring.ColorMap
	for _, alg := range coloring.Algorithms {
		cm := alg.Color(g)
		colorsByAlgorithm[alg.Name] = cm.NumColors()
		if verbose >= 2 {
			logger.Info("coloring heuristic result", "algorithm", alg.Name, "colors", cm.NumColors())
		}
		if bestMap == nil || cm.NumColors() < bestMap.NumColors() {
			bestAlg, bestMap = alg, cm
		}
	}
	return bestAlg, bestMap
}

func logRawGraph(logger klog.Logger, g *graph.Graph) {
	for _, v := range g.Vertices() {
		logger.Info("adjacency", "node", v, "neighbors", g.Neighbors(v))
	}
}

// allowedTargets returns every non-offline node index in the entire
// cluster (not just the filtered vertex set): the partitioner's landing targets
// are drawn from the whole cluster.
func allowedTargets(state cluster.State) []int {
	var out []int
	for _, n := range state.Nodes.Elems() {
		if !n.Offline {
			out = append(out, n.Ndx)
		}
	}
	return out
}

func refineGroups(state cluster.State, cm coloring.ColorMap, target []int, ignoreNonRedundant bool, retries *int) ([]partition.Result, error) {
	var results []partition.Result
	for _, group := range cm.Groups() {
		if ignoreNonRedundant {
			results = append(results, partition.Result{Nodes: group, State: state})
			continue
		}
		sub, err := partition.PartitionNonRedundant(group, target, state, retries)
		if err != nil {
			return nil, err
		}
		results = append(results, sub...)
	}
	return results, nil
}

func orderGroupsBySize(results []partition.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i].Nodes) > len(results[j].Nodes)
	})
}

// moveMasterGroupLast moves masterNdx to the end of its own group's
// node list, then moves that whole group to the end of results.
// Groups without a master keep their relative order. If masterNdx is
// cluster.NoNode (no master, running under force), results pass
// through untouched.
func moveMasterGroupLast(results []partition.Result, masterNdx int) []partition.Result {
	if masterNdx == cluster.NoNode {
		return results
	}

	masterGroupAt := -1
	for i, r := range results {
		for j, n := range r.Nodes {
			if n == masterNdx {
				masterGroupAt = i
				reordered := append(append([]int{}, r.Nodes[:j]...), r.Nodes[j+1:]...)
				reordered = append(reordered, masterNdx)
				results[i].Nodes = reordered
			}
		}
	}
	if masterGroupAt == -1 {
		return results
	}

	out := make([]partition.Result, 0, len(results))
	masterGroup := results[masterGroupAt]
	for i, r := range results {
		if i == masterGroupAt {
			continue
		}
		out = append(out, r)
	}
	out = append(out, masterGroup)
	return out
}

// deriveMoves reports every instance whose primary differs between
// the original state and after, in ascending instance-index order.
func deriveMoves(original, after cluster.State) []Move {
	var moves []Move
	for _, idx := range original.Instances.Keys() {
		origInst, _ := original.Instances.Find(idx)
		newInst, err := after.Instances.Find(idx)
		if err != nil {
			continue
		}
		if origInst.PNode != newInst.PNode {
			moves = append(moves, Move{InstanceIdx: idx, NewPrimaryNdx: newInst.PNode})
		}
	}
	return moves
}
