// Package partition implements the greedy capacity partitioner:
// splitting a color class into sub-groups whose non-redundant
// instances can be evacuated to same-group peers simultaneously.
package partition

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/candlerb/ganeti/pkg/cluster"
	"github.com/candlerb/ganeti/pkg/relocate"
)

// NoCapacityError is returned by PartitionNonRedundant when a round of
// GreedyClearNodes clears nothing while nodes still remain.
type NoCapacityError struct {
	Remaining []int
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("partition: no capacity to evacuate remaining nodes %v", e.Remaining)
}

// Result is one emitted sub-group: the node indices cleared together,
// and the state simulating their evacuation, always derived from the
// initial state handed to PartitionNonRedundant — never cumulatively
// from a previous sub-group's state (see the doc comment on
// PartitionNonRedundant).
type Result struct {
	Nodes []int
	State cluster.State
}

// GreedyClearNodes attempts to clear every node in group in order,
// simulating the evacuation of each node's non-redundant primaries
// onto same-cluster-group peers drawn from target (excluding nodes
// already claimed earlier in this pass). A node that cannot be
// cleared is skipped for this pass — its failure does not abort the
// whole group — and the recursion continues with the rest of group
// against the *original* (unshrunk) target pool, since the failing
// node's peers remain available to others.
//
// It returns the subset of group that was actually cleared (in
// group's order) and the state simulating all of those evacuations
// together. retries, if non-nil, is incremented every time a node is
// skipped for this pass — purely for observability (pkg/metrics);
// the planning decision never reads it back.
func GreedyClearNodes(group, target []int, state cluster.State, retries *int) ([]int, cluster.State, error) {
	if len(group) == 0 {
		return nil, state, nil
	}

	ndx := group[0]
	rest := group[1:]

	othernodes := without(target, ndx)
	node, err := state.Nodes.Find(ndx)
	if err != nil {
		return nil, cluster.State{}, errors.Wrapf(err, "partition: unknown node %d", ndx)
	}

	peers := sameGroup(state, othernodes, node.Group)
	nonRedundant := state.NonRedundantPrimaries(ndx)

	next, err := relocate.LocateInstances(nonRedundant, peers, state)
	if err != nil {
		// ndx cannot be cleared this pass; skip it and keep the full
		// target pool available for the remaining nodes.
		if retries != nil {
			*retries++
		}
		return GreedyClearNodes(rest, target, state, retries)
	}

	clearedRest, finalState, err := GreedyClearNodes(rest, othernodes, next, retries)
	if err != nil {
		return nil, cluster.State{}, err
	}
	return append([]int{ndx}, clearedRest...), finalState, nil
}

// PartitionNonRedundant splits group into an ordered list of
// sub-groups, each independently simulated from the original state
// (not cumulatively: every emitted sub-group answers "what would this
// reboot window look like if only these nodes were down right now",
// so instances are assumed to return home before the next window).
// It fails with *NoCapacityError if some round of GreedyClearNodes
// clears nothing while nodes remain.
func PartitionNonRedundant(group, target []int, state cluster.State, retries *int) ([]Result, error) {
	var results []Result
	remaining := append([]int{}, group...)

	for len(remaining) > 0 {
		cleared, afterState, err := GreedyClearNodes(remaining, target, state, retries)
		if err != nil {
			return nil, err
		}
		if len(cleared) == 0 {
			return nil, &NoCapacityError{Remaining: remaining}
		}
		results = append(results, Result{Nodes: cleared, State: afterState})
		remaining = minus(remaining, cleared)
	}
	return results, nil
}

func sameGroup(state cluster.State, candidates []int, group int) []int {
	var out []int
	for _, c := range candidates {
		n, err := state.Nodes.Find(c)
		if err != nil {
			continue
		}
		if n.Group == group {
			out = append(out, c)
		}
	}
	return out
}

func without(list []int, v int) []int {
	out := make([]int, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func minus(list, remove []int) []int {
	removeSet := map[int]bool{}
	for _, v := range remove {
		removeSet[v] = true
	}
	var out []int
	for _, v := range list {
		if !removeSet[v] {
			out = append(out, v)
		}
	}
	return out
}
