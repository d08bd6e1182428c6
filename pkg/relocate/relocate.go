// Package relocate implements the instance relocation primitive:
// moving a single instance's primary placement from one node to
// another, and the alternative-choice combinators the capacity
// partitioner builds on.
package relocate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/candlerb/ganeti/pkg/cluster"
)

// NoCapacityError is returned by LocateInstance when none of the
// candidate nodes can accept the instance.
type NoCapacityError struct {
	InstIdx    int
	Candidates []int
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("relocate: no candidate in %v has capacity for instance %d", e.Candidates, e.InstIdx)
}

// Move relocates instIdx's primary placement to newPrimary, debiting
// the destination node's free resources (forced, so destination
// capacity is never a hard blocker) and crediting the source node
// back. If newPrimary equals the instance's current primary the
// operation is a no-op that still succeeds, returning an
// observationally equal state. Move fails when the instance, its
// current primary node or the destination node index is unknown.
func Move(instIdx, newPrimary int, state cluster.State) (cluster.State, error) {
	inst, err := state.Instances.Find(instIdx)
	if err != nil {
		return cluster.State{}, errors.Wrapf(err, "relocate: unknown instance %d", instIdx)
	}

	if inst.PNode == newPrimary {
		return state, nil
	}

	oldNode, err := state.Nodes.Find(inst.PNode)
	if err != nil {
		return cluster.State{}, errors.Wrapf(err, "relocate: instance %d has unknown current primary %d", instIdx, inst.PNode)
	}
	newNode, err := state.Nodes.Find(newPrimary)
	if err != nil {
		return cluster.State{}, errors.Wrapf(err, "relocate: unknown destination node %d", newPrimary)
	}

	oldNode = oldNode.RemovePrimary(inst)
	newNode, err = newNode.AddPrimary(inst, true) // forced: capacity is never a hard blocker for Move itself
	if err != nil {
		return cluster.State{}, errors.Wrapf(err, "relocate: could not place instance %d on node %d", instIdx, newPrimary)
	}
	inst = inst.SetPrimary(newPrimary)

	next := state
	next.Nodes = next.Nodes.AddTwo(oldNode.Ndx, oldNode, newNode.Ndx, newNode)
	next.Instances = next.Instances.Add(inst.Idx, inst)
	return next, nil
}

// LocateInstance tries each candidate node in order and returns the
// state produced by the first successful Move. It never collects or
// compares alternative placements; the first candidate that accepts
// the instance wins.
func LocateInstance(instIdx int, candidates []int, state cluster.State) (cluster.State, error) {
	for _, ndx := range candidates {
		next, err := tryPlace(instIdx, ndx, state)
		if err == nil {
			return next, nil
		}
	}
	return cluster.State{}, &NoCapacityError{InstIdx: instIdx, Candidates: candidates}
}

// tryPlace simulates placing instIdx on ndx honoring soft capacity
// (force=false), unlike Move which is always forced. This is what
// gives LocateInstance its "does this actually fit" semantics.
func tryPlace(instIdx, ndx int, state cluster.State) (cluster.State, error) {
	inst, err := state.Instances.Find(instIdx)
	if err != nil {
		return cluster.State{}, err
	}
	if inst.PNode == ndx {
		return state, nil
	}

	oldNode, err := state.Nodes.Find(inst.PNode)
	if err != nil {
		return cluster.State{}, err
	}
	newNode, err := state.Nodes.Find(ndx)
	if err != nil {
		return cluster.State{}, err
	}

	newNode, err = newNode.AddPrimary(inst, false)
	if err != nil {
		return cluster.State{}, err
	}
	oldNode = oldNode.RemovePrimary(inst)
	inst = inst.SetPrimary(ndx)

	next := state
	next.Nodes = next.Nodes.AddTwo(oldNode.Ndx, oldNode, newNode.Ndx, newNode)
	next.Instances = next.Instances.Add(inst.Idx, inst)
	return next, nil
}

// LocateInstances folds LocateInstance across instIdxs, threading the
// resulting state through. It fails on the first instance that cannot
// be placed on any candidate.
func LocateInstances(instIdxs, candidates []int, state cluster.State) (cluster.State, error) {
	for _, idx := range instIdxs {
		var err error
		state, err = LocateInstance(idx, candidates, state)
		if err != nil {
			return cluster.State{}, err
		}
	}
	return state, nil
}
