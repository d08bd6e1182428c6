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

package cluster

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// CapacityError is returned by AddPrimary when placing an instance
// would violate a hard capacity invariant and force was not set.
type CapacityError struct {
	NodeNdx int
	Reason  string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cluster: node %d: %s", e.NodeNdx, e.Reason)
}

// Node is a physical host. Capacity fields are signed so that a
// forced placement can legally leave a node's free resources
// negative during simulation (see AddPrimary).
type Node struct {
	Ndx   int
	Name  string
	Group int

	PList []int // primary-hosted instance indices
	SList []int // secondary-hosted instance indices

	FreeMem, TotalMem   int
	FreeDisk, TotalDisk int
	FreeCPU, Vcpus      int

	// MaxInstances caps the number of primary instances the node may
	// host; zero means unbounded. Checked by AddPrimary alongside the
	// resource invariants.
	MaxInstances int

	Offline bool
	Master  bool
	Tags    []string
}

func (n Node) IdxOf() int      { return n.Ndx }
func (n Node) NameOf() string  { return n.Name }
func (n Node) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// HasAnyTag reports whether n carries any tag in tags.
func (n Node) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if n.HasTag(t) {
			return true
		}
	}
	return false
}

// HasNonRedundantPrimary reports whether n hosts any primary instance
// that instances.Find resolves to a non-redundant one. Callers pass
// the full instance container since Node does not track redundancy
// itself.
func (n Node) HasNonRedundantPrimary(instances Container[Instance]) bool {
	for _, idx := range n.PList {
		inst, err := instances.Find(idx)
		if err != nil {
			continue
		}
		if !inst.Redundant() {
			return true
		}
	}
	return false
}

// AddPrimary returns a copy of n with inst added to its primary list
// and its free resources debited. Unless force is set, the operation
// fails with a *CapacityError when the placement would drive a free
// resource negative or exceed MaxInstances; forced placement skips
// these capacity checks and may leave the returned node with negative
// free resources, which is permitted for evacuation simulation only.
// Adding an instance that is already primary on n fails in either mode.
func (n Node) AddPrimary(inst Instance, force bool) (Node, error) {
	if slices.Contains(n.PList, inst.Idx) {
		return n, fmt.Errorf("cluster: instance %d already primary on node %d", inst.Idx, n.Ndx)
	}

	next := n
	next.FreeMem = n.FreeMem - inst.Mem
	next.FreeDisk = n.FreeDisk - inst.Disk
	next.FreeCPU = n.FreeCPU - inst.Vcpus
	next.PList = append(append([]int{}, n.PList...), inst.Idx)

	if !force {
		switch {
		case next.FreeMem < 0:
			return Node{}, &CapacityError{NodeNdx: n.Ndx, Reason: "insufficient free memory"}
		case next.FreeDisk < 0:
			return Node{}, &CapacityError{NodeNdx: n.Ndx, Reason: "insufficient free disk"}
		case next.FreeCPU < 0:
			return Node{}, &CapacityError{NodeNdx: n.Ndx, Reason: "insufficient free cpu"}
		case n.MaxInstances > 0 && len(next.PList) > n.MaxInstances:
			return Node{}, &CapacityError{NodeNdx: n.Ndx, Reason: "instance count exceeded"}
		}
	}
	return next, nil
}

// RemovePrimary returns a copy of n with inst removed from its
// primary list and its free resources credited back. It is
// infallible: removing an instance never violates a capacity
// invariant.
func (n Node) RemovePrimary(inst Instance) Node {
	next := n
	next.FreeMem = n.FreeMem + inst.Mem
	next.FreeDisk = n.FreeDisk + inst.Disk
	next.FreeCPU = n.FreeCPU + inst.Vcpus
	next.PList = removeInt(n.PList, inst.Idx)
	return next
}

// AddSecondary returns a copy of n with instIdx recorded as a
// secondary placement. Secondary placement is bookkeeping only: it
// does not debit node capacity, matching the teacher's convention of
// only pricing the primary assignment.
func (n Node) AddSecondary(instIdx int) Node {
	next := n
	if !slices.Contains(next.SList, instIdx) {
		next.SList = append(append([]int{}, n.SList...), instIdx)
	}
	return next
}

// RemoveSecondary returns a copy of n with instIdx dropped from its
// secondary list, if present.
func (n Node) RemoveSecondary(instIdx int) Node {
	next := n
	next.SList = removeInt(n.SList, instIdx)
	return next
}

func removeInt(list []int, v int) []int {
	out := make([]int, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
