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

// State is the cluster snapshot threaded through every planning
// operation: a pair of dense containers. It is immutable by
// convention — every method that "changes" the cluster returns a new
// State value and leaves the receiver untouched.
type State struct {
	Nodes     Container[Node]
	Instances Container[Instance]
}

// New builds a State from pre-populated containers.
func New(nodes Container[Node], instances Container[Instance]) State {
	return State{Nodes: nodes, Instances: instances}
}

// Node looks up a node by index.
func (s State) Node(idx int) (Node, error) {
	return s.Nodes.Find(idx)
}

// Instance looks up an instance by index.
func (s State) Instance(idx int) (Instance, error) {
	return s.Instances.Find(idx)
}

// WithNode returns a new State with the given node stored.
func (s State) WithNode(n Node) State {
	return State{Nodes: s.Nodes.Add(n.Ndx, n), Instances: s.Instances}
}

// WithInstance returns a new State with the given instance stored.
func (s State) WithInstance(i Instance) State {
	return State{Nodes: s.Nodes, Instances: s.Instances.Add(i.Idx, i)}
}

// NonRedundantPrimaries returns the indices of instances that are
// primary on nodeNdx and have no secondary, in the order of the
// node's PList.
func (s State) NonRedundantPrimaries(nodeNdx int) []int {
	n, err := s.Nodes.Find(nodeNdx)
	if err != nil {
		return nil
	}
	var out []int
	for _, idx := range n.PList {
		inst, err := s.Instances.Find(idx)
		if err != nil {
			continue
		}
		if !inst.Redundant() {
			out = append(out, idx)
		}
	}
	return out
}
