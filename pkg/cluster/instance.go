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

// NoNode is the sentinel SNode value meaning "no secondary".
const NoNode = -1

// Instance is a guest workload hosted primarily on one node and,
// optionally, kept redundant on a secondary node.
type Instance struct {
	Idx  int
	Name string

	Mem, Disk, Vcpus int
	Running          bool

	PNode int
	SNode int // NoNode if the instance has no secondary
}

func (i Instance) IdxOf() int     { return i.Idx }
func (i Instance) NameOf() string { return i.Name }

// Redundant reports whether the instance has a valid secondary node.
func (i Instance) Redundant() bool {
	return i.SNode != NoNode
}

// SetPrimary returns a copy of i with its primary node changed.
func (i Instance) SetPrimary(ndx int) Instance {
	next := i
	next.PNode = ndx
	return next
}

// SetSecondary returns a copy of i with its secondary node changed.
func (i Instance) SetSecondary(ndx int) Instance {
	next := i
	next.SNode = ndx
	return next
}

// SetBoth returns a copy of i with both node references changed.
func (i Instance) SetBoth(pNode, sNode int) Instance {
	next := i
	next.PNode = pNode
	next.SNode = sNode
	return next
}
