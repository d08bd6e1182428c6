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

// Package v1alpha1 holds the wire types for a cluster snapshot and the
// planner's configuration options — the boundary the external loader
// decodes into and the CLI binds flags onto.
package v1alpha1

// ClusterData is the materialized cluster snapshot handed to the
// planner by the external loader. ClusterTags and InstancePolicy are
// carried through but unused by the core.
type ClusterData struct {
	Groups    []Group        `json:"groups"`
	Nodes     []NodeSpec     `json:"nodes"`
	Instances []InstanceSpec `json:"instances"`

	// ClusterTags are cluster-wide tags; carried through but unused by
	// the planner core.
	ClusterTags []string `json:"clusterTags,omitempty"`

	// InstancePolicy carries cluster-wide instance sizing policy;
	// carried through but unused by the planner core.
	InstancePolicy map[string]any `json:"instancePolicy,omitempty"`
}

// Group is a cluster topological group: evacuation targets are always
// drawn from the same group as the node being cleared.
type Group struct {
	Idx  int    `json:"idx"`
	Name string `json:"name"`
}

// NodeSpec is the wire representation of a Node.
type NodeSpec struct {
	Ndx   int    `json:"ndx"`
	Name  string `json:"name"`
	Group int    `json:"group"`

	FreeMem   int `json:"freeMem,omitempty"`
	TotalMem  int `json:"totalMem,omitempty"`
	FreeDisk  int `json:"freeDisk,omitempty"`
	TotalDisk int `json:"totalDisk,omitempty"`
	FreeCPU   int `json:"freeCpu,omitempty"`
	Vcpus     int `json:"vcpus,omitempty"`

	MaxInstances int `json:"maxInstances,omitempty"`

	Offline bool     `json:"offline,omitempty"`
	Master  bool     `json:"master,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// InstanceSpec is the wire representation of an Instance.
// SecondaryNode of zero value PLUS HasSecondary==false means "no
// secondary"; this avoids overloading a sentinel integer across JSON.
type InstanceSpec struct {
	Idx  int    `json:"idx"`
	Name string `json:"name"`

	Mem     int  `json:"mem,omitempty"`
	Disk    int  `json:"disk,omitempty"`
	Vcpus   int  `json:"vcpus,omitempty"`
	Running bool `json:"running,omitempty"`

	PrimaryNode int  `json:"primaryNode"`
	SecondaryNode int  `json:"secondaryNode,omitempty"`
	HasSecondary  bool `json:"hasSecondary,omitempty"`
}

// Options holds every planner configuration knob exposed by the CLI.
type Options struct {
	// Group restricts planning to nodes in the named cluster group;
	// fatal if unknown.
	Group string `json:"group,omitempty"`

	// NodeTags restricts planning to nodes having any listed tag.
	NodeTags []string `json:"nodeTags,omitempty"`

	// OfflineMaintenance selects the all-instance graph flavor
	// instead of the reboot-only flavor.
	OfflineMaintenance bool `json:"offlineMaintenance,omitempty"`

	// SkipNonRedundant drops nodes with any non-redundant primary
	// from planning entirely.
	SkipNonRedundant bool `json:"skipNonRedundant,omitempty"`

	// IgnoreNonRedundant skips evacuation of non-redundant instances;
	// capacity-refinement is bypassed.
	IgnoreNonRedundant bool `json:"ignoreNonRedundant,omitempty"`

	// OneStepOnly emits only the first reboot group.
	OneStepOnly bool `json:"oneStepOnly,omitempty"`

	// PrintMoves includes per-group evacuation moves in the output.
	PrintMoves bool `json:"printMoves,omitempty"`

	// NoHeaders suppresses the header line in rendered output.
	NoHeaders bool `json:"noHeaders,omitempty"`

	// Force downgrades a missing master from fatal to a warning.
	Force bool `json:"force,omitempty"`

	// Verbose controls diagnostic detail: >=2 emits per-algorithm
	// coloring statistics, >=3 emits the raw adjacency.
	Verbose int `json:"verbose,omitempty"`
}
