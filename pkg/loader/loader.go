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

// Package loader is the external loader collaborator: it turns a
// serialized cluster snapshot into the cluster.State the planner core
// operates on. Loading from remote cluster APIs is out of scope; this
// package only covers the file-based path a CLI needs end to end.
package loader

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	v1alpha1 "github.com/candlerb/ganeti/pkg/api/v1alpha1"
	"github.com/candlerb/ganeti/pkg/cluster"
)

// LoadFile reads a YAML or JSON-encoded v1alpha1.ClusterData from
// path (sigs.k8s.io/yaml accepts both) and converts it into a
// cluster.State plus the group catalogue the planner resolves
// Options.Group against.
func LoadFile(path string) (cluster.State, []v1alpha1.Group, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cluster.State{}, nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}

	var data v1alpha1.ClusterData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return cluster.State{}, nil, fmt.Errorf("loader: decoding %s: %w", path, err)
	}

	state, err := FromClusterData(data)
	if err != nil {
		return cluster.State{}, nil, err
	}
	return state, data.Groups, nil
}

// FromClusterData converts a decoded ClusterData into a cluster.State,
// validating that every instance's node references exist and that the
// cluster model's invariants hold (each instance primary-hosted by
// exactly one node).
func FromClusterData(data v1alpha1.ClusterData) (cluster.State, error) {
	nodes := cluster.NewContainer[cluster.Node]()
	for _, ns := range data.Nodes {
		nodes = nodes.Add(ns.Ndx, toNode(ns))
	}

	instances := cluster.NewContainer[cluster.Instance]()
	pListOwner := map[int]int{}
	for _, is := range data.Instances {
		inst := toInstance(is)
		if _, err := nodes.Find(inst.PNode); err != nil {
			return cluster.State{}, fmt.Errorf("loader: instance %d (%s) has unknown primary node %d", inst.Idx, inst.Name, inst.PNode)
		}
		if inst.Redundant() {
			if _, err := nodes.Find(inst.SNode); err != nil {
				return cluster.State{}, fmt.Errorf("loader: instance %d (%s) has unknown secondary node %d", inst.Idx, inst.Name, inst.SNode)
			}
		}
		if owner, seen := pListOwner[inst.Idx]; seen {
			return cluster.State{}, fmt.Errorf("loader: instance index %d duplicated (nodes %d and %d)", inst.Idx, owner, inst.PNode)
		}
		pListOwner[inst.Idx] = inst.PNode
		instances = instances.Add(inst.Idx, inst)

		n, _ := nodes.Find(inst.PNode)
		n.PList = append(n.PList, inst.Idx)
		nodes = nodes.Add(n.Ndx, n)
		if inst.Redundant() {
			sn, _ := nodes.Find(inst.SNode)
			sn = sn.AddSecondary(inst.Idx)
			nodes = nodes.Add(sn.Ndx, sn)
		}
	}

	return cluster.New(nodes, instances), nil
}

func toNode(ns v1alpha1.NodeSpec) cluster.Node {
	return cluster.Node{
		Ndx:          ns.Ndx,
		Name:         ns.Name,
		Group:        ns.Group,
		FreeMem:      ns.FreeMem,
		TotalMem:     ns.TotalMem,
		FreeDisk:     ns.FreeDisk,
		TotalDisk:    ns.TotalDisk,
		FreeCPU:      ns.FreeCPU,
		Vcpus:        ns.Vcpus,
		MaxInstances: ns.MaxInstances,
		Offline:      ns.Offline,
		Master:       ns.Master,
		Tags:         ns.Tags,
	}
}

func toInstance(is v1alpha1.InstanceSpec) cluster.Instance {
	sNode := cluster.NoNode
	if is.HasSecondary {
		sNode = is.SecondaryNode
	}
	return cluster.Instance{
		Idx:     is.Idx,
		Name:    is.Name,
		Mem:     is.Mem,
		Disk:    is.Disk,
		Vcpus:   is.Vcpus,
		Running: is.Running,
		PNode:   is.PrimaryNode,
		SNode:   sNode,
	}
}
