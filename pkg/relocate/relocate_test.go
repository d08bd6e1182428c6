package relocate_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/candlerb/ganeti/pkg/cluster"
	"github.com/candlerb/ganeti/pkg/relocate"
)

func node(ndx, freeMem, group int) cluster.Node {
	return cluster.Node{Ndx: ndx, Name: "n", Group: group, FreeMem: freeMem, TotalMem: freeMem, FreeDisk: 100, TotalDisk: 100, FreeCPU: 10, Vcpus: 10}
}

func twoNodeState(t *testing.T) cluster.State {
	t.Helper()
	n1 := node(1, 100, 0)
	n2 := node(2, 100, 0)
	i1 := cluster.Instance{Idx: 1, Name: "i1", Mem: 20, Disk: 5, Vcpus: 1, PNode: 1, SNode: cluster.NoNode}
	n1.PList = []int{1}

	nodes := cluster.NewContainer[cluster.Node]().Add(1, n1).Add(2, n2)
	instances := cluster.NewContainer[cluster.Instance]().Add(1, i1)
	return cluster.New(nodes, instances)
}

func TestMoveNoOpWhenAlreadyPrimary(t *testing.T) {
	state := twoNodeState(t)
	next, err := relocate.Move(1, 1, state)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	inst, _ := next.Instances.Find(1)
	if inst.PNode != 1 {
		t.Fatalf("expected primary to remain 1, got %d", inst.PNode)
	}
}

func TestMoveRelocatesAndCreditsSource(t *testing.T) {
	state := twoNodeState(t)
	next, err := relocate.Move(1, 2, state)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	wantInst := cluster.Instance{Idx: 1, Name: "i1", Mem: 20, Disk: 5, Vcpus: 1, PNode: 2, SNode: cluster.NoNode}
	inst, _ := next.Instances.Find(1)
	if diff := cmp.Diff(wantInst, inst); diff != "" {
		t.Fatalf("relocated instance mismatch (-want +got):\n%s", diff)
	}

	n1, _ := next.Nodes.Find(1)
	if n1.FreeMem != 100 {
		t.Fatalf("expected source node credited back to 100, got %d", n1.FreeMem)
	}
	n2, _ := next.Nodes.Find(2)
	if n2.FreeMem != 80 {
		t.Fatalf("expected destination node debited to 80, got %d", n2.FreeMem)
	}
}

func TestMoveUnknownInstanceFails(t *testing.T) {
	state := twoNodeState(t)
	if _, err := relocate.Move(99, 2, state); err == nil {
		t.Fatalf("expected error for unknown instance")
	}
}

func TestLocateInstanceSkipsFullCandidates(t *testing.T) {
	state := twoNodeState(t)
	full := node(3, 5, 0) // too little memory for the instance
	state.Nodes = state.Nodes.Add(3, full)

	next, err := relocate.LocateInstance(1, []int{3, 2}, state)
	if err != nil {
		t.Fatalf("LocateInstance: %v", err)
	}
	inst, _ := next.Instances.Find(1)
	if inst.PNode != 2 {
		t.Fatalf("expected instance placed on node 2, got %d", inst.PNode)
	}
}

func TestLocateInstanceNoCapacity(t *testing.T) {
	state := twoNodeState(t)
	small := node(2, 5, 0)
	state.Nodes = state.Nodes.Add(2, small)

	_, err := relocate.LocateInstance(1, []int{2}, state)
	var nc *relocate.NoCapacityError
	if !errors.As(err, &nc) {
		t.Fatalf("expected *NoCapacityError, got %T: %v", err, err)
	}
}

func TestLocateInstancesFoldsState(t *testing.T) {
	state := twoNodeState(t)
	i2 := cluster.Instance{Idx: 2, Name: "i2", Mem: 10, Disk: 5, Vcpus: 1, PNode: 1, SNode: cluster.NoNode}
	n1, _ := state.Nodes.Find(1)
	n1.PList = append(n1.PList, 2)
	state.Nodes = state.Nodes.Add(1, n1)
	state.Instances = state.Instances.Add(2, i2)

	next, err := relocate.LocateInstances([]int{1, 2}, []int{2}, state)
	if err != nil {
		t.Fatalf("LocateInstances: %v", err)
	}

	var gotPrimaries []int
	for _, idx := range []int{1, 2} {
		inst, _ := next.Instances.Find(idx)
		gotPrimaries = append(gotPrimaries, inst.PNode)
	}
	if diff := cmp.Diff([]int{2, 2}, gotPrimaries); diff != "" {
		t.Fatalf("expected both instances relocated to node 2 (-want +got):\n%s", diff)
	}
}
