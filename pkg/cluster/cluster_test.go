package cluster_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/candlerb/ganeti/pkg/cluster"
)

func node(ndx int, freeMem, freeDisk, freeCPU int) cluster.Node {
	return cluster.Node{
		Ndx:       ndx,
		Name:      "node",
		FreeMem:   freeMem,
		TotalMem:  freeMem,
		FreeDisk:  freeDisk,
		TotalDisk: freeDisk,
		FreeCPU:   freeCPU,
		Vcpus:     freeCPU,
	}
}

func inst(idx, mem, disk, vcpus int) cluster.Instance {
	return cluster.Instance{Idx: idx, Name: "inst", Mem: mem, Disk: disk, Vcpus: vcpus, PNode: -1, SNode: cluster.NoNode}
}

func TestContainerFindNotFound(t *testing.T) {
	c := cluster.NewContainer[cluster.Node]()
	_, err := c.Find(1)
	var notFound *cluster.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestContainerAddIsImmutable(t *testing.T) {
	c := cluster.NewContainer[cluster.Node]()
	c2 := c.Add(1, node(1, 100, 100, 4))

	if c.Len() != 0 {
		t.Fatalf("original container mutated: len=%d", c.Len())
	}
	if c2.Len() != 1 {
		t.Fatalf("expected new container to have 1 entry, got %d", c2.Len())
	}
}

func TestContainerKeysAndElemsAreSorted(t *testing.T) {
	c := cluster.NewContainer[cluster.Node]()
	c = c.Add(3, node(3, 0, 0, 0)).Add(1, node(1, 0, 0, 0)).Add(2, node(2, 0, 0, 0))

	want := []int{1, 2, 3}
	if diff := cmp.Diff(want, c.Keys()); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}

	var gotNdxs []int
	for _, e := range c.Elems() {
		gotNdxs = append(gotNdxs, e.Ndx)
	}
	if diff := cmp.Diff(want, gotNdxs); diff != "" {
		t.Fatalf("Elems() order mismatch (-want +got):\n%s", diff)
	}
}

func TestFindByName(t *testing.T) {
	c := cluster.NewContainer[cluster.Node]()
	n := node(1, 0, 0, 0)
	n.Name = "node-a"
	c = c.Add(1, n)

	got, err := c.FindByName("node-a")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if got.Ndx != 1 {
		t.Fatalf("FindByName returned node %d, want 1", got.Ndx)
	}

	if _, err := c.FindByName("nope"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

func TestAddPrimarySoftCapacity(t *testing.T) {
	n := node(1, 10, 10, 2)
	i := inst(1, 20, 5, 1)

	if _, err := n.AddPrimary(i, false); err == nil {
		t.Fatalf("expected capacity error for insufficient memory")
	}

	forced, err := n.AddPrimary(i, true)
	if err != nil {
		t.Fatalf("forced AddPrimary should not fail: %v", err)
	}
	want := n
	want.FreeMem, want.FreeDisk, want.FreeCPU = -10, 5, 1
	want.PList = []int{1}
	if diff := cmp.Diff(want, forced); diff != "" {
		t.Fatalf("forced AddPrimary result mismatch (-want +got):\n%s", diff)
	}
}

func TestAddPrimaryThenRemovePrimaryRoundTrips(t *testing.T) {
	n := node(1, 100, 100, 10)
	i := inst(1, 20, 5, 2)

	placed, err := n.AddPrimary(i, false)
	if err != nil {
		t.Fatalf("AddPrimary: %v", err)
	}
	wantPlaced := n
	wantPlaced.FreeMem, wantPlaced.FreeDisk, wantPlaced.FreeCPU = 80, 95, 8
	wantPlaced.PList = []int{1}
	if diff := cmp.Diff(wantPlaced, placed); diff != "" {
		t.Fatalf("AddPrimary result mismatch (-want +got):\n%s", diff)
	}

	removed := placed.RemovePrimary(i)
	if diff := cmp.Diff(n, removed, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("RemovePrimary did not restore the original node (-want +got):\n%s", diff)
	}
}

func TestInstanceRedundant(t *testing.T) {
	nonRedundant := inst(1, 1, 1, 1)
	if nonRedundant.Redundant() {
		t.Fatalf("instance with SNode == NoNode should not be redundant")
	}

	redundant := nonRedundant.SetSecondary(5)
	if !redundant.Redundant() {
		t.Fatalf("instance with a secondary should be redundant")
	}
}

func TestNodeHasAnyTag(t *testing.T) {
	n := node(1, 0, 0, 0)
	n.Tags = []string{"rack-a", "ssd"}

	if !n.HasAnyTag([]string{"gpu", "ssd"}) {
		t.Fatalf("expected HasAnyTag to match ssd")
	}
	if n.HasAnyTag([]string{"gpu"}) {
		t.Fatalf("expected HasAnyTag to reject non-matching tag set")
	}
}
