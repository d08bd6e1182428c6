package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	v1alpha1 "github.com/candlerb/ganeti/pkg/api/v1alpha1"
	"github.com/candlerb/ganeti/pkg/cluster"
	"github.com/candlerb/ganeti/pkg/planner"
	"github.com/candlerb/ganeti/pkg/render"
)

func stateWithNames(t *testing.T) cluster.State {
	t.Helper()
	n1 := cluster.Node{Ndx: 1, Name: "node-a"}
	n2 := cluster.Node{Ndx: 2, Name: "node-b"}
	i1 := cluster.Instance{Idx: 1, Name: "web-01", PNode: 1, SNode: cluster.NoNode}
	nodes := cluster.NewContainer[cluster.Node]().Add(1, n1).Add(2, n2)
	instances := cluster.NewContainer[cluster.Instance]().Add(1, i1)
	return cluster.New(nodes, instances)
}

func samplePlan() *planner.Plan {
	return &planner.Plan{
		Groups: []planner.Group{
			{Nodes: []int{1}, Moves: []planner.Move{{InstanceIdx: 1, NewPrimaryNdx: 2}}},
		},
	}
}

func TestTextIncludesHeaderByDefault(t *testing.T) {
	var buf strings.Builder
	err := render.Text(&buf, stateWithNames(t), samplePlan(), v1alpha1.Options{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Group\tNodes\n") {
		t.Fatalf("expected header line, got %q", buf.String())
	}
}

func TestTextSuppressesHeaderWhenRequested(t *testing.T) {
	var buf strings.Builder
	err := render.Text(&buf, stateWithNames(t), samplePlan(), v1alpha1.Options{NoHeaders: true})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if strings.Contains(buf.String(), "Group\tNodes") {
		t.Fatalf("did not expect a header line, got %q", buf.String())
	}
}

func TestTextUsesNodeNames(t *testing.T) {
	var buf strings.Builder
	if err := render.Text(&buf, stateWithNames(t), samplePlan(), v1alpha1.Options{}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(buf.String(), "node-a") {
		t.Fatalf("expected rendered node name node-a, got %q", buf.String())
	}
}

func TestTextPrintsMovesWhenRequested(t *testing.T) {
	var buf strings.Builder
	err := render.Text(&buf, stateWithNames(t), samplePlan(), v1alpha1.Options{PrintMoves: true})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "Group\tNodes\n0\tnode-a\n\tweb-01 -> node-b\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("rendered text mismatch (-want +got):\n%s", diff)
	}
}

func TestTextOmitsMovesByDefault(t *testing.T) {
	var buf strings.Builder
	err := render.Text(&buf, stateWithNames(t), samplePlan(), v1alpha1.Options{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if strings.Contains(buf.String(), "->") {
		t.Fatalf("did not expect move lines without PrintMoves, got %q", buf.String())
	}
}
