// Package render is the external renderer collaborator: it turns a
// planner.Plan, expressed in node/instance indices, into
// human-readable text.
package render

import (
	"fmt"
	"io"
	"strings"

	v1alpha1 "github.com/candlerb/ganeti/pkg/api/v1alpha1"
	"github.com/candlerb/ganeti/pkg/cluster"
	"github.com/candlerb/ganeti/pkg/planner"
)

// Text writes plan to w as group headers (one line per group, node
// names space-joined) and, when opts.PrintMoves is set, an indented
// "instance -> node" line per move. The header line is suppressed
// when opts.NoHeaders is set.
func Text(w io.Writer, state cluster.State, plan *planner.Plan, opts v1alpha1.Options) error {
	if !opts.NoHeaders {
		if _, err := fmt.Fprintln(w, "Group\tNodes"); err != nil {
			return err
		}
	}

	for i, group := range plan.Groups {
		names := make([]string, len(group.Nodes))
		for j, ndx := range group.Nodes {
			names[j] = nodeName(state, ndx)
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", i, strings.Join(names, " ")); err != nil {
			return err
		}
		if !opts.PrintMoves {
			continue
		}
		for _, mv := range group.Moves {
			instName := instanceName(state, mv.InstanceIdx)
			nodeName := nodeName(state, mv.NewPrimaryNdx)
			if _, err := fmt.Fprintf(w, "\t%s -> %s\n", instName, nodeName); err != nil {
				return err
			}
		}
	}
	return nil
}

func nodeName(state cluster.State, ndx int) string {
	n, err := state.Nodes.Find(ndx)
	if err != nil {
		return fmt.Sprintf("node#%d", ndx)
	}
	return n.Name
}

func instanceName(state cluster.State, idx int) string {
	inst, err := state.Instances.Find(idx)
	if err != nil {
		return fmt.Sprintf("instance#%d", idx)
	}
	return inst.Name
}
