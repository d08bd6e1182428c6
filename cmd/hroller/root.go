package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	v1alpha1 "github.com/candlerb/ganeti/pkg/api/v1alpha1"
	"github.com/candlerb/ganeti/pkg/loader"
	"github.com/candlerb/ganeti/pkg/metrics"
	"github.com/candlerb/ganeti/pkg/planner"
	"github.com/candlerb/ganeti/pkg/render"
)

var opts v1alpha1.Options

func newRootCmd() *cobra.Command {
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)

	root := &cobra.Command{
		Use:   "hroller",
		Short: "Compute a rolling-maintenance reboot plan for a cluster snapshot",
	}
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newPlanCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan SNAPSHOT",
		Short: "Compute and print the reboot plan for a cluster snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Group, "group", "", "restrict planning to nodes in this cluster group")
	cmd.Flags().StringSliceVar(&opts.NodeTags, "node-tags", nil, "restrict planning to nodes having any of these tags")
	cmd.Flags().BoolVar(&opts.OfflineMaintenance, "offline-maintenance", false, "use the all-instance graph instead of the reboot-only graph")
	cmd.Flags().BoolVar(&opts.SkipNonRedundant, "skip-non-redundant", false, "drop nodes with any non-redundant primary from planning")
	cmd.Flags().BoolVar(&opts.IgnoreNonRedundant, "ignore-non-redundant", false, "do not evacuate non-redundant instances")
	cmd.Flags().BoolVar(&opts.OneStepOnly, "one-step-only", false, "emit only the first reboot group")
	cmd.Flags().BoolVar(&opts.PrintMoves, "print-moves", false, "include per-group evacuation moves in the output")
	cmd.Flags().BoolVar(&opts.NoHeaders, "no-headers", false, "suppress the header line")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "downgrade a missing master from fatal to a warning")
	cmd.Flags().CountVarP(&opts.Verbose, "verbose", "v", "increase diagnostic detail (repeatable)")

	return cmd
}

func runPlan(cmd *cobra.Command, snapshotPath string) error {
	v1alpha1.SetDefaults_Options(&opts)
	if err := v1alpha1.ValidateOptions(&opts); err != nil {
		return fmt.Errorf("hroller: invalid options: %w", err)
	}

	state, groups, err := loader.LoadFile(snapshotPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)

	logger := klog.Background()
	ctx := klog.NewContext(context.Background(), logger)

	plan, stats, warnings, err := planner.Plan(ctx, state, groups, opts)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	metrics.RebootGroups.WithLabelValues(stats.Algorithm).Set(float64(len(plan.Groups)))
	for alg, colors := range stats.ColorsByAlgorithm {
		metrics.ColorsPerAlgorithm.WithLabelValues(alg).Set(float64(colors))
	}
	metrics.PartitionRetries.Add(float64(stats.PartitionRetries))

	return render.Text(cmd.OutOrStdout(), state, plan, opts)
}
