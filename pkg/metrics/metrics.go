// Package metrics exposes Prometheus instrumentation for the
// planner. It is purely observational: nothing in pkg/planner reads
// these values back, preserving the core's purity as a pure value
// transform.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RebootGroups records how many reboot groups the planner
	// emitted for the most recent run, labeled by the winning
	// coloring algorithm.
	RebootGroups = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hroller",
		Name:      "reboot_groups",
		Help:      "Number of reboot groups in the most recently computed plan.",
	}, []string{"algorithm"})

	// ColorsPerAlgorithm records, for each coloring heuristic, the
	// number of colors it produced on the most recent run.
	ColorsPerAlgorithm = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hroller",
		Name:      "coloring_colors",
		Help:      "Number of colors produced by each coloring heuristic.",
	}, []string{"algorithm"})

	// PartitionRetries counts how many times the greedy capacity
	// partitioner had to skip a node and retry within a color class.
	PartitionRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hroller",
		Name:      "partition_retries_total",
		Help:      "Total number of nodes skipped and retried by the capacity partitioner.",
	})
)

// MustRegister registers every collector in this package with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(RebootGroups, ColorsPerAlgorithm, PartitionRetries)
}
