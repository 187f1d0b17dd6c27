package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	sim "github.com/queuesim/queuesim/sim"
)

const reportPadding = 3

// PrintAggregated renders the Monte Carlo aggregates as a table:
// one row per scalar metric, then the occupancy-level probabilities.
func PrintAggregated(out io.Writer, agg sim.AggregatedStatistics) {
	fmt.Fprintf(out, "=== Aggregated statistics (%d realizations) ===\n", agg.Realizations)

	w := tabwriter.NewWriter(out, 0, 0, reportPadding, ' ', 0)
	fmt.Fprintf(w, "METRIC\tMEAN\tSTDDEV\t\n")
	row := func(name string, s sim.MetricSummary) {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t\n", name, s.Mean, s.StdDev)
	}
	row("arrival rate", agg.LambdaAvg)
	row("service rate", agg.MuAvg)
	row("rejection probability", agg.RejectionProbability)
	row("relative throughput", agg.RelativeThroughput)
	row("absolute throughput", agg.AbsoluteThroughput)
	row("avg busy channels", agg.AvgBusyChannels)
	row("avg queue length", agg.AvgQueueLength)
	row("avg wait time", agg.AvgWaitTime)
	row("avg system time", agg.AvgSystemTime)

	levels := make([]int, 0, len(agg.StateProbabilities))
	for level := range agg.StateProbabilities {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		row(fmt.Sprintf("p_%d", level), agg.StateProbabilities[level])
	}
	w.Flush()
}

// PrintValidation renders the simulated-vs-theoretical comparison and the
// overall verdict.
func PrintValidation(out io.Writer, report sim.ValidationReport) {
	fmt.Fprintf(out, "=== Validation against analytic reference (epsilon=%.3f) ===\n", report.Epsilon)

	names := make([]string, 0, len(report.PerMetric))
	for name := range report.PerMetric {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, reportPadding, ' ', 0)
	fmt.Fprintf(w, "METRIC\tSIMULATED\tTHEORETICAL\tREL_ERROR\t\n")
	for _, name := range names {
		cmp := report.PerMetric[name]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.4f\t\n", name, cmp.Simulated, cmp.Theoretical, cmp.RelativeError)
	}
	w.Flush()

	verdict := "WITHIN TOLERANCE"
	if !report.WithinTolerance {
		verdict = "OUT OF TOLERANCE"
	}
	fmt.Fprintf(out, "max error: %.4f (%.2f%%) -> %s\n", report.MaxError, report.MaxError*100, verdict)
}
