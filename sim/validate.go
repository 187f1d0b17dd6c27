// Compares Monte Carlo aggregates against the analytic reference. Advisory
// only: no retry or parameter adjustment happens here.

package sim

import (
	"fmt"
	"math"
)

// MetricComparison records one simulated-vs-theoretical comparison.
type MetricComparison struct {
	Simulated     float64
	Theoretical   float64
	RelativeError float64 // absolute error when Theoretical == 0
}

// ValidationReport is the result of checking aggregated simulation output
// against an analytic reference.
type ValidationReport struct {
	Epsilon         float64
	MaxError        float64
	WithinTolerance bool // every per-metric error <= Epsilon
	PerMetric       map[string]MetricComparison
}

// Check computes the per-metric relative error between aggregated simulation
// results and the analytic reference. Occupancy-level probabilities are
// compared for every level the reference reports (a level the simulation
// never visited counts as probability 0).
func Check(agg AggregatedStatistics, ref ReferenceStatistics, epsilon float64) ValidationReport {
	report := ValidationReport{
		Epsilon:   epsilon,
		PerMetric: make(map[string]MetricComparison),
	}

	record := func(name string, simulated, theoretical float64) {
		cmp := MetricComparison{Simulated: simulated, Theoretical: theoretical}
		if theoretical != 0 {
			cmp.RelativeError = math.Abs(simulated-theoretical) / math.Abs(theoretical)
		} else {
			cmp.RelativeError = math.Abs(simulated)
		}
		report.PerMetric[name] = cmp
		if cmp.RelativeError > report.MaxError {
			report.MaxError = cmp.RelativeError
		}
	}

	for level, theoretical := range ref.StateProbabilities {
		record(fmt.Sprintf("p_%d", level), agg.StateProbabilities[level].Mean, theoretical)
	}

	record("queue_length", agg.AvgQueueLength.Mean, ref.AvgQueueLength)
	record("wait_time", agg.AvgWaitTime.Mean, ref.AvgWaitTime)
	record("system_time", agg.AvgSystemTime.Mean, ref.AvgSystemTime)
	record("rejection_probability", agg.RejectionProbability.Mean, ref.RejectionProbability)
	record("absolute_throughput", agg.AbsoluteThroughput.Mean, ref.AbsoluteThroughput)

	// Empirical rho from the measured rates, against the configured one.
	simRho := 0.0
	if agg.MuAvg.Mean > 0 {
		simRho = agg.LambdaAvg.Mean / (float64(ref.Channels) * agg.MuAvg.Mean)
	}
	record("rho", simRho, ref.Rho)

	report.WithinTolerance = report.MaxError <= epsilon
	return report
}
