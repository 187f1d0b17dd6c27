// Monte Carlo layer: runs N independent realizations and combines their
// statistics into per-metric means and sample standard deviations.

package sim

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// MetricSummary holds the Monte Carlo mean and sample standard deviation of
// one metric across realizations. StdDev is 0 for a single realization.
type MetricSummary struct {
	Mean   float64
	StdDev float64
}

// AggregatedStatistics combines N RealizationStatistics. Computed once by
// Combine and never mutated afterward.
type AggregatedStatistics struct {
	Realizations int

	// StateProbabilities maps occupancy level -> summary across realizations.
	// A level missing from some realization contributes probability 0 to that
	// realization, not a shorter sample.
	StateProbabilities map[int]MetricSummary

	LambdaAvg            MetricSummary
	MuAvg                MetricSummary
	RejectionProbability MetricSummary
	RelativeThroughput   MetricSummary
	AbsoluteThroughput   MetricSummary
	AvgBusyChannels      MetricSummary
	AvgQueueLength       MetricSummary
	AvgWaitTime          MetricSummary
	AvgSystemTime        MetricSummary
}

// Combine aggregates realization statistics into per-metric summaries.
// The result is independent of the order of the input slice.
func Combine(stats []RealizationStatistics) (AggregatedStatistics, error) {
	if len(stats) == 0 {
		return AggregatedStatistics{}, fmt.Errorf("%w: no realization statistics to combine", ErrInvalidParameter)
	}

	agg := AggregatedStatistics{
		Realizations:       len(stats),
		StateProbabilities: make(map[int]MetricSummary),
	}

	// Union of occupancy levels across all realizations.
	levels := make(map[int]struct{})
	for _, s := range stats {
		for level := range s.StateProbabilities {
			levels[level] = struct{}{}
		}
	}
	for level := range levels {
		values := make([]float64, len(stats))
		for i, s := range stats {
			values[i] = s.StateProbabilities[level] // 0 when the level was not visited
		}
		agg.StateProbabilities[level] = summarize(values)
	}

	agg.LambdaAvg = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.LambdaAvg })
	agg.MuAvg = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.MuAvg })
	agg.RejectionProbability = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.RejectionProbability })
	agg.RelativeThroughput = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.RelativeThroughput })
	agg.AbsoluteThroughput = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.AbsoluteThroughput })
	agg.AvgBusyChannels = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.AvgBusyChannels })
	agg.AvgQueueLength = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.AvgQueueLength })
	agg.AvgWaitTime = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.AvgWaitTime })
	agg.AvgSystemTime = summarizeMetric(stats, func(s RealizationStatistics) float64 { return s.AvgSystemTime })

	return agg, nil
}

func summarizeMetric(stats []RealizationStatistics, metric func(RealizationStatistics) float64) MetricSummary {
	values := make([]float64, len(stats))
	for i, s := range stats {
		values[i] = metric(s)
	}
	return summarize(values)
}

// summarize computes mean and sample standard deviation. Values are sorted
// first so floating-point accumulation does not depend on the order the
// realizations finished in.
func summarize(values []float64) MetricSummary {
	sort.Float64s(values)
	m := stat.Mean(values, nil)
	if len(values) < 2 {
		return MetricSummary{Mean: m}
	}
	return MetricSummary{Mean: m, StdDev: stat.StdDev(values, nil)}
}

// RunRealizations executes n independent realizations of cfg over the given
// horizon, one goroutine per realization. Each realization gets its own
// simulator seeded from cfg.Seed via SimulationKey.RealizationSeed, so no
// RNG or system state is shared while realizations run; results are slotted
// by realization index, making the output deterministic regardless of
// goroutine scheduling. The only synchronization point is the final join.
func RunRealizations(cfg Config, horizon float64, n int) ([]RealizationStatistics, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: realization count must be > 0, got %d", ErrInvalidParameter, n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := NewSimulationKey(cfg.Seed)
	results := make([]RealizationStatistics, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			runCfg := cfg
			runCfg.Seed = key.RealizationSeed(i)
			results[i] = newSimulator(runCfg).RunRealization(horizon)
		}(i)
	}
	wg.Wait()
	return results, nil
}
