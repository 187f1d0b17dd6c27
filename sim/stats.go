// Derives per-realization summary metrics from the retained request list and
// the occupancy-time histogram.

package sim

// RealizationStatistics is the immutable summary of one completed
// realization.
type RealizationStatistics struct {
	Horizon  float64 // simulated interval T
	Arrivals int     // requests that arrived before the horizon
	Served   int     // Arrivals - Rejected (in-flight requests count as served)
	Rejected int     // requests turned away at a full buffer

	// StateProbabilities maps occupancy level -> fraction of the horizon the
	// system spent at that level. Levels never visited are absent.
	StateProbabilities map[int]float64

	LambdaAvg            float64 // empirical arrival rate, Arrivals / T
	MuAvg                float64 // inverse mean service duration of started requests
	RejectionProbability float64 // Rejected / Arrivals (0 when no arrivals)
	RelativeThroughput   float64 // 1 - RejectionProbability
	AbsoluteThroughput   float64 // LambdaAvg * RelativeThroughput
	AvgBusyChannels      float64 // Σ min(level, channels)·p(level)
	AvgQueueLength       float64 // Σ_{level>channels} (level-channels)·p(level)
	AvgWaitTime          float64 // mean wait over requests that started service
	AvgSystemTime        float64 // mean sojourn over completed requests
}

// newRealizationStatistics computes the summary for one realization.
// Pure derivation: it reads the request list and histogram and touches no
// simulator state.
func newRealizationStatistics(horizon float64, channels int, requests []*Request, rejected int, occupancyTime map[int]float64) RealizationStatistics {
	stats := RealizationStatistics{
		Horizon:            horizon,
		Arrivals:           len(requests),
		Rejected:           rejected,
		Served:             len(requests) - rejected,
		StateProbabilities: make(map[int]float64, len(occupancyTime)),
	}

	if horizon > 0 {
		for level, duration := range occupancyTime {
			stats.StateProbabilities[level] = duration / horizon
		}
		stats.LambdaAvg = float64(stats.Arrivals) / horizon
	}

	// Occupancy-derived averages.
	for level, p := range stats.StateProbabilities {
		busy := level
		if busy > channels {
			busy = channels
		}
		stats.AvgBusyChannels += float64(busy) * p
		if level > channels {
			stats.AvgQueueLength += float64(level-channels) * p
		}
	}

	// Service rate: inverse of the mean drawn duration over requests that
	// actually reached a channel.
	serviceSum := 0.0
	started := 0
	waitSum := 0.0
	completed := 0
	sojournSum := 0.0
	for _, r := range requests {
		if r.Started {
			started++
			serviceSum += r.ServiceDuration
			waitSum += r.WaitTime()
		}
		if r.Completed {
			completed++
			sojournSum += r.SojournTime()
		}
	}
	if started > 0 && serviceSum > 0 {
		stats.MuAvg = float64(started) / serviceSum
	}
	if started > 0 {
		stats.AvgWaitTime = waitSum / float64(started)
	}
	if completed > 0 {
		stats.AvgSystemTime = sojournSum / float64(completed)
	}

	if stats.Arrivals > 0 {
		stats.RejectionProbability = float64(stats.Rejected) / float64(stats.Arrivals)
	}
	stats.RelativeThroughput = 1.0 - stats.RejectionProbability
	stats.AbsoluteThroughput = stats.LambdaAvg * stats.RelativeThroughput

	return stats
}
