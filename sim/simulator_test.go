package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expConfig builds an exponential/exponential configuration for tests.
func expConfig(t *testing.T, lambda, mu float64, channels, buffer int, seed int64) Config {
	t.Helper()
	arrival, err := NewExponential(lambda)
	require.NoError(t, err)
	service, err := NewExponential(mu)
	require.NoError(t, err)
	return Config{
		Channels:       channels,
		BufferCapacity: buffer,
		Arrival:        arrival,
		Service:        service,
		Seed:           seed,
	}
}

// histogramTotal sums the occupancy probabilities of a realization.
func histogramTotal(stats RealizationStatistics) float64 {
	total := 0.0
	for _, p := range stats.StateProbabilities {
		total += p
	}
	return total
}

func TestRunRealization_MM1Scenario(t *testing.T) {
	// GIVEN a single channel with unbounded buffer, λ=0.4, μ=0.5
	s, err := NewSimulator(expConfig(t, 0.4, 0.5, 1, UnboundedBuffer, 18))
	require.NoError(t, err)

	// WHEN one realization runs to T=10000
	stats := s.RunRealization(10000)

	// THEN roughly λ·T requests arrived and none were rejected
	assert.InEpsilon(t, 4000.0, float64(stats.Arrivals), 0.05, "arrivals ≈ λ·T")
	assert.Zero(t, stats.Rejected)
	assert.Equal(t, 1.0, stats.RelativeThroughput)
	assert.InEpsilon(t, 0.4, stats.LambdaAvg, 0.05)

	// THEN bookkeeping is conserved
	assert.Equal(t, stats.Arrivals, stats.Served+stats.Rejected)
	assert.InEpsilon(t, 1.0, histogramTotal(stats), 1e-9, "occupancy histogram sums to T")
}

func TestRunRealization_OccupancyHistogramSumsToHorizon(t *testing.T) {
	for _, seed := range []int64{1, 7, 18, 42, 1234} {
		s, err := NewSimulator(expConfig(t, 0.9, 0.5, 2, 4, seed))
		require.NoError(t, err)
		stats := s.RunRealization(2000)
		assert.InEpsilon(t, 1.0, histogramTotal(stats), 1e-9, "seed %d", seed)
		assert.Equal(t, stats.Arrivals, stats.Served+stats.Rejected, "seed %d", seed)
	}
}

func TestRunRealization_UnboundedBufferNeverRejects(t *testing.T) {
	// Heavily overloaded on purpose: the line grows without bound but
	// nothing is ever turned away.
	s, err := NewSimulator(expConfig(t, 2.0, 0.5, 1, UnboundedBuffer, 42))
	require.NoError(t, err)

	stats := s.RunRealization(1000)

	assert.Zero(t, stats.Rejected)
	assert.Zero(t, stats.RejectionProbability)
	assert.Greater(t, stats.Arrivals, 0)
}

func TestRunRealization_LossSystemRejectionConverges(t *testing.T) {
	// M/M/1/0 with λ=μ=1: p0 = p1 = 0.5, so half the arrivals are lost.
	s, err := NewSimulator(expConfig(t, 1.0, 1.0, 1, 0, 18))
	require.NoError(t, err)

	stats := s.RunRealization(20000)

	assert.InDelta(t, 0.5, stats.RejectionProbability, 0.05)
	// With no waiting room the only occupancy levels are 0 and 1.
	for level := range stats.StateProbabilities {
		assert.LessOrEqual(t, level, 1)
	}
}

func TestRunRealization_OccupancyBoundedByCapacity(t *testing.T) {
	channels, buffer := 2, 3
	s, err := NewSimulator(expConfig(t, 3.0, 0.5, channels, buffer, 7))
	require.NoError(t, err)

	stats := s.RunRealization(2000)

	require.Greater(t, stats.Rejected, 0, "overloaded finite system should reject")
	for level := range stats.StateProbabilities {
		assert.LessOrEqual(t, level, channels+buffer)
		assert.GreaterOrEqual(t, level, 0)
	}
}

func TestRunRealization_ZeroArrivalsIsValid(t *testing.T) {
	// Arrival rate so small the first arrival lands far past the horizon.
	s, err := NewSimulator(expConfig(t, 1e-9, 1.0, 1, UnboundedBuffer, 42))
	require.NoError(t, err)

	stats := s.RunRealization(1.0)

	assert.Zero(t, stats.Arrivals)
	assert.Zero(t, stats.Served)
	assert.Zero(t, stats.Rejected)
	assert.Zero(t, stats.RejectionProbability)
	assert.Zero(t, stats.AbsoluteThroughput)
	assert.Zero(t, stats.AvgWaitTime)
	assert.Zero(t, stats.AvgSystemTime)
	// The whole horizon was spent empty.
	assert.InEpsilon(t, 1.0, stats.StateProbabilities[0], 1e-12)
}

func TestRunRealization_RequestInvariants(t *testing.T) {
	s, err := NewSimulator(expConfig(t, 0.9, 0.5, 2, 4, 18))
	require.NoError(t, err)
	s.RunRealization(2000)

	for _, r := range s.requests {
		if r.Rejected {
			assert.False(t, r.Started, "rejected request %d must not start service", r.ID)
			assert.False(t, r.Queued, "rejected request %d must not queue", r.ID)
			continue
		}
		if r.Started {
			assert.GreaterOrEqual(t, r.ServiceStartTime, r.ArrivalTime)
			assert.GreaterOrEqual(t, r.ServiceStartTime, r.QueueExitTime)
		}
		if r.Queued && r.Started {
			assert.GreaterOrEqual(t, r.QueueExitTime, r.QueueEntryTime)
			assert.GreaterOrEqual(t, r.QueueEntryTime, r.ArrivalTime)
		}
		if r.Completed {
			assert.GreaterOrEqual(t, r.ServiceEndTime, r.ServiceStartTime)
			assert.False(t, math.IsNaN(r.SojournTime()))
		}
	}
}

func TestNewSimulator_InvalidConfig(t *testing.T) {
	arrival, err := NewExponential(0.4)
	require.NoError(t, err)
	service, err := NewExponential(0.5)
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero channels", Config{Channels: 0, BufferCapacity: UnboundedBuffer, Arrival: arrival, Service: service}},
		{"negative buffer", Config{Channels: 1, BufferCapacity: -2, Arrival: arrival, Service: service}},
		{"nil arrival", Config{Channels: 1, BufferCapacity: UnboundedBuffer, Service: service}},
		{"nil service", Config{Channels: 1, BufferCapacity: UnboundedBuffer, Arrival: arrival}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulator(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "error %v should wrap ErrInvalidParameter", err)
		})
	}
}
