package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/queuesim/queuesim/sim"
)

var scenarioPath = filepath.Join("..", "examples", "scenarios.yaml")

func TestGetScenario_MM1Preset(t *testing.T) {
	s, err := GetScenario(scenarioPath, "mm1")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Channels)
	assert.Nil(t, s.BufferCapacity, "mm1 has an unbounded buffer")
	assert.Equal(t, "exponential", s.Arrival.Type)
	assert.Equal(t, 0.4, s.Arrival.Params["rate"])
	assert.Equal(t, "exponential", s.Service.Type)
	assert.Equal(t, 0.5, s.Service.Params["rate"])
	assert.Equal(t, 10000.0, s.Horizon)
	assert.Equal(t, 100, s.Realizations)
	assert.Equal(t, 0.05, s.Epsilon)
	assert.Equal(t, int64(18), s.Seed)
}

func TestGetScenario_AllPresetsBuildConfigs(t *testing.T) {
	for _, name := range []string{"mm1", "mm3", "loss", "weibull-gamma"} {
		t.Run(name, func(t *testing.T) {
			s, err := GetScenario(scenarioPath, name)
			require.NoError(t, err)

			cfg, err := s.SimConfig(s.Seed)
			require.NoError(t, err)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestGetScenario_LossPresetHasZeroBuffer(t *testing.T) {
	s, err := GetScenario(scenarioPath, "loss")
	require.NoError(t, err)

	require.NotNil(t, s.BufferCapacity)
	assert.Equal(t, 0, *s.BufferCapacity)

	cfg, err := s.SimConfig(18)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.BufferCapacity)
}

func TestGetScenario_UnboundedWhenCapacityOmitted(t *testing.T) {
	s, err := GetScenario(scenarioPath, "mm3")
	require.NoError(t, err)

	cfg, err := s.SimConfig(18)
	require.NoError(t, err)
	assert.Equal(t, sim.UnboundedBuffer, cfg.BufferCapacity)
}

func TestGetScenario_Errors(t *testing.T) {
	_, err := GetScenario(scenarioPath, "no-such-scenario")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = GetScenario(filepath.Join("..", "examples", "missing.yaml"), "mm1")
	require.Error(t, err)
}

func TestScenario_ApplyToOverridesOnlySetFields(t *testing.T) {
	s := Scenario{Horizon: 5000, Seed: 99}

	horizon, realizations, epsilon, seed := 10000.0, 100, 0.05, int64(18)
	s.applyTo(&horizon, &realizations, &epsilon, &seed)

	assert.Equal(t, 5000.0, horizon)
	assert.Equal(t, int64(99), seed)
	assert.Equal(t, 100, realizations, "unset fields keep the flag values")
	assert.Equal(t, 0.05, epsilon)
}

func TestScenario_SimConfigRejectsBadDistribution(t *testing.T) {
	s := Scenario{
		Channels: 1,
		Arrival:  sim.DistSpec{Type: "exponential", Params: map[string]float64{"rate": -1}},
		Service:  sim.DistSpec{Type: "exponential", Params: map[string]float64{"rate": 0.5}},
	}

	_, err := s.SimConfig(18)
	require.Error(t, err)
	assert.ErrorIs(t, err, sim.ErrInvalidParameter)
}
