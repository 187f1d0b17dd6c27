package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/queuesim/queuesim/sim"
)

// ScenarioFile is the root of a scenario preset YAML document.
type ScenarioFile struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario describes one named queueing-system experiment. Run parameters
// left at zero fall back to the CLI flag values; a nil buffer capacity means
// an unbounded waiting line.
type Scenario struct {
	Channels       int          `yaml:"channels"`
	BufferCapacity *int         `yaml:"buffer_capacity,omitempty"`
	Arrival        sim.DistSpec `yaml:"arrival"`
	Service        sim.DistSpec `yaml:"service"`
	Horizon        float64      `yaml:"horizon,omitempty"`
	Realizations   int          `yaml:"realizations,omitempty"`
	Epsilon        float64      `yaml:"epsilon,omitempty"`
	Seed           int64        `yaml:"seed,omitempty"`
}

// GetScenario loads the named scenario from a YAML preset file.
func GetScenario(path, name string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}

	scenario, ok := file.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	return &scenario, nil
}

// applyTo overrides run parameters with the scenario's values where set.
func (s *Scenario) applyTo(horizon *float64, realizations *int, epsilon *float64, seed *int64) {
	if s.Horizon > 0 {
		*horizon = s.Horizon
	}
	if s.Realizations > 0 {
		*realizations = s.Realizations
	}
	if s.Epsilon > 0 {
		*epsilon = s.Epsilon
	}
	if s.Seed != 0 {
		*seed = s.Seed
	}
}

// SimConfig builds the typed simulator configuration from the scenario.
func (s *Scenario) SimConfig(seed int64) (sim.Config, error) {
	arrival, err := sim.NewDistribution(s.Arrival)
	if err != nil {
		return sim.Config{}, fmt.Errorf("arrival distribution: %w", err)
	}
	service, err := sim.NewDistribution(s.Service)
	if err != nil {
		return sim.Config{}, fmt.Errorf("service distribution: %w", err)
	}

	buffer := sim.UnboundedBuffer
	if s.BufferCapacity != nil {
		buffer = *s.BufferCapacity
	}

	return sim.Config{
		Channels:       s.Channels,
		BufferCapacity: buffer,
		Arrival:        arrival,
		Service:        service,
		Seed:           seed,
	}, nil
}
