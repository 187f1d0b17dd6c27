package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// Distribution generates random durations for inter-arrival times and
// service times. Implementations consume draws from the supplied rng in a
// fixed order, so two equally-seeded generators produce identical sample
// sequences.
type Distribution interface {
	// Sample returns the next duration. All implementations except Normal
	// return values >= 0; the engine floors non-positive draws.
	Sample(rng *rand.Rand) float64
}

// uniformOpen returns a uniform draw on (0, 1).
// rand.Float64 returns [0, 1); the zero draw is clamped to avoid ln(0).
func uniformOpen(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64
	}
	return u
}

// Exponential samples from the exponential distribution with the given rate,
// via the inverse CDF: x = -ln(R)/rate.
type Exponential struct {
	rate float64
}

// NewExponential validates the rate and returns the sampler.
func NewExponential(rate float64) (*Exponential, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: exponential rate must be > 0, got %v", ErrInvalidParameter, rate)
	}
	return &Exponential{rate: rate}, nil
}

func (d *Exponential) Sample(rng *rand.Rand) float64 {
	return -math.Log(uniformOpen(rng)) / d.rate
}

// Weibull samples from the Weibull distribution:
// x = scale * (-ln R)^(1/shape).
type Weibull struct {
	shape float64 // a
	scale float64 // b
}

// NewWeibull validates shape and scale and returns the sampler.
func NewWeibull(shape, scale float64) (*Weibull, error) {
	if shape <= 0 {
		return nil, fmt.Errorf("%w: weibull shape must be > 0, got %v", ErrInvalidParameter, shape)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("%w: weibull scale must be > 0, got %v", ErrInvalidParameter, scale)
	}
	return &Weibull{shape: shape, scale: scale}, nil
}

func (d *Weibull) Sample(rng *rand.Rand) float64 {
	return d.scale * math.Pow(-math.Log(uniformOpen(rng)), 1.0/d.shape)
}

// Gamma samples from the Erlang form of the Gamma distribution with integer
// shape eta: x = -(1/rate) * Σ_{j=1..eta} ln(1 - R_j).
type Gamma struct {
	rate  float64 // λ
	shape int     // η
}

// NewGamma validates rate and integer shape and returns the sampler.
func NewGamma(rate float64, shape int) (*Gamma, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: gamma rate must be > 0, got %v", ErrInvalidParameter, rate)
	}
	if shape <= 0 {
		return nil, fmt.Errorf("%w: gamma shape must be a positive integer, got %d", ErrInvalidParameter, shape)
	}
	return &Gamma{rate: rate, shape: shape}, nil
}

func (d *Gamma) Sample(rng *rand.Rand) float64 {
	sum := 0.0
	for j := 0; j < d.shape; j++ {
		// rand.Float64 is in [0, 1), so 1-R stays in (0, 1].
		sum += math.Log(1.0 - rng.Float64())
	}
	return -sum / d.rate
}

// Normal samples from an approximate normal distribution using the sum of
// six uniform draws: x = stdDev * √2 * (Σ_{i=1..6} R_i - 3) + mean.
// This closed form has exactly the requested mean and variance but bounded
// tails; samples can be negative for small means.
type Normal struct {
	mean   float64
	stdDev float64
}

// NewNormal validates the standard deviation and returns the sampler.
func NewNormal(mean, stdDev float64) (*Normal, error) {
	if stdDev <= 0 {
		return nil, fmt.Errorf("%w: normal std_dev must be > 0, got %v", ErrInvalidParameter, stdDev)
	}
	return &Normal{mean: mean, stdDev: stdDev}, nil
}

func (d *Normal) Sample(rng *rand.Rand) float64 {
	sum := 0.0
	for i := 0; i < 6; i++ {
		sum += rng.Float64()
	}
	return d.stdDev*math.Sqrt2*(sum-3.0) + d.mean
}

// DistSpec parameterizes a duration distribution at the configuration
// boundary (YAML scenarios, CLI). It is converted to a typed Distribution
// by NewDistribution before any sampling happens.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("%w: distribution requires parameter %q", ErrInvalidParameter, k)
		}
	}
	return nil
}

// NewDistribution creates a Distribution from a DistSpec.
func NewDistribution(spec DistSpec) (Distribution, error) {
	switch spec.Type {
	case "exponential":
		if err := requireParam(spec.Params, "rate"); err != nil {
			return nil, err
		}
		return NewExponential(spec.Params["rate"])

	case "weibull":
		if err := requireParam(spec.Params, "shape", "scale"); err != nil {
			return nil, err
		}
		return NewWeibull(spec.Params["shape"], spec.Params["scale"])

	case "gamma":
		if err := requireParam(spec.Params, "rate", "shape"); err != nil {
			return nil, err
		}
		shape := spec.Params["shape"]
		if shape != math.Trunc(shape) {
			return nil, fmt.Errorf("%w: gamma shape must be an integer, got %v", ErrInvalidParameter, shape)
		}
		return NewGamma(spec.Params["rate"], int(shape))

	case "normal":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return NewNormal(spec.Params["mean"], spec.Params["std_dev"])

	default:
		return nil, fmt.Errorf("%w: unknown distribution type %q", ErrInvalidParameter, spec.Type)
	}
}
