package sim

import (
	"fmt"
	"hash/fnv"
)

// SimulationKey uniquely identifies a reproducible experiment. Two
// experiments with the same SimulationKey and identical configuration MUST
// produce bit-for-bit identical results, regardless of how many realizations
// run or in what order they are scheduled.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RealizationSeed derives the RNG seed for realization i of an experiment.
//
// Derivation:
//   - realization 0 uses the master seed directly, so a single-realization
//     experiment behaves exactly like a Simulator constructed with that seed
//   - realization i>0 uses masterSeed XOR fnv1a64("realization_i")
//
// Each realization owns a generator seeded this way, so realizations can run
// on separate goroutines without sharing RNG state.
func (k SimulationKey) RealizationSeed(i int) int64 {
	if i == 0 {
		return int64(k)
	}
	return int64(k) ^ fnv1a64(fmt.Sprintf("realization_%d", i))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
