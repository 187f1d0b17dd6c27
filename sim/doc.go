// Package sim provides a discrete-event Monte Carlo simulator for
// multi-channel queueing systems with a finite or unbounded waiting buffer.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - request.go: Request lifecycle (arrival → queue → service → completion)
//   - event.go: Event types that drive the simulation (Arrival, EndService)
//   - simulator.go: The event loop, occupancy accounting, and horizon cutoff
//
// # Architecture
//
// One Simulator executes one realization at a time: it seeds the first
// arrival, then repeatedly pops the earliest event from the EventHeap,
// integrates occupancy time, and lets the event mutate the SystemState.
// Inter-arrival and service durations come from Distribution samplers
// (distribution.go) driven by an explicit per-simulator RNG, so a seed fully
// determines a realization.
//
// Across realizations:
//   - montecarlo.go: runs N independent realizations (optionally on
//     goroutines, one derived seed each) and combines their statistics into
//     per-metric means and standard deviations
//   - analytic.go: closed-form M/M/1/∞ and M/M/n/∞ (Erlang-C) references
//   - validate.go: relative-error comparison of simulated against analytic
package sim
