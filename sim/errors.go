package sim

import "errors"

// Sentinel errors returned by the sim package. Callers match them with
// errors.Is so a failed analytic reference can be told apart from a bad
// distribution parameter (an unstable configuration can still be simulated,
// it just cannot be validated).
var (
	// ErrInvalidParameter reports a distribution or simulator parameter that
	// fails validation. Raised before any random draw or state mutation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyQueue reports a pop or peek on an empty event queue. With a
	// correct engine loop this never happens; it exists so the failure is
	// explicit rather than a nil dereference.
	ErrEmptyQueue = errors.New("event queue is empty")

	// ErrUnstable reports a Markovian configuration with no steady state
	// (offered load at or above capacity).
	ErrUnstable = errors.New("queueing system is unstable")
)
