// Closed-form steady-state characteristics for the Markovian special cases,
// used as ground truth when validating simulated results.

package sim

import "fmt"

// refStateLevels is how many occupancy levels the reference reports
// probabilities for (levels 0..refStateLevels-1).
const refStateLevels = 21

// ReferenceStatistics holds closed-form steady-state metrics for a Markovian
// queueing system with an unbounded buffer.
type ReferenceStatistics struct {
	Channels int     // n
	Rho      float64 // offered load per channel, λ/(n·μ)
	P0       float64 // probability of an empty system

	// WaitProbability is the probability an arriving customer must wait
	// (the Erlang-C value for n > 1; ρ for the single channel).
	WaitProbability float64

	// StateProbabilities maps occupancy level -> steady-state probability,
	// for levels 0..refStateLevels-1.
	StateProbabilities map[int]float64

	AvgQueueLength float64 // Lq
	AvgWaitTime    float64 // Wq
	AvgSystemTime  float64 // Ws
	AvgInSystem    float64 // L

	// An unbounded buffer never rejects.
	RejectionProbability float64 // 0
	RelativeThroughput   float64 // 1
	AbsoluteThroughput   float64 // λ
}

// MM1 computes the steady-state characteristics of an M/M/1/∞ system.
// Fails with ErrUnstable when λ/μ >= 1 and with ErrInvalidParameter for
// non-positive rates.
func MM1(lambda, mu float64) (ReferenceStatistics, error) {
	if lambda <= 0 || mu <= 0 {
		return ReferenceStatistics{}, fmt.Errorf("%w: rates must be > 0, got lambda=%v mu=%v", ErrInvalidParameter, lambda, mu)
	}
	rho := lambda / mu
	if rho >= 1 {
		return ReferenceStatistics{}, fmt.Errorf("%w: rho = %.4f >= 1", ErrUnstable, rho)
	}

	p0 := 1 - rho
	probs := make(map[int]float64, refStateLevels)
	pk := p0
	for k := 0; k < refStateLevels; k++ {
		probs[k] = pk
		pk *= rho
	}

	return ReferenceStatistics{
		Channels:           1,
		Rho:                rho,
		P0:                 p0,
		WaitProbability:    rho,
		StateProbabilities: probs,
		AvgQueueLength:     rho * rho / (1 - rho),
		AvgWaitTime:        rho / (mu * (1 - rho)),
		AvgSystemTime:      1 / (mu * (1 - rho)),
		AvgInSystem:        rho / (1 - rho),
		RelativeThroughput: 1,
		AbsoluteThroughput: lambda,
	}, nil
}

// MMN computes the steady-state characteristics of an M/M/n/∞ system using
// the standard Erlang-C closed forms. Fails with ErrUnstable when
// λ/(n·μ) >= 1 and with ErrInvalidParameter for bad inputs.
func MMN(lambda, mu float64, n int) (ReferenceStatistics, error) {
	if lambda <= 0 || mu <= 0 {
		return ReferenceStatistics{}, fmt.Errorf("%w: rates must be > 0, got lambda=%v mu=%v", ErrInvalidParameter, lambda, mu)
	}
	if n <= 0 {
		return ReferenceStatistics{}, fmt.Errorf("%w: channel count must be > 0, got %d", ErrInvalidParameter, n)
	}

	a := lambda / mu // offered load in Erlangs
	rho := a / float64(n)
	if rho >= 1 {
		return ReferenceStatistics{}, fmt.Errorf("%w: rho = %.4f >= 1", ErrUnstable, rho)
	}

	// p0 = 1 / (Σ_{k=0..n-1} a^k/k!  +  a^n/(n!·(1-ρ))), with the a^k/k!
	// terms accumulated iteratively.
	sum := 1.0  // k = 0 term
	term := 1.0 // a^k / k!
	for k := 1; k < n; k++ {
		term *= a / float64(k)
		sum += term
	}
	term *= a / float64(n) // now a^n / n!
	erlangTail := term / (1 - rho)
	p0 := 1 / (sum + erlangTail)

	// Erlang-C: probability an arriving customer waits.
	pw := erlangTail * p0

	lq := pw * rho / (1 - rho)
	wq := lq / lambda
	ws := wq + 1/mu

	// p_k = p0·a^k/k! for k < n; p0·(a^n/n!)·ρ^(k-n) for k >= n.
	probs := make(map[int]float64, refStateLevels)
	pk := p0
	for k := 0; k < refStateLevels; k++ {
		probs[k] = pk
		if k < n {
			pk *= a / float64(k+1)
		} else {
			pk *= rho
		}
	}

	return ReferenceStatistics{
		Channels:           n,
		Rho:                rho,
		P0:                 p0,
		WaitProbability:    pw,
		StateProbabilities: probs,
		AvgQueueLength:     lq,
		AvgWaitTime:        wq,
		AvgSystemTime:      ws,
		AvgInSystem:        lambda * ws,
		RelativeThroughput: 1,
		AbsoluteThroughput: lambda,
	}, nil
}
