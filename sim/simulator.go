// Implements the discrete-event loop for one realization of the queueing
// system: pop the earliest event, integrate occupancy time, mutate state,
// schedule follow-on events, stop at the horizon.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// minDuration floors sampled durations. The six-draw normal approximation
// can produce non-positive values; the clock must still move forward.
const minDuration = 1e-3

// Simulator orchestrates realizations of a queueing system. One Simulator
// runs one realization at a time; its RNG stream continues across calls, so
// repeated RunRealization calls on the same instance produce independent
// realizations while a fresh Simulator with the same seed reproduces the
// whole sequence.
//
// Every Request is retained until the end of the realization (O(arrivals)
// memory per run) and summarized once into RealizationStatistics.
type Simulator struct {
	cfg Config
	rng *rand.Rand

	// Per-realization state, reset by RunRealization.
	state          *SystemState
	events         *EventHeap
	requests       []*Request
	requestCounter int
	rejected       int
}

// NewSimulator validates the configuration and creates a simulator with its
// own seeded generator. Fails with ErrInvalidParameter before any draw is
// taken or state is allocated.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSimulator(cfg), nil
}

// newSimulator constructs without validating; callers must have validated cfg.
func newSimulator(cfg Config) *Simulator {
	return &Simulator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// RunRealization executes one realization over the given horizon and returns
// its statistics. The horizon is a hard cutoff: the first event past it, and
// everything after, is discarded. Side effects are confined to state created
// within the call.
func (s *Simulator) RunRealization(horizon float64) RealizationStatistics {
	s.state = NewSystemState(s.cfg.Channels, s.cfg.BufferCapacity)
	s.events = NewEventHeap()
	s.requests = nil
	s.requestCounter = 0
	s.rejected = 0

	s.scheduleArrival(0)

	lastTime := 0.0
	lastLevel := 0
	for {
		ev, err := s.events.PopNext()
		if err != nil {
			break
		}
		if ev.Timestamp() > horizon {
			break
		}

		// Credit the interval since the previous event to the level the
		// system held during it, before the event changes anything.
		s.state.AccumulateOccupancy(lastLevel, ev.Timestamp()-lastTime)

		ev.Execute(s)

		lastLevel = s.state.Occupancy()
		lastTime = ev.Timestamp()
	}

	// The tail from the last processed event to the horizon.
	if remaining := horizon - lastTime; remaining > 0 {
		s.state.AccumulateOccupancy(lastLevel, remaining)
	}

	stats := newRealizationStatistics(horizon, s.cfg.Channels, s.requests, s.rejected, s.state.OccupancyTime())
	logrus.Debugf("realization done: %d arrivals, %d served, %d rejected over T=%.1f",
		stats.Arrivals, stats.Served, stats.Rejected, horizon)
	return stats
}

// handleArrival admits a new request at time now: straight into a free
// channel, into the waiting line if there is room, otherwise rejected.
// Always schedules the next arrival.
func (s *Simulator) handleArrival(now float64) {
	req := &Request{
		ID:              s.requestCounter,
		ArrivalTime:     now,
		ServiceDuration: s.sampleDuration(s.cfg.Service),
	}
	s.requestCounter++
	s.requests = append(s.requests, req)

	if channelID, ok := s.state.FreeChannel(); ok {
		s.state.StartService(channelID, req, now)
		s.scheduleEndService(req, channelID, now)
	} else if !s.state.LineFull() {
		req.Queued = true
		req.QueueEntryTime = now
		s.state.line.Enqueue(req)
	} else {
		req.Rejected = true
		s.rejected++
		logrus.Debugf("request %d rejected at t=%.4f (buffer full)", req.ID, now)
	}

	s.scheduleArrival(now)
}

// handleEndService frees the channel at time now and, if anyone is waiting,
// moves the head of the line into service on that channel.
func (s *Simulator) handleEndService(now float64, channelID int) {
	s.state.FinishService(channelID, now)

	if next := s.state.line.Dequeue(); next != nil {
		s.state.StartService(channelID, next, now)
		s.scheduleEndService(next, channelID, now)
	}
}

// scheduleArrival draws the next inter-arrival interval and schedules the
// arrival event at now + interval.
func (s *Simulator) scheduleArrival(now float64) {
	s.events.Schedule(&ArrivalEvent{
		time:      now + s.sampleDuration(s.cfg.Arrival),
		RequestID: s.requestCounter,
	})
}

// scheduleEndService schedules the completion of req's service on the given
// channel, using the duration drawn when the request was created.
func (s *Simulator) scheduleEndService(req *Request, channelID int, now float64) {
	s.events.Schedule(&EndServiceEvent{
		time:      now + req.ServiceDuration,
		RequestID: req.ID,
		ChannelID: channelID,
	})
}

// sampleDuration draws from d and floors the result at minDuration.
func (s *Simulator) sampleDuration(d Distribution) float64 {
	v := d.Sample(s.rng)
	if v <= 0 {
		return minDuration
	}
	return v
}
