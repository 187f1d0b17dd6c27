package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulated clock value) and an Execute method
// that advances simulation state when invoked. Events are created by the
// Simulator, consumed exactly once, and never mutated after scheduling.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents the arrival of a new request into the system.
type ArrivalEvent struct {
	time      float64 // Simulation time of arrival
	RequestID int     // ID the arriving request will receive
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute admits the request (channel, waiting line, or rejection) and
// schedules the next arrival.
func (e *ArrivalEvent) Execute(s *Simulator) {
	logrus.Debugf("<< Arrival: request %d at t=%.4f", e.RequestID, e.time)
	s.handleArrival(e.time)
}

// EndServiceEvent represents a channel finishing service of a request.
type EndServiceEvent struct {
	time      float64 // Scheduled completion time
	RequestID int     // Request being completed
	ChannelID int     // Channel that frees up
}

// Timestamp returns the scheduled time of the EndServiceEvent.
func (e *EndServiceEvent) Timestamp() float64 {
	return e.time
}

// Execute frees the channel and, if the waiting line is non-empty, moves its
// head into service.
func (e *EndServiceEvent) Execute(s *Simulator) {
	logrus.Debugf("<< EndService: request %d on channel %d at t=%.4f", e.RequestID, e.ChannelID, e.time)
	s.handleEndService(e.time, e.ChannelID)
}
