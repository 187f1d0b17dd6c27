// Defines the Request struct that models an individual customer in the
// simulation. Tracks arrival, queue entry/exit, service start/end timestamps.

package sim

import "fmt"

// Request models a single customer's lifecycle in the simulation.
// Timestamp fields are only meaningful when the matching flag is set;
// the simulated clock starts at 0, so a zero value alone is ambiguous.
//
// Invariant whenever the fields are set:
//
//	ServiceStartTime >= QueueExitTime >= QueueEntryTime >= ArrivalTime
//
// A rejected request has none of the queue/service fields set.
type Request struct {
	ID              int     // Unique identifier within one realization
	ArrivalTime     float64 // When the request arrived
	ServiceDuration float64 // Drawn once at creation, independent of queue state

	Queued         bool    // Request passed through the waiting line
	QueueEntryTime float64 // When it joined the waiting line
	QueueExitTime  float64 // When it left the waiting line for a channel

	Started          bool    // Service began before the horizon
	ServiceStartTime float64 // When a channel picked it up

	Completed      bool    // Service finished before the horizon
	ServiceEndTime float64 // When the channel released it

	Rejected bool // Turned away because the waiting buffer was full
}

// WaitTime returns the time spent waiting for service to begin
// (0 for requests served on arrival). Only meaningful once Started.
func (r *Request) WaitTime() float64 {
	if !r.Started {
		return 0
	}
	return r.ServiceStartTime - r.ArrivalTime
}

// QueueTime returns the time spent in the waiting line (0 if the request
// never queued or has not left the line).
func (r *Request) QueueTime() float64 {
	if !r.Queued || !r.Started {
		return 0
	}
	return r.QueueExitTime - r.QueueEntryTime
}

// SojournTime returns the total time in the system, arrival to service
// completion. Only meaningful once Completed.
func (r *Request) SojournTime() float64 {
	if !r.Completed {
		return 0
	}
	return r.ServiceEndTime - r.ArrivalTime
}

func (r Request) String() string {
	switch {
	case r.Rejected:
		return fmt.Sprintf("Request(ID: %d, arrived: %.4f, rejected)", r.ID, r.ArrivalTime)
	case r.Completed:
		return fmt.Sprintf("Request(ID: %d, arrived: %.4f, completed: %.4f)", r.ID, r.ArrivalTime, r.ServiceEndTime)
	default:
		return fmt.Sprintf("Request(ID: %d, arrived: %.4f, in system)", r.ID, r.ArrivalTime)
	}
}
