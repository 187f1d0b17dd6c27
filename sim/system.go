// Implements the SystemState: channel slots, the FIFO waiting line, and the
// time-weighted occupancy histogram that state probabilities derive from.

package sim

import (
	"fmt"
	"strings"
)

// UnboundedBuffer marks a waiting line with no capacity limit.
const UnboundedBuffer = -1

// WaitLine is a FIFO queue of requests awaiting a free channel.
type WaitLine struct {
	queue []*Request
}

// Enqueue adds a request to the back of the waiting line.
func (wl *WaitLine) Enqueue(r *Request) {
	wl.queue = append(wl.queue, r)
}

// Dequeue removes and returns the request at the front of the line.
// Returns nil if the line is empty.
func (wl *WaitLine) Dequeue() *Request {
	if len(wl.queue) == 0 {
		return nil
	}
	head := wl.queue[0]
	wl.queue = wl.queue[1:]
	return head
}

// Peek returns the request at the front of the line without removing it.
// Returns nil if the line is empty.
func (wl *WaitLine) Peek() *Request {
	if len(wl.queue) == 0 {
		return nil
	}
	return wl.queue[0]
}

// Len returns the number of waiting requests.
func (wl *WaitLine) Len() int {
	return len(wl.queue)
}

func (wl *WaitLine) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range wl.queue {
		sb.WriteString(fmt.Sprint(r.ID))
		if i < len(wl.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// SystemState is the mutable state of the queueing system during one
// realization: which request occupies each channel, who is waiting, and how
// much simulated time the system has spent at each occupancy level.
// Occupancy level = busy channels + waiting-line length.
type SystemState struct {
	channels       []*Request // nil slot = free channel
	line           WaitLine
	bufferCapacity int // UnboundedBuffer = no cap
	occupancyTime  map[int]float64
}

// NewSystemState creates a fresh state with all channels free, an empty
// waiting line, and a zeroed occupancy histogram.
func NewSystemState(channels, bufferCapacity int) *SystemState {
	return &SystemState{
		channels:       make([]*Request, channels),
		bufferCapacity: bufferCapacity,
		occupancyTime:  make(map[int]float64),
	}
}

// BusyChannels returns the number of occupied channels.
func (s *SystemState) BusyChannels() int {
	busy := 0
	for _, r := range s.channels {
		if r != nil {
			busy++
		}
	}
	return busy
}

// QueueLength returns the number of requests in the waiting line.
func (s *SystemState) QueueLength() int {
	return s.line.Len()
}

// Occupancy returns the current occupancy level.
func (s *SystemState) Occupancy() int {
	return s.BusyChannels() + s.line.Len()
}

// FreeChannel returns the lowest-indexed free channel, or ok=false when all
// channels are busy.
func (s *SystemState) FreeChannel() (int, bool) {
	for i, r := range s.channels {
		if r == nil {
			return i, true
		}
	}
	return 0, false
}

// LineFull reports whether the waiting line is at capacity.
// An unbounded line is never full.
func (s *SystemState) LineFull() bool {
	if s.bufferCapacity == UnboundedBuffer {
		return false
	}
	return s.line.Len() >= s.bufferCapacity
}

// StartService places a request on the given channel at time now,
// stamping its queue-exit and service-start times.
func (s *SystemState) StartService(channelID int, r *Request, now float64) {
	if s.channels[channelID] != nil {
		panic(fmt.Sprintf("StartService: channel %d already busy", channelID))
	}
	s.channels[channelID] = r
	r.Started = true
	r.ServiceStartTime = now
	r.QueueExitTime = now
}

// FinishService frees the given channel at time now and returns the request
// that completed, stamping its service-end time.
func (s *SystemState) FinishService(channelID int, now float64) *Request {
	r := s.channels[channelID]
	if r == nil {
		panic(fmt.Sprintf("FinishService: channel %d is free", channelID))
	}
	s.channels[channelID] = nil
	r.Completed = true
	r.ServiceEndTime = now
	return r
}

// AccumulateOccupancy adds dt simulated time units to the histogram bucket
// for the given occupancy level.
func (s *SystemState) AccumulateOccupancy(level int, dt float64) {
	s.occupancyTime[level] += dt
}

// OccupancyTime returns the histogram of simulated time per occupancy level.
// Keys are exactly the levels actually visited.
func (s *SystemState) OccupancyTime() map[int]float64 {
	return s.occupancyTime
}
