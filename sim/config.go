package sim

import "fmt"

// Config groups the parameters of one queueing system simulation.
type Config struct {
	Channels       int          // number of service channels (must be > 0)
	BufferCapacity int          // waiting-line cap; UnboundedBuffer = no cap
	Arrival        Distribution // inter-arrival time distribution
	Service        Distribution // service time distribution
	Seed           int64        // master seed; fully determines the run
}

// Validate checks the configuration before any event is processed.
func (c Config) Validate() error {
	if c.Channels <= 0 {
		return fmt.Errorf("%w: channels must be > 0, got %d", ErrInvalidParameter, c.Channels)
	}
	if c.BufferCapacity < UnboundedBuffer {
		return fmt.Errorf("%w: buffer capacity must be >= 0 or UnboundedBuffer, got %d", ErrInvalidParameter, c.BufferCapacity)
	}
	if c.Arrival == nil {
		return fmt.Errorf("%w: arrival distribution is required", ErrInvalidParameter)
	}
	if c.Service == nil {
		return fmt.Errorf("%w: service distribution is required", ErrInvalidParameter)
	}
	return nil
}
