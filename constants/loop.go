package constants

import "time"

// Frame Loop Timing
const (
	// TickRate is the target frame rate of the console loop
	TickRate = 60

	// TickInterval is the fixed tick duration derived from TickRate
	TickInterval = time.Second / TickRate

	// MaxFrameDelta caps the per-frame delta fed to animations after a stall
	// (debugger pause, terminal suspend) so tweens never jump to completion
	MaxFrameDelta = 250 * time.Millisecond
)

// Event Queue Sizing
const (
	// EventQueueSize must be a power of two (ring buffer indexing)
	EventQueueSize = 256

	// EventBufferMask is EventQueueSize - 1
	EventBufferMask = EventQueueSize - 1
)
