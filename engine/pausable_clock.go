package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides pausable simulation time. Orbital motion reads
// elapsed time from this clock, so pausing freezes every body mid-orbit and
// resume continues from the frozen angle: the orbital calculator stays a
// pure function of Elapsed while the clock absorbs pause accounting.
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider
	start    time.Time // real time at clock creation

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // when the current pause started (real time)
	totalPausedTime time.Duration // cumulative pause duration
}

// NewPausableClock creates a clock ticking from provider's current time
func NewPausableClock(provider TimeProvider) *PausableClock {
	return &PausableClock{
		provider: provider,
		start:    provider.Now(),
	}
}

// Elapsed returns simulation time elapsed since clock creation, excluding
// all paused intervals. Frozen while paused.
func (c *PausableClock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isPaused.Load() {
		return c.pauseStartTime.Sub(c.start) - c.totalPausedTime
	}
	return c.provider.Now().Sub(c.start) - c.totalPausedTime
}

// Seconds returns Elapsed as float64 seconds, the form the orbital
// calculator consumes
func (c *PausableClock) Seconds() float64 {
	return c.Elapsed().Seconds()
}

// Pause stops simulation time advancement
func (c *PausableClock) Pause() {
	if c.isPaused.CompareAndSwap(false, true) {
		c.mu.Lock()
		c.pauseStartTime = c.provider.Now()
		c.mu.Unlock()
	}
}

// Resume continues simulation time advancement
func (c *PausableClock) Resume() {
	if c.isPaused.CompareAndSwap(true, false) {
		c.mu.Lock()
		if !c.pauseStartTime.IsZero() {
			c.totalPausedTime += c.provider.Now().Sub(c.pauseStartTime)
			c.pauseStartTime = time.Time{}
		}
		c.mu.Unlock()
	}
}

// IsPaused returns current pause state
func (c *PausableClock) IsPaused() bool {
	return c.isPaused.Load()
}

// TotalPaused returns cumulative pause time, including the current pause
func (c *PausableClock) TotalPaused() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalPausedTime
	if c.isPaused.Load() && !c.pauseStartTime.IsZero() {
		total += c.provider.Now().Sub(c.pauseStartTime)
	}
	return total
}
