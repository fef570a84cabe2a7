package engine

import (
	"sync"
	"time"
)

// StepFunc runs one frame of the console pipeline. dt is wall-clock delta
// (animations keep easing while the sim clock is paused). Returning false
// stops the loop.
type StepFunc func(dt time.Duration, frame int64) bool

// Loop is the fixed-tick frame driver. It runs unconditionally every tick
// and never suspends; all cross-phase state it reads must therefore be in
// a consistent, frame-readable shape at every tick boundary.
type Loop struct {
	interval time.Duration
	provider TimeProvider
	sim      *SimContext

	maxDelta time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a frame loop with the given tick interval
func NewLoop(interval, maxDelta time.Duration, provider TimeProvider, sim *SimContext) *Loop {
	return &Loop{
		interval: interval,
		provider: provider,
		sim:      sim,
		maxDelta: maxDelta,
		stopChan: make(chan struct{}),
	}
}

// Run drives step once per tick until Stop is called or step returns false.
// Blocking; call from the goroutine that owns frame state.
func (l *Loop) Run(step StepFunc) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.provider.Now()
	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			now := l.provider.Now()
			dt := now.Sub(last)
			last = now
			if dt > l.maxDelta {
				dt = l.maxDelta
			}

			frame := l.sim.IncrementFrame()
			if !step(dt, frame) {
				return
			}
		}
	}
}

// Stop terminates the loop. Safe to call multiple times.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}
