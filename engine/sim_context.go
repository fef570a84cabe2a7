package engine

import (
	"math"
	"sync/atomic"
)

// SimContext is the shared coordination state threaded explicitly through
// every constructor that needs it. Each field has a single writer:
//   - pause (via Clock): transition coordinator or the input handler
//   - reveal progress: the frame loop's reveal ticker
//   - frame counter: the frame loop
//
// All other access is read-only. Reads and writes happen inside the
// single-threaded frame tick or through atomics, so no further locking
// is layered on top.
type SimContext struct {
	Clock *PausableClock

	frame         atomic.Int64
	revealBits    atomic.Uint64 // float64 bits, progress in [0,1]
	revealCharges atomic.Uint64 // float64 bits, total chars of current reveal
}

// NewSimContext creates the coordination store around a pausable clock
func NewSimContext(clock *PausableClock) *SimContext {
	s := &SimContext{Clock: clock}
	s.revealBits.Store(math.Float64bits(1.0))
	return s
}

// Frame returns the current frame number
func (s *SimContext) Frame() int64 {
	return s.frame.Load()
}

// IncrementFrame advances and returns the frame number. Frame loop only.
func (s *SimContext) IncrementFrame() int64 {
	return s.frame.Add(1)
}

// RevealProgress returns typewriter reveal progress in [0,1]
func (s *SimContext) RevealProgress() float64 {
	return math.Float64frombits(s.revealBits.Load())
}

// RevealDone reports whether the current text reveal has finished
func (s *SimContext) RevealDone() bool {
	return s.RevealProgress() >= 1.0
}

// ResetReveal restarts the typewriter for a text of the given rune count.
// Zero-length text is immediately done.
func (s *SimContext) ResetReveal(runeCount int) {
	s.revealCharges.Store(math.Float64bits(float64(runeCount)))
	if runeCount <= 0 {
		s.revealBits.Store(math.Float64bits(1.0))
		return
	}
	s.revealBits.Store(math.Float64bits(0.0))
}

// AdvanceReveal moves reveal progress by revealed characters. Called once
// per frame by the reveal ticker; progress is clamped at 1.
func (s *SimContext) AdvanceReveal(chars float64) {
	total := math.Float64frombits(s.revealCharges.Load())
	if total <= 0 {
		return
	}
	for {
		oldBits := s.revealBits.Load()
		old := math.Float64frombits(oldBits)
		if old >= 1.0 {
			return
		}
		next := old + chars/total
		if next > 1.0 {
			next = 1.0
		}
		if s.revealBits.CompareAndSwap(oldBits, math.Float64bits(next)) {
			return
		}
	}
}
