package engine

import (
	"testing"
	"time"
)

func TestPausableClockElapsed(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(1000, 0))
	clock := NewPausableClock(mock)

	mock.Advance(3 * time.Second)
	if got := clock.Elapsed(); got != 3*time.Second {
		t.Errorf("expected 3s elapsed, got %v", got)
	}
}

// Pausing must freeze elapsed, not stop the wall clock from advancing
func TestPausableClockPauseFreezesElapsed(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(1000, 0))
	clock := NewPausableClock(mock)

	mock.Advance(2 * time.Second)
	clock.Pause()

	// Wall clock keeps going; sim time must not
	mock.Advance(10 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Errorf("elapsed advanced during pause: got %v, want 2s", got)
	}

	clock.Resume()
	mock.Advance(1 * time.Second)
	if got := clock.Elapsed(); got != 3*time.Second {
		t.Errorf("expected 3s after resume, got %v", got)
	}
	if got := clock.TotalPaused(); got != 10*time.Second {
		t.Errorf("expected 10s total paused, got %v", got)
	}
}

func TestPausableClockDoublePauseResume(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(1000, 0))
	clock := NewPausableClock(mock)

	clock.Pause()
	clock.Pause() // no-op
	mock.Advance(5 * time.Second)
	clock.Resume()
	clock.Resume() // no-op

	if got := clock.Elapsed(); got != 0 {
		t.Errorf("expected 0 elapsed, got %v", got)
	}
	if clock.IsPaused() {
		t.Errorf("clock should not be paused")
	}
}

func TestSimContextReveal(t *testing.T) {
	sim := NewSimContext(NewPausableClock(NewMockTimeProvider(time.Unix(0, 0))))

	// Fresh context reports done (nothing to reveal)
	if !sim.RevealDone() {
		t.Fatalf("fresh context should report reveal done")
	}

	sim.ResetReveal(100)
	if sim.RevealDone() {
		t.Fatalf("reveal should restart at 0")
	}

	sim.AdvanceReveal(50)
	if got := sim.RevealProgress(); got != 0.5 {
		t.Errorf("expected progress 0.5, got %v", got)
	}

	// Progress clamps at 1 and stays there
	sim.AdvanceReveal(500)
	if got := sim.RevealProgress(); got != 1.0 {
		t.Errorf("expected progress clamped to 1, got %v", got)
	}
	if !sim.RevealDone() {
		t.Errorf("reveal should be done")
	}

	// Empty text is immediately done
	sim.ResetReveal(0)
	if !sim.RevealDone() {
		t.Errorf("empty reveal should be immediately done")
	}
}
