package scene

import "testing"

// The gate releases on the first poll at or after the count is reached,
// never before
func TestGateReleasesWhenCountReached(t *testing.T) {
	g := NewReadinessGate("system", 5)

	for i := 0; i < 39; i++ {
		if g.Poll(4) {
			t.Fatalf("released at poll %d with 4 of 5 built", i+1)
		}
	}
	if !g.Poll(5) {
		t.Fatalf("did not release at poll 40 with the full count")
	}
	if g.Polls() != 40 {
		t.Errorf("polls = %d, want 40", g.Polls())
	}
	if g.TimedOut() {
		t.Errorf("timed out on a clean release")
	}
	if !chanClosed(g.Done()) {
		t.Errorf("done channel not closed after release")
	}
}

// Even a trivially complete scene waits the minimum number of polls, so a
// zero-element tier still spends at least one frame settling
func TestGateMinimumPolls(t *testing.T) {
	g := NewReadinessGate("orbit", 0)

	if g.Poll(0) {
		t.Fatalf("released on the first poll")
	}
	if !g.Poll(0) {
		t.Fatalf("did not release on the second poll")
	}
}

// A gate whose count is never reached releases on the timeout poll rather
// than stalling the console forever
func TestGateTimeout(t *testing.T) {
	g := NewReadinessGate("galaxy", 100)

	released := false
	for i := 0; i < 120 && !released; i++ {
		released = g.Poll(3)
	}
	if !released {
		t.Fatalf("gate never released")
	}
	if g.Polls() != 60 {
		t.Errorf("released at poll %d, want 60", g.Polls())
	}
	if !g.TimedOut() {
		t.Errorf("timeout release must be flagged")
	}
}

// Poll returns true exactly once; later polls are no-ops
func TestGateReleasesOnce(t *testing.T) {
	g := NewReadinessGate("system", 1)

	g.Poll(1)
	if !g.Poll(1) {
		t.Fatalf("did not release at minimum polls")
	}
	for i := 0; i < 5; i++ {
		if g.Poll(1) {
			t.Errorf("poll %d after release returned true again", i+1)
		}
	}
	if !g.Released() {
		t.Errorf("gate must stay released")
	}
}
