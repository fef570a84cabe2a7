package scene

import (
	"log"

	"github.com/icariumtech/mothership-console/constants"
)

// ReadinessGate defers a scene's first camera placement and fade-in until
// every renderable the tier's data describes has been constructed,
// preventing visible pop-in. Polled once per frame by the owning scene.
//
// Policy: wait a minimum of two polls even when trivially ready (layout
// races), release with a warning after the timeout rather than hanging a
// transition on a scene that never finishes populating.
type ReadinessGate struct {
	label        string
	expected     int
	minPolls     int
	timeoutPolls int

	polls    int
	released bool
	timedOut bool
	done     chan struct{}
}

// NewReadinessGate creates a gate expecting the given object count
func NewReadinessGate(label string, expected int) *ReadinessGate {
	return &ReadinessGate{
		label:        label,
		expected:     expected,
		minPolls:     constants.ReadinessMinPolls,
		timeoutPolls: constants.ReadinessTimeoutPolls,
		done:         make(chan struct{}),
	}
}

// Poll records one frame's constructed-object count. Returns true exactly
// once, on the poll that releases the gate.
func (g *ReadinessGate) Poll(actual int) bool {
	if g.released {
		return false
	}
	g.polls++

	if g.polls >= g.minPolls && actual >= g.expected {
		g.release()
		return true
	}

	if g.polls >= g.timeoutPolls {
		g.timedOut = true
		log.Printf("scene %s: readiness timeout after %d polls (%d/%d objects), proceeding",
			g.label, g.polls, actual, g.expected)
		g.release()
		return true
	}
	return false
}

func (g *ReadinessGate) release() {
	g.released = true
	close(g.done)
}

// Done is closed when the gate releases
func (g *ReadinessGate) Done() <-chan struct{} {
	return g.done
}

// Released reports whether the gate has released
func (g *ReadinessGate) Released() bool {
	return g.released
}

// TimedOut reports whether release came from the timeout fallback
func (g *ReadinessGate) TimedOut() bool {
	return g.timedOut
}

// Polls returns how many polls the gate has seen
func (g *ReadinessGate) Polls() int {
	return g.polls
}
