package constants

import "time"

// Tier Transition Timing
const (
	// FadeOutDuration is how long a source tier takes to fade to black
	FadeOutDuration = 400 * time.Millisecond

	// FadeInDuration is how long a destination tier takes to fade up
	FadeInDuration = 500 * time.Millisecond

	// TransitionDebounce is the minimum spacing between accepted transition
	// requests. Distinct from the transition lock: the lock prevents overlap,
	// the debounce rejects double-click re-triggers
	TransitionDebounce = 300 * time.Millisecond

	// RevealMaxWait bounds the wait for an in-progress text reveal before a
	// dive proceeds anyway. Reveal pacing is advisory, never a hard dependency
	RevealMaxWait = 1200 * time.Millisecond

	// RevealPollInterval is how often the coordinator re-checks reveal progress
	RevealPollInterval = 50 * time.Millisecond

	// PrefetchTimeout bounds the destination data fetch during a transition
	PrefetchTimeout = 2 * time.Second
)

// Scene Readiness Gate
const (
	// ReadinessMinPolls is the minimum number of gate polls before release,
	// even when the scene is trivially complete
	ReadinessMinPolls = 2

	// ReadinessTimeoutPolls releases the gate with a warning rather than
	// hanging a transition on a scene that never finishes populating.
	// At TickRate this is roughly one second
	ReadinessTimeoutPolls = 60
)
