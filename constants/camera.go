package constants

import "time"

// Camera Choreography Timing
const (
	// MoveEaseDuration is the ease time for framing a selected element
	MoveEaseDuration = 1200 * time.Millisecond

	// ReturnEaseDuration is the ease time back to a scene's default pose
	ReturnEaseDuration = 1000 * time.Millisecond

	// ZoomDuration is the distance-only dolly time at tier boundaries
	ZoomDuration = 900 * time.Millisecond
)

// Camera Framing
const (
	// FrameHeightFactor and FrameDistanceFactor place the camera relative to
	// a framed element, scaled by the element's visual size
	FrameHeightFactor   = 1.8
	FrameDistanceFactor = 3.6

	// ZoomCloseFactor is the camera distance used for the "very close to a
	// body" pose at tier hand-off, scaled by the central body's visual size
	ZoomCloseFactor = 1.4
)

// Scene Construction
const (
	// BodyBuildBudget is how many renderables a scene constructs per frame.
	// Spreading construction keeps the frame time flat on large tiers; the
	// readiness gate covers the pop-in window
	BodyBuildBudget = 8
)
