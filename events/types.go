package events

import (
	"time"
)

// EventType represents the type of console event
type EventType int

const (
	// EventSelectionChanged signals the active selection toggled or moved
	// Trigger: Scene.Select / Scene.Deselect
	// Consumer: info panel renderer, audio cues, view broadcast | Payload: *SelectionChangedPayload
	EventSelectionChanged EventType = iota

	// EventSceneReady signals a tier's readiness gate released
	// Trigger: ReadinessGate.Poll meeting expected count (or timing out)
	// Consumer: transition coordinator | Payload: *SceneReadyPayload
	EventSceneReady

	// EventEaseComplete signals a camera tween finished or was superseded
	// Trigger: Choreographer.Update on tween completion
	// Consumer: transition coordinator (select-and-wait phase) | Payload: *EasePayload
	EventEaseComplete

	// EventTransitionStarted signals a tier change sequence began
	// Trigger: Coordinator after lock + debounce acceptance
	// Consumer: audio cues, view broadcast | Payload: *TransitionPayload
	EventTransitionStarted

	// EventTransitionFinished signals a tier change sequence completed
	// Trigger: Coordinator at unlock
	// Consumer: audio cues, view broadcast | Payload: *TransitionPayload
	EventTransitionFinished

	// EventDataLoaded signals a tier document prefetch succeeded
	// Trigger: CachingFetcher | Payload: *DataPayload
	EventDataLoaded

	// EventDataFailed signals a tier document prefetch failed; the
	// transition proceeds with a degraded destination scene
	// Trigger: CachingFetcher | Payload: *DataPayload
	EventDataFailed
)

// Event is a timestamped console event with an optional payload
type Event struct {
	Type    EventType
	Time    time.Time
	Payload any
}
