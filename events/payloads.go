package events

// SelectionChangedPayload carries the new selection state.
// Kind is "" and Name is "" when the selection was cleared.
type SelectionChangedPayload struct {
	Tier string
	Kind string // "body", "station", "marker", or "" for none
	Name string
}

// SceneReadyPayload identifies the tier whose gate released
type SceneReadyPayload struct {
	Tier     string
	TimedOut bool
	Polls    int
}

// EasePayload identifies the tier whose camera tween completed
type EasePayload struct {
	Tier       string
	Superseded bool
}

// TransitionPayload describes a tier change sequence
type TransitionPayload struct {
	From   string
	To     string
	Target string
}

// DataPayload describes a tier document fetch result
type DataPayload struct {
	Tier string
	Key  string
	Err  string // empty on success
}
