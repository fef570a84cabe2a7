package scene

// Tier is one of the three nested visualization scopes
type Tier int

const (
	TierGalaxy Tier = iota
	TierSystem
	TierOrbit
)

func (t Tier) String() string {
	switch t {
	case TierGalaxy:
		return "galaxy"
	case TierSystem:
		return "system"
	case TierOrbit:
		return "orbit"
	}
	return "unknown"
}

// Child returns the tier one level deeper, or the same tier at the bottom
func (t Tier) Child() Tier {
	if t < TierOrbit {
		return t + 1
	}
	return t
}

// Parent returns the tier one level up, or the same tier at the top
func (t Tier) Parent() Tier {
	if t > TierGalaxy {
		return t - 1
	}
	return t
}

// ElementKind classifies a selectable element
type ElementKind int

const (
	ElementNone ElementKind = iota
	ElementBody
	ElementStation
	ElementMarker
)

func (k ElementKind) String() string {
	switch k {
	case ElementBody:
		return "body"
	case ElementStation:
		return "station"
	case ElementMarker:
		return "marker"
	}
	return ""
}

// Selection is the at-most-one selected element of a scene
type Selection struct {
	Kind ElementKind
	Name string
}

// None reports whether nothing is selected
func (s Selection) None() bool {
	return s.Kind == ElementNone
}

// TransitionState drives scene opacity and gates user input during a tier
// change. At most one tier pair is non-idle system-wide, enforced by the
// coordinator's lock rather than by this enum.
type TransitionState int

const (
	TransitionIdle TransitionState = iota
	TransitionOut
	TransitionIn
)
