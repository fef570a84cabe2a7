package scene

import (
	"github.com/icariumtech/mothership-console/vmath"
)

type fadeDir int

const (
	fadeNone fadeDir = iota
	fadeIn
	fadeOut
)

// Fader applies one scene-wide opacity scalar to every transparent
// renderable and light without touching authored base values: each object's
// base is cached once at registration, and the displayed value is always
// base × opacity, so repeated fades never compound or drift.
type Fader struct {
	opacity float64
	dir     fadeDir

	start    float64 // opacity when the current fade began
	elapsed  float64
	duration float64

	bases map[string]float64
}

// NewFader creates a fader starting fully transparent; a scene becomes
// visible through its first fade-in
func NewFader() *Fader {
	return &Fader{bases: make(map[string]float64)}
}

// RegisterBase caches an object's authored base opacity (or light
// intensity) once. Re-registration is ignored: the first value is the
// authored one.
func (f *Fader) RegisterBase(name string, base float64) {
	if _, ok := f.bases[name]; ok {
		return
	}
	f.bases[name] = base
}

// Base returns the cached authored value, 1 when never registered
func (f *Fader) Base(name string) float64 {
	if base, ok := f.bases[name]; ok {
		return base
	}
	return 1
}

// Display returns base × sceneOpacity, the value actually rendered
func (f *Fader) Display(name string) float64 {
	return f.Base(name) * f.opacity
}

// Opacity returns the scene opacity scalar in [0,1]
func (f *Fader) Opacity() float64 {
	return f.opacity
}

// State maps the in-flight fade direction to a TransitionState
func (f *Fader) State() TransitionState {
	switch f.dir {
	case fadeIn:
		return TransitionIn
	case fadeOut:
		return TransitionOut
	}
	return TransitionIdle
}

// BeginFadeIn starts easing opacity toward 1 over the given seconds
func (f *Fader) BeginFadeIn(seconds float64) {
	f.dir = fadeIn
	f.start = f.opacity
	f.elapsed = 0
	f.duration = seconds
}

// BeginFadeOut starts easing opacity toward 0 over the given seconds
func (f *Fader) BeginFadeOut(seconds float64) {
	f.dir = fadeOut
	f.start = f.opacity
	f.elapsed = 0
	f.duration = seconds
}

// Update advances the fade by dt seconds. Opacity moves monotonically
// toward the endpoint and lands exactly on 0 or 1.
func (f *Fader) Update(dt float64) {
	if f.dir == fadeNone {
		return
	}
	f.elapsed += dt

	t := 1.0
	if f.duration > 0 && f.elapsed < f.duration {
		t = f.elapsed / f.duration
	}
	e := vmath.SmoothStep(t)

	switch f.dir {
	case fadeIn:
		f.opacity = f.start + (1-f.start)*e
	case fadeOut:
		f.opacity = f.start * (1 - e)
	}

	if t >= 1 {
		if f.dir == fadeIn {
			f.opacity = 1
		} else {
			f.opacity = 0
		}
		f.dir = fadeNone
	}
}
