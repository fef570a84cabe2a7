package scene

import (
	"sync"
	"time"

	"github.com/icariumtech/mothership-console/constants"
	"github.com/icariumtech/mothership-console/data"
	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
	"github.com/icariumtech/mothership-console/vmath"
)

// closedChan is returned by operations that complete immediately
var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Scene owns one tier's renderable objects and camera. The frame loop
// calls Update once per tick; the transition coordinator drives the async
// control surface from its own goroutine, so all state is guarded by mu.
// Channels returned by control operations close when the visual effect
// completes (or is superseded) and are always safe to wait on.
type Scene struct {
	mu sync.Mutex

	tier Tier
	doc  *data.TierDocument

	clock *engine.PausableClock
	queue *events.Queue

	central  *Body
	bodies   []*Body
	stations []*Body
	markers  []*Body
	byName   map[string]*Body

	// Renderables are constructed incrementally across frames; the gate
	// covers the pop-in window
	pending     []*Body
	centralName string

	gate      *ReadinessGate
	fade      *Fader
	choreo    *Choreographer
	selection Selection
}

// NewScene builds a scene for a tier document. Renderables are queued for
// incremental construction; the readiness gate releases once all of them
// exist (or on timeout).
func NewScene(tier Tier, doc *data.TierDocument, clock *engine.PausableClock, queue *events.Queue) *Scene {
	pose := Pose{
		Position: vmath.Vec3{X: doc.Camera.Position.X, Y: doc.Camera.Position.Y, Z: doc.Camera.Position.Z},
		LookAt:   vmath.Vec3{X: doc.Camera.LookAt.X, Y: doc.Camera.LookAt.Y, Z: doc.Camera.LookAt.Z},
		FOV:      doc.Camera.FOV,
	}
	if pose.FOV <= 0 {
		pose.FOV = 60
	}

	s := &Scene{
		tier:   tier,
		doc:    doc,
		clock:  clock,
		queue:  queue,
		byName: make(map[string]*Body),
		gate:   NewReadinessGate(tier.String(), doc.ExpectedCount()),
		fade:   NewFader(),
		choreo: NewChoreographer(pose),
	}
	s.queuePending()
	return s
}

// queuePending stages every renderable the document describes
func (s *Scene) queuePending() {
	if c := s.doc.Central; c != nil {
		s.centralName = c.Name
		s.pending = append(s.pending, &Body{
			Name:       c.Name,
			Kind:       ElementBody,
			VisualSize: c.VisualSize,
			TextureRef: c.Texture,
		})
	}
	for _, r := range s.doc.Bodies {
		s.pending = append(s.pending, &Body{
			Name:          r.Name,
			Kind:          ElementBody,
			OrbitalRadius: r.OrbitalRadius,
			OrbitalPeriod: r.OrbitalPeriod,
			InitialAngle:  r.InitialAngle,
			Inclination:   r.Inclination,
			VisualSize:    r.VisualSize,
			TextureRef:    r.Texture,
			HasRing:       r.HasRing,
			Description:   r.Description,
			ChildKey:      r.ChildKey,
		})
	}
	for _, r := range s.doc.Stations {
		s.pending = append(s.pending, &Body{
			Name:          r.Name,
			Kind:          ElementStation,
			OrbitalRadius: r.OrbitalRadius,
			OrbitalPeriod: r.OrbitalPeriod,
			InitialAngle:  r.InitialAngle,
			Inclination:   r.Inclination,
			VisualSize:    r.VisualSize,
			Description:   r.Description,
		})
	}
	centralSize := 1.0
	if s.doc.Central != nil {
		centralSize = s.doc.Central.VisualSize
	}
	for _, r := range s.doc.Markers {
		s.pending = append(s.pending, newSurfaceMarker(r.Name, r.Description, r.Latitude, r.Longitude, centralSize))
	}
}

// buildPending constructs up to the per-frame budget of staged renderables
func (s *Scene) buildPending() {
	budget := constants.BodyBuildBudget
	for budget > 0 && len(s.pending) > 0 {
		b := s.pending[0]
		s.pending = s.pending[1:]
		budget--

		switch {
		case s.central == nil && b.Name == s.centralName && s.centralName != "":
			s.central = b
		case b.Kind == ElementStation:
			s.stations = append(s.stations, b)
		case b.Kind == ElementMarker:
			s.markers = append(s.markers, b)
		default:
			s.bodies = append(s.bodies, b)
		}
		s.byName[b.Name] = b
		s.fade.RegisterBase(b.Name, 1.0)
	}
}

// constructedCount is what the readiness gate compares against the
// document's expected count
func (s *Scene) constructedCount() int {
	return len(s.byName)
}

// Update runs one frame: incremental construction, orbital motion, gate
// poll, fade, and camera animation. dt is wall-clock seconds.
func (s *Scene) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buildPending()

	elapsed := s.clock.Seconds()
	for _, b := range s.byName {
		b.advance(elapsed)
	}

	if !s.gate.Released() && s.gate.Poll(s.constructedCount()) {
		s.queue.Push(events.Event{
			Type: events.EventSceneReady,
			Time: time.Now(),
			Payload: &events.SceneReadyPayload{
				Tier:     s.tier.String(),
				TimedOut: s.gate.TimedOut(),
				Polls:    s.gate.Polls(),
			},
		})
	}

	s.fade.Update(dt)

	// A data reload can remove the selected element; clear the ghost as
	// if the user deselected it
	if !s.selection.None() {
		if _, ok := s.byName[s.selection.Name]; !ok {
			s.selection = Selection{}
			s.pushSelectionChanged()
		}
	}

	if s.choreo.Update(dt) {
		s.queue.Push(events.Event{
			Type:    events.EventEaseComplete,
			Time:    time.Now(),
			Payload: &events.EasePayload{Tier: s.tier.String()},
		})
	}
}

// sampleFor builds the per-frame target sampler for a named element.
// The sampler reports OK=false once the element disappears.
func (s *Scene) sampleFor(name string) TargetFunc {
	return func() TargetSample {
		b, ok := s.byName[name]
		if !ok {
			return TargetSample{}
		}
		return TargetSample{
			Position: b.Position,
			Angle:    b.Angle,
			Size:     b.VisualSize,
			OK:       true,
		}
	}
}

func (s *Scene) pushSelectionChanged() {
	s.queue.Push(events.Event{
		Type: events.EventSelectionChanged,
		Time: time.Now(),
		Payload: &events.SelectionChangedPayload{
			Tier: s.tier.String(),
			Kind: s.selection.Kind.String(),
			Name: s.selection.Name,
		},
	})
}

// Select toggles the selection to the named element and eases the camera
// toward it. Selecting the already-selected element clears it; selecting a
// name absent from the tier's data behaves as deselection and never fails.
// The returned channel closes when the camera ease completes.
func (s *Scene) Select(name string, kind ElementKind) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection.Name == name {
		return s.deselectLocked()
	}

	if _, ok := s.byName[name]; !ok {
		// Stale selection target: treat as deselection, no error
		if s.selection.None() {
			return closedChan
		}
		return s.deselectLocked()
	}

	s.selection = Selection{Kind: kind, Name: name}
	s.pushSelectionChanged()
	s.noteSupersession()
	return s.choreo.MoveToElement(s.sampleFor(name), constants.MoveEaseDuration.Seconds())
}

// Deselect clears the selection and eases the camera back to the default
// pose. No-op when nothing is selected.
func (s *Scene) Deselect() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.None() {
		return closedChan
	}
	return s.deselectLocked()
}

func (s *Scene) deselectLocked() <-chan struct{} {
	s.selection = Selection{}
	s.pushSelectionChanged()
	s.noteSupersession()
	return s.choreo.ReturnToDefault(constants.ReturnEaseDuration.Seconds())
}

// noteSupersession reports the in-flight tween that is about to be
// superseded, so listeners (audio, sidecar) see its ease end
func (s *Scene) noteSupersession() {
	if !s.choreo.Busy() {
		return
	}
	s.queue.Push(events.Event{
		Type: events.EventEaseComplete,
		Time: time.Now(),
		Payload: &events.EasePayload{
			Tier:       s.tier.String(),
			Superseded: true,
		},
	})
}

// Selection returns the current selection
func (s *Scene) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// SelectedBody returns the selected element, nil when none
func (s *Scene) SelectedBody() *Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.None() {
		return nil
	}
	return s.byName[s.selection.Name]
}

// ===== CONTROL SURFACE (transition coordinator) =====

// SelectAndWait selects the element unless it is already active; the
// returned channel closes when the selection ease (if any) completes
func (s *Scene) SelectAndWait(name string, kind ElementKind) <-chan struct{} {
	s.mu.Lock()
	already := s.selection.Name == name
	s.mu.Unlock()
	if already {
		return closedChan
	}
	return s.Select(name, kind)
}

// DiveToElement frames the named element and dollies in close on it, the
// outbound camera motion of a dive. Elements that are not the active
// selection are selected first; the returned channel closes when the
// dolly completes
func (s *Scene) DiveToElement(name string) <-chan struct{} {
	s.mu.Lock()
	_, known := s.byName[name]
	already := s.selection.Name == name
	s.mu.Unlock()

	if !known || already {
		return s.ZoomIn()
	}

	done := make(chan struct{})
	sel := s.Select(name, ElementBody)
	go func() {
		defer close(done)
		<-sel
		<-s.ZoomIn()
	}()
	return done
}

// ZoomIn dollies from the current distance to very close on the selected
// element (or the central body), the outbound half of a dive hand-off
func (s *Scene) ZoomIn() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := 1.0
	if b, ok := s.byName[s.selection.Name]; ok {
		size = b.VisualSize
	} else if s.central != nil {
		size = s.central.VisualSize
	}
	s.noteSupersession()
	return s.choreo.ZoomTo(size*constants.ZoomCloseFactor, constants.ZoomDuration.Seconds())
}

// ZoomOut dollies back to the tier's default camera distance, the inbound
// half of a dive hand-off
func (s *Scene) ZoomOut() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteSupersession()
	return s.choreo.ZoomTo(s.choreo.DefaultDistance(), constants.ZoomDuration.Seconds())
}

// PositionInstantly snaps the camera to the named element's framing with
// tracking locked, no animation; unknown names snap to the default pose
func (s *Scene) PositionInstantly(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[name]; !ok {
		s.choreo.SnapToDefault()
		return
	}
	s.choreo.SnapToTarget(s.sampleFor(name))
}

// PositionAtCentral seeds the close-up pose on the central body before the
// destination tier's ZoomOut, losslessly receiving the source's framing
func (s *Scene) PositionAtCentral() {
	s.mu.Lock()
	defer s.mu.Unlock()

	focus := vmath.Vec3{}
	size := 1.0
	if s.central != nil {
		focus = s.central.Position
		size = s.central.VisualSize
	}
	s.choreo.PlaceAt(focus, size*constants.ZoomCloseFactor)
}

// ReturnToDefault eases back to the authored pose without touching the
// selection, used when a rise re-activates a parent tier
func (s *Scene) ReturnToDefault() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteSupersession()
	return s.choreo.ReturnToDefault(constants.ReturnEaseDuration.Seconds())
}

// Ready is closed when the readiness gate releases
func (s *Scene) Ready() <-chan struct{} {
	return s.gate.Done()
}

// BeginFadeOut starts the scene's fade to transparent
func (s *Scene) BeginFadeOut(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fade.BeginFadeOut(d.Seconds())
}

// BeginFadeIn starts the scene's fade to opaque
func (s *Scene) BeginFadeIn(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fade.BeginFadeIn(d.Seconds())
}

// ===== READ SURFACE (renderers) =====

// Tier returns the scene's tier
func (s *Scene) Tier() Tier {
	return s.tier
}

// Title returns the tier document's display title
func (s *Scene) Title() string {
	return s.doc.Title
}

// Opacity returns the scene-wide opacity scalar
func (s *Scene) Opacity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fade.Opacity()
}

// DisplayOpacity returns an object's rendered opacity: authored base
// scaled by scene opacity
func (s *Scene) DisplayOpacity(name string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fade.Display(name)
}

// TransitionState reports the in-flight fade direction
func (s *Scene) TransitionState() TransitionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fade.State()
}

// Camera returns the current camera state
func (s *Scene) Camera() Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.choreo.Camera()
}

// OrbitCamera rotates the tracking offset for manual free look
func (s *Scene) OrbitCamera(dYaw float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choreo.OrbitBy(dYaw)
}

// Central returns the central body, nil on the galaxy tier
func (s *Scene) Central() *Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.central
}

// Snapshot copies the constructed renderables for the render pass
func (s *Scene) Snapshot() []*Body {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Body, 0, len(s.byName))
	if s.central != nil {
		out = append(out, s.central)
	}
	out = append(out, s.bodies...)
	out = append(out, s.stations...)
	out = append(out, s.markers...)
	return out
}

// Lookup resolves an element name, nil when absent
func (s *Scene) Lookup(name string) *Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byName[name]
}

// Bodies returns the orbiting bodies (excluding central, stations, markers)
func (s *Scene) Bodies() []*Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Body(nil), s.bodies...)
}
