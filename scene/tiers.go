package scene

import (
	"time"

	"github.com/icariumtech/mothership-console/data"
	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
)

// Controller is the asynchronous control surface a tier scene hands to the
// transition coordinator. Returned channels close when the visual effect
// completes; the coordinator sequences phases against the capability set
// alone and never against a concrete tier type
type Controller interface {
	SelectAndWait(name string, kind ElementKind) <-chan struct{}
	DiveToElement(name string) <-chan struct{}
	ZoomIn() <-chan struct{}
	ZoomOut() <-chan struct{}
	PositionInstantly(name string)
	PositionAtCentral()
	ReturnToDefault() <-chan struct{}
	Ready() <-chan struct{}
	BeginFadeOut(d time.Duration)
	BeginFadeIn(d time.Duration)
}

var _ Controller = (*Scene)(nil)

// The three tier scenes share the Scene machinery and differ in what their
// elements dive into: galaxy stars open system maps, system bodies open
// orbit maps, orbit-tier elements are leaves.

// GalaxyScene is the top tier: the campaign's star systems, authored as
// stationary placements on the galactic plane
type GalaxyScene struct {
	*Scene
}

func NewGalaxyScene(doc *data.TierDocument, clock *engine.PausableClock, queue *events.Queue) *GalaxyScene {
	return &GalaxyScene{Scene: NewScene(TierGalaxy, doc, clock, queue)}
}

// ChildKeyFor returns the system-map key behind a star, "" when the star
// has no authored system
func (g *GalaxyScene) ChildKeyFor(name string) string {
	b := g.Lookup(name)
	if b == nil {
		return ""
	}
	return b.ChildKey
}

// SystemScene is the middle tier: a star with planets and stations in orbit
type SystemScene struct {
	*Scene
}

func NewSystemScene(doc *data.TierDocument, clock *engine.PausableClock, queue *events.Queue) *SystemScene {
	return &SystemScene{Scene: NewScene(TierSystem, doc, clock, queue)}
}

// ChildKeyFor returns the orbit-map key behind a planet, "" for bodies
// without an authored orbit view
func (s *SystemScene) ChildKeyFor(name string) string {
	b := s.Lookup(name)
	if b == nil {
		return ""
	}
	return b.ChildKey
}

// OrbitScene is the bottom tier: one body up close, with moons, stations,
// and fixed surface markers
type OrbitScene struct {
	*Scene
}

func NewOrbitScene(doc *data.TierDocument, clock *engine.PausableClock, queue *events.Queue) *OrbitScene {
	return &OrbitScene{Scene: NewScene(TierOrbit, doc, clock, queue)}
}
