package scene

import (
	"math"

	"github.com/icariumtech/mothership-console/vmath"
)

// Body is one renderable element of a scene: a star, planet, moon, station,
// or surface marker. Immutable per tier load except for Position and Angle,
// which the owning scene refreshes every tick from the pausable clock.
type Body struct {
	Name string
	Kind ElementKind

	OrbitalRadius float64
	OrbitalPeriod float64 // <= 0: stationary (authored placement)
	InitialAngle  float64 // degrees
	Inclination   float64 // degrees
	VisualSize    float64

	TextureRef  string
	HasRing     bool
	Description string
	ChildKey    string // tier key this element dives into, "" when none

	// Fixed anchor for surface markers; zero for orbiting bodies
	anchor vmath.Vec3
	fixed  bool

	Position vmath.Vec3
	Angle    float64 // radians, current orbital angle
}

// advance refreshes Position and Angle for the given elapsed simulation time
func (b *Body) advance(elapsed float64) {
	if b.fixed {
		b.Position = b.anchor
		return
	}
	b.Position = vmath.OrbitalPosition(b.OrbitalRadius, b.OrbitalPeriod, b.InitialAngle, b.Inclination, elapsed)
	b.Angle = vmath.OrbitalAngle(b.OrbitalPeriod, b.InitialAngle, elapsed)
}

// newSurfaceMarker places a marker on the central body's sphere at the
// given latitude/longitude (degrees), slightly above the surface so the
// glyph never z-fights the disc
func newSurfaceMarker(name, description string, latDeg, lonDeg, centralSize float64) *Body {
	lat := latDeg * vmath.DegToRad
	lon := lonDeg * vmath.DegToRad
	r := centralSize * 1.05

	anchor := vmath.Vec3{
		X: r * math.Cos(lat) * math.Cos(lon),
		Y: r * math.Sin(lat),
		Z: r * math.Cos(lat) * math.Sin(lon),
	}

	return &Body{
		Name:        name,
		Kind:        ElementMarker,
		VisualSize:  centralSize * 0.08,
		Description: description,
		anchor:      anchor,
		fixed:       true,
		Position:    anchor,
	}
}
