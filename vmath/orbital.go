package vmath

import (
	"math"
)

const DegToRad = math.Pi / 180.0

// OrbitalAngle returns the current orbital angle in radians for a body on a
// circular orbit. Angular velocity is 2π/period; a non-positive period marks
// a stationary body (authored placement, or guarded division by zero) and
// returns the initial angle unchanged.
//
// Pure function of elapsed: pausing motion means freezing elapsed, not this
// calculation, so resume-after-pause is correct by construction.
func OrbitalAngle(period, initialAngleDeg, elapsed float64) float64 {
	initial := initialAngleDeg * DegToRad
	if period <= 0 {
		return initial
	}
	return initial + (2*math.Pi/period)*elapsed
}

// OrbitalPosition returns the 3D position of a body on a circular orbit of
// the given radius and period, inclinationDeg tilting the orbital plane
// about the X axis. Stateless and idempotent: identical elapsed values
// yield identical positions.
func OrbitalPosition(radius, period, initialAngleDeg, inclinationDeg, elapsed float64) Vec3 {
	angle := OrbitalAngle(period, initialAngleDeg, elapsed)
	planar := Vec3{
		X: radius * math.Cos(angle),
		Z: radius * math.Sin(angle),
	}
	if inclinationDeg == 0 {
		return planar
	}
	return V3RotateX(planar, inclinationDeg*DegToRad)
}
