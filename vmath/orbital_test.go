package vmath

import (
	"math"
	"testing"
)

const posEpsilon = 1e-9

func v3Close(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// Identical elapsed values must yield identical positions
func TestOrbitalPositionDeterminism(t *testing.T) {
	cases := []struct {
		radius, period, angle, incl, elapsed float64
	}{
		{50, 10, 0, 0, 2.5},
		{120, 86400, 45, 12.5, 1234.567},
		{1, 0.001, 359, 89, 0.0005},
		{3000, 600, 180, -30, 99999.25},
	}

	for _, c := range cases {
		p1 := OrbitalPosition(c.radius, c.period, c.angle, c.incl, c.elapsed)
		p2 := OrbitalPosition(c.radius, c.period, c.angle, c.incl, c.elapsed)
		if p1 != p2 {
			t.Errorf("position not deterministic for %+v: %v vs %v", c, p1, p2)
		}
	}
}

// Position at t and t+period must match for any inclination
func TestOrbitalPositionPeriodicity(t *testing.T) {
	for _, incl := range []float64{0, 15, 45, 90} {
		p1 := OrbitalPosition(75, 12, 30, incl, 3.25)
		p2 := OrbitalPosition(75, 12, 30, incl, 3.25+12)
		if !v3Close(p1, p2, 1e-6) {
			t.Errorf("incl=%v: position at t and t+period differ: %v vs %v", incl, p1, p2)
		}
	}
}

// radius=50, period=10s, angle=0, incl=0, t=2.5s: quarter orbit, angle=90°
func TestOrbitalPositionQuarterOrbit(t *testing.T) {
	angle := OrbitalAngle(10, 0, 2.5)
	if math.Abs(angle-math.Pi/2) > posEpsilon {
		t.Errorf("expected angle π/2, got %v", angle)
	}

	pos := OrbitalPosition(50, 10, 0, 0, 2.5)
	want := Vec3{X: 0, Y: 0, Z: 50}
	if !v3Close(pos, want, 1e-9) {
		t.Errorf("expected position %v, got %v", want, pos)
	}
}

// Zero or negative period marks a stationary body, never a division by zero
func TestOrbitalPositionStationary(t *testing.T) {
	for _, period := range []float64{0, -5} {
		p1 := OrbitalPosition(50, period, 90, 0, 0)
		p2 := OrbitalPosition(50, period, 90, 0, 1e6)
		if !v3Close(p1, p2, posEpsilon) {
			t.Errorf("period=%v: stationary body moved: %v vs %v", period, p1, p2)
		}
		want := Vec3{X: 50 * math.Cos(math.Pi/2), Y: 0, Z: 50 * math.Sin(math.Pi/2)}
		if !v3Close(p1, want, 1e-9) {
			t.Errorf("period=%v: expected %v, got %v", period, want, p1)
		}
	}
}

// Inclination tilts the plane but never changes orbital distance
func TestOrbitalPositionInclinationPreservesRadius(t *testing.T) {
	for _, incl := range []float64{0, 10, 45, 90, 135} {
		pos := OrbitalPosition(80, 20, 33, incl, 7.7)
		if r := V3Mag(pos); math.Abs(r-80) > 1e-9 {
			t.Errorf("incl=%v: radius drifted to %v", incl, r)
		}
	}
}

func TestEaseEndpoints(t *testing.T) {
	eases := map[string]func(float64) float64{
		"EaseInOutCubic": EaseInOutCubic,
		"EaseOutCubic":   EaseOutCubic,
		"SmoothStep":     SmoothStep,
	}
	for name, fn := range eases {
		if got := fn(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		// Out-of-range inputs clamp
		if got := fn(-3); got != 0 {
			t.Errorf("%s(-3) = %v, want 0", name, got)
		}
		if got := fn(4); got != 1 {
			t.Errorf("%s(4) = %v, want 1", name, got)
		}
	}
}

func TestSmoothStepMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := SmoothStep(float64(i) / 100)
		if v < prev {
			t.Fatalf("SmoothStep not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestV3RotateY(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 0}
	got := V3RotateY(v, math.Pi/2)
	want := Vec3{X: 0, Y: 2, Z: -1}
	if !v3Close(got, want, 1e-9) {
		t.Errorf("rotate 90° about Y: got %v, want %v", got, want)
	}
	// Rotation preserves magnitude
	if math.Abs(V3Mag(got)-V3Mag(v)) > 1e-9 {
		t.Errorf("rotation changed magnitude")
	}
}
