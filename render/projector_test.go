package render

import (
	"math"
	"testing"

	"github.com/icariumtech/mothership-console/scene"
	"github.com/icariumtech/mothership-console/vmath"
)

func testCam() scene.Camera {
	return scene.Camera{
		Position: vmath.Vec3{Z: 100},
		LookAt:   vmath.Vec3{},
		FOV:      60,
	}
}

func TestProjectLookAtHitsCenter(t *testing.T) {
	p := NewProjector(testCam(), 120, 40)

	x, y, depth, ok := p.Project(vmath.Vec3{})
	if !ok {
		t.Fatalf("look-at point rejected")
	}
	if x != 60 || y != 20 {
		t.Errorf("center projected to %d,%d, want 60,20", x, y)
	}
	if math.Abs(depth-100) > 1e-9 {
		t.Errorf("depth = %v, want 100", depth)
	}
}

func TestProjectBehindCameraRejected(t *testing.T) {
	p := NewProjector(testCam(), 120, 40)

	if _, _, _, ok := p.Project(vmath.Vec3{Z: 200}); ok {
		t.Errorf("point behind the camera was projected")
	}
}

// Cell aspect: a world offset projects twice as many cells horizontally as
// vertically
func TestProjectCellAspect(t *testing.T) {
	p := NewProjector(testCam(), 200, 100)

	rx, _, _, ok := p.ProjectF(vmath.Vec3{X: 10})
	if !ok {
		t.Fatalf("offset point rejected")
	}
	_, uy, _, ok := p.ProjectF(vmath.Vec3{Y: 10})
	if !ok {
		t.Fatalf("offset point rejected")
	}

	dx := rx - 100
	dy := 100.0/2 - uy
	if math.Abs(dx/dy-cellAspect) > 1e-6 {
		t.Errorf("aspect = %v, want %v", dx/dy, cellAspect)
	}
}

// World +X appears to the right, world +Y appears up
func TestProjectOrientation(t *testing.T) {
	p := NewProjector(testCam(), 120, 40)

	x, _, _, _ := p.Project(vmath.Vec3{X: 20})
	if x <= 60 {
		t.Errorf("+X projected left of center: %d", x)
	}
	_, y, _, _ := p.Project(vmath.Vec3{Y: 20})
	if y >= 20 {
		t.Errorf("+Y projected below center: %d", y)
	}
}

func TestApparentRadiusShrinksWithDepth(t *testing.T) {
	p := NewProjector(testCam(), 120, 40)

	near := p.ApparentRadius(5, 50)
	far := p.ApparentRadius(5, 200)
	if near <= far {
		t.Errorf("near %v should exceed far %v", near, far)
	}
	if p.ApparentRadius(5, 0.01) != 0 {
		t.Errorf("radius at the near plane must be 0")
	}
}

// A camera looking straight down must not produce a degenerate basis
func TestProjectPolarCamera(t *testing.T) {
	cam := scene.Camera{
		Position: vmath.Vec3{Y: 100},
		LookAt:   vmath.Vec3{},
		FOV:      60,
	}
	p := NewProjector(cam, 120, 40)

	x, y, _, ok := p.Project(vmath.Vec3{})
	if !ok {
		t.Fatalf("look-at rejected from polar camera")
	}
	if x != 60 || y != 20 {
		t.Errorf("polar center = %d,%d", x, y)
	}
}
