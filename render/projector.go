package render

import (
	"math"

	"github.com/icariumtech/mothership-console/scene"
	"github.com/icariumtech/mothership-console/vmath"
)

// cellAspect corrects for terminal cells being roughly twice as tall as
// they are wide
const cellAspect = 2.0

// nearPlane rejects points at or behind the camera
const nearPlane = 0.1

// Projector maps world space to terminal cells through a look-at camera
// basis with perspective division
type Projector struct {
	pos     vmath.Vec3
	right   vmath.Vec3
	up      vmath.Vec3
	forward vmath.Vec3

	cx, cy float64
	focal  float64
}

// NewProjector builds the projection for one frame's camera and viewport
func NewProjector(cam scene.Camera, width, height int) *Projector {
	forward := vmath.V3Normalize(vmath.V3Sub(cam.LookAt, cam.Position))
	if forward == (vmath.Vec3{}) {
		forward = vmath.Vec3{Z: -1}
	}
	worldUp := vmath.Vec3{Y: 1}
	right := vmath.V3Cross(forward, worldUp)
	if vmath.V3MagSq(right) < 1e-12 {
		// Looking straight up or down
		right = vmath.Vec3{X: 1}
	}
	right = vmath.V3Normalize(right)
	up := vmath.V3Cross(right, forward)

	fov := cam.FOV
	if fov <= 0 {
		fov = 60
	}
	focal := float64(height) / (2 * math.Tan(fov*vmath.DegToRad/2))

	return &Projector{
		pos:     cam.Position,
		right:   right,
		up:      up,
		forward: forward,
		cx:      float64(width) / 2,
		cy:      float64(height) / 2,
		focal:   focal,
	}
}

// ProjectF maps a world point to fractional cell coordinates. ok is false
// behind the near plane.
func (p *Projector) ProjectF(w vmath.Vec3) (sx, sy, depth float64, ok bool) {
	d := vmath.V3Sub(w, p.pos)
	z := vmath.V3Dot(d, p.forward)
	if z < nearPlane {
		return 0, 0, 0, false
	}
	x := vmath.V3Dot(d, p.right)
	y := vmath.V3Dot(d, p.up)

	sx = p.cx + (x/z)*p.focal*cellAspect
	sy = p.cy - (y/z)*p.focal
	return sx, sy, z, true
}

// Project maps a world point to integer cell coordinates
func (p *Projector) Project(w vmath.Vec3) (x, y int, depth float64, ok bool) {
	fx, fy, d, ok := p.ProjectF(w)
	if !ok {
		return 0, 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), d, true
}

// ApparentRadius converts a world-space radius at the given depth to a
// vertical cell radius
func (p *Projector) ApparentRadius(worldRadius, depth float64) float64 {
	if depth < nearPlane {
		return 0
	}
	return worldRadius / depth * p.focal
}
