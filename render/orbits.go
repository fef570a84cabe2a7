package render

import (
	"github.com/icariumtech/mothership-console/vmath"
)

// orbitSegments is the sample count per orbit ring; enough that gaps stay
// under a cell at typical camera distances
const orbitSegments = 160

var orbitPathColor = RGB{R: 70, G: 90, B: 120}

// OrbitPaths draws a faint ring under every orbiting body so spatial
// structure reads even when bodies are between sample points
type OrbitPaths struct{}

func NewOrbitPaths() *OrbitPaths {
	return &OrbitPaths{}
}

func (o *OrbitPaths) Render(ctx *Context, buf *Buffer) {
	if ctx.Opacity <= 0 {
		return
	}

	for _, b := range ctx.Scene.Snapshot() {
		if b.OrbitalRadius <= 0 {
			continue
		}
		alpha := ctx.Scene.DisplayOpacity(b.Name) * 0.35
		if alpha <= 0.01 {
			continue
		}

		for i := 0; i < orbitSegments; i++ {
			angle := float64(i) / orbitSegments * 360.0
			// Elapsed 0 with the segment angle as the initial angle walks
			// the full ring through the same inclination transform the
			// body itself uses
			p := vmath.OrbitalPosition(b.OrbitalRadius, 0, angle, b.Inclination, 0)
			x, y, depth, ok := ctx.Proj.Project(p)
			if !ok {
				continue
			}
			// Farther segments draw dimmer for a cheap depth cue
			fade := 1.0 / (1.0 + depth*0.002)
			buf.BlendBg(x, y, Scale(orbitPathColor, fade), alpha)
		}
	}
}
