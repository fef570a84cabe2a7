package render

import (
	"time"

	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/scene"
)

// Context carries one frame's shared render state to every renderer
type Context struct {
	Width  int
	Height int

	Scene   *scene.Scene
	Camera  scene.Camera
	Proj    *Projector
	Opacity float64

	Sim    *engine.SimContext
	Paused bool

	// FrameTime is the previous frame's duration, for the status footer
	FrameTime time.Duration
}

// NewContext samples the active scene into a frame context
func NewContext(sc *scene.Scene, sim *engine.SimContext, width, height int, paused bool, frameTime time.Duration) *Context {
	cam := sc.Camera()
	return &Context{
		Width:     width,
		Height:    height,
		Scene:     sc,
		Camera:    cam,
		Proj:      NewProjector(cam, width, height),
		Opacity:   sc.Opacity(),
		Sim:       sim,
		Paused:    paused,
		FrameTime: frameTime,
	}
}
