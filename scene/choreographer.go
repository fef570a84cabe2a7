package scene

import (
	"github.com/icariumtech/mothership-console/constants"
	"github.com/icariumtech/mothership-console/vmath"
)

// Camera is a scene's eye: position, look-at, field of view (degrees)
type Camera struct {
	Position vmath.Vec3
	LookAt   vmath.Vec3
	FOV      float64
}

// Pose is an authored camera resting state
type Pose struct {
	Position vmath.Vec3
	LookAt   vmath.Vec3
	FOV      float64
}

// TargetSample is one frame's view of a tracked element. OK is false when
// the element no longer exists (stale selection after a data reload).
type TargetSample struct {
	Position vmath.Vec3
	Angle    float64 // current orbital angle, radians
	Size     float64
	OK       bool
}

// TargetFunc re-samples a possibly moving target. Called once per frame
// during an ease and once per frame while tracking, never cached across
// frames: fast-orbiting targets would be missed otherwise.
type TargetFunc func() TargetSample

type tweenKind int

const (
	tweenNone tweenKind = iota
	tweenMove
	tweenReturn
	tweenZoom
)

// Choreographer owns one scene's camera animation primitives: ease toward
// a moving element, return to the default pose, distance-only dollies at
// tier boundaries, and continuous per-frame tracking of an orbiting target.
//
// Not internally locked; the owning Scene serializes access under its own
// mutex. At most one tween is in flight: starting a new one supersedes the
// old (last-call-wins), closing the superseded tween's done channel so no
// waiter ever hangs.
type Choreographer struct {
	cam         Camera
	defaultPose Pose

	kind     tweenKind
	elapsed  float64
	duration float64
	fromPos  vmath.Vec3
	fromLook vmath.Vec3
	target   TargetFunc
	zoomFrom float64
	zoomTo   float64
	done     chan struct{}

	tracking  bool
	offset    vmath.Vec3
	lastAngle float64
}

// NewChoreographer creates a choreographer resting at the given pose
func NewChoreographer(pose Pose) *Choreographer {
	return &Choreographer{
		cam: Camera{
			Position: pose.Position,
			LookAt:   pose.LookAt,
			FOV:      pose.FOV,
		},
		defaultPose: pose,
	}
}

// Camera returns the current camera state
func (c *Choreographer) Camera() Camera {
	return c.cam
}

// Tracking reports whether a camera offset is locked to a target
func (c *Choreographer) Tracking() bool {
	return c.tracking
}

// Busy reports whether a tween is in flight
func (c *Choreographer) Busy() bool {
	return c.kind != tweenNone
}

// framePos places the camera relative to a target, scaled by its size
func framePos(s TargetSample) vmath.Vec3 {
	return vmath.V3Add(s.Position, vmath.Vec3{
		Y: s.Size * constants.FrameHeightFactor,
		Z: s.Size * constants.FrameDistanceFactor,
	})
}

// cancel supersedes any in-flight tween, releasing its waiter
func (c *Choreographer) cancel() (superseded bool) {
	if c.kind == tweenNone {
		return false
	}
	close(c.done)
	c.kind = tweenNone
	c.done = nil
	c.target = nil
	return true
}

func (c *Choreographer) begin(kind tweenKind, duration float64) <-chan struct{} {
	c.cancel()
	c.kind = kind
	c.elapsed = 0
	c.duration = duration
	c.fromPos = c.cam.Position
	c.fromLook = c.cam.LookAt
	c.done = make(chan struct{})
	return c.done
}

// MoveToElement eases the camera toward a framing of the (moving) target,
// then locks a tracking offset so the camera follows the target after the
// ease ends. Supersedes any in-flight tween.
func (c *Choreographer) MoveToElement(target TargetFunc, duration float64) <-chan struct{} {
	done := c.begin(tweenMove, duration)
	c.target = target
	c.tracking = false
	return done
}

// ReturnToDefault eases the camera back to the scene's authored pose,
// clearing any tracking offset. Supersedes any in-flight tween.
func (c *Choreographer) ReturnToDefault(duration float64) <-chan struct{} {
	done := c.begin(tweenReturn, duration)
	c.tracking = false
	c.offset = vmath.Vec3{}
	return done
}

// ZoomTo runs a distance-only dolly along the current view axis, used at
// tier boundaries. While a target is tracked the look-at follows it and
// the dolly closes along the live camera-to-target axis; otherwise the
// look-at is untouched.
func (c *Choreographer) ZoomTo(distance float64, duration float64) <-chan struct{} {
	done := c.begin(tweenZoom, duration)
	c.zoomFrom = vmath.V3Dist(c.cam.Position, c.cam.LookAt)
	c.zoomTo = distance
	return done
}

// SnapToTarget positions the camera at the target's framing instantly and
// locks tracking, used when jumping tiers without a visual dive
func (c *Choreographer) SnapToTarget(target TargetFunc) {
	c.cancel()
	s := target()
	if !s.OK {
		c.SnapToDefault()
		return
	}
	c.cam.Position = framePos(s)
	c.cam.LookAt = s.Position
	c.target = target
	c.offset = vmath.V3Sub(c.cam.Position, s.Position)
	c.lastAngle = s.Angle
	c.tracking = true
}

// SnapToDefault positions the camera at the authored pose instantly
func (c *Choreographer) SnapToDefault() {
	c.cancel()
	c.tracking = false
	c.offset = vmath.Vec3{}
	c.cam.Position = c.defaultPose.Position
	c.cam.LookAt = c.defaultPose.LookAt
	c.cam.FOV = c.defaultPose.FOV
}

// PlaceAt positions the camera at distance from focus along +Z, looking at
// focus. Used to seed the close-up pose before a tier hand-off dolly.
func (c *Choreographer) PlaceAt(focus vmath.Vec3, distance float64) {
	c.cancel()
	c.tracking = false
	c.cam.LookAt = focus
	c.cam.Position = vmath.V3Add(focus, vmath.Vec3{Y: distance * 0.35, Z: distance})
}

// OrbitBy rotates the locked tracking offset by dYaw radians, composing
// manual free look with automatic tracking
func (c *Choreographer) OrbitBy(dYaw float64) {
	if !c.tracking {
		return
	}
	c.offset = vmath.V3RotateY(c.offset, dYaw)
}

// DefaultDistance is the camera distance of the authored pose
func (c *Choreographer) DefaultDistance() float64 {
	return vmath.V3Dist(c.defaultPose.Position, c.defaultPose.LookAt)
}

// Update advances the in-flight tween and the tracking lock by dt seconds.
// Returns true when a tween completed this frame.
func (c *Choreographer) Update(dt float64) bool {
	switch c.kind {
	case tweenNone:
		c.updateTracking()
		return false
	case tweenMove:
		return c.updateMove(dt)
	case tweenReturn:
		return c.updateReturn(dt)
	case tweenZoom:
		return c.updateZoom(dt)
	}
	return false
}

func (c *Choreographer) progress(dt float64) (t float64, finished bool) {
	c.elapsed += dt
	if c.duration <= 0 || c.elapsed >= c.duration {
		return 1, true
	}
	return c.elapsed / c.duration, false
}

func (c *Choreographer) finish() {
	close(c.done)
	c.kind = tweenNone
	c.done = nil
}

func (c *Choreographer) updateMove(dt float64) bool {
	t, finished := c.progress(dt)

	// Re-sample every frame; the target is itself in motion
	s := c.target()
	if !s.OK {
		// Target vanished mid-ease (data reload): settle where we are,
		// without locking tracking to a ghost
		c.target = nil
		c.finish()
		return true
	}

	e := vmath.EaseInOutCubic(t)
	c.cam.Position = vmath.V3Lerp(c.fromPos, framePos(s), e)
	c.cam.LookAt = vmath.V3Lerp(c.fromLook, s.Position, e)

	if finished {
		c.offset = vmath.V3Sub(c.cam.Position, s.Position)
		c.lastAngle = s.Angle
		c.tracking = true
		c.finish()
		return true
	}
	return false
}

func (c *Choreographer) updateReturn(dt float64) bool {
	t, finished := c.progress(dt)
	e := vmath.EaseInOutCubic(t)
	c.cam.Position = vmath.V3Lerp(c.fromPos, c.defaultPose.Position, e)
	c.cam.LookAt = vmath.V3Lerp(c.fromLook, c.defaultPose.LookAt, e)

	if finished {
		c.finish()
		return true
	}
	return false
}

func (c *Choreographer) updateZoom(dt float64) bool {
	t, finished := c.progress(dt)
	e := vmath.EaseOutCubic(t)

	// The dolly's focus may itself be orbiting: re-sample it every frame
	// so the camera closes on where the target is, not where it was
	if c.tracking && c.target != nil {
		s := c.target()
		if !s.OK {
			c.tracking = false
			c.target = nil
		} else {
			c.cam.LookAt = s.Position
			c.lastAngle = s.Angle
		}
	}

	dir := vmath.V3Normalize(vmath.V3Sub(c.cam.Position, c.cam.LookAt))
	if dir == (vmath.Vec3{}) {
		dir = vmath.Vec3{Z: 1}
	}
	dist := vmath.Lerp(c.zoomFrom, c.zoomTo, e)
	c.cam.Position = vmath.V3Add(c.cam.LookAt, vmath.V3Scale(dir, dist))

	if finished {
		// Re-lock the offset at the finished pose so the next tracking
		// frame holds this distance instead of the pre-dolly framing
		if c.tracking {
			c.offset = vmath.V3Sub(c.cam.Position, c.cam.LookAt)
		}
		c.finish()
		return true
	}
	return false
}

// updateTracking keeps the camera offset locked to the moving target by
// rotating the offset in lockstep with the target's angular delta.
// V3RotateY(v, a) maps orbital angle θ to θ-a, so advancing the target by
// dθ rotates the offset by -dθ.
func (c *Choreographer) updateTracking() {
	if !c.tracking || c.target == nil {
		return
	}
	s := c.target()
	if !s.OK {
		c.tracking = false
		c.target = nil
		return
	}
	dAngle := s.Angle - c.lastAngle
	if dAngle != 0 {
		c.offset = vmath.V3RotateY(c.offset, -dAngle)
		c.lastAngle = s.Angle
	}
	c.cam.Position = vmath.V3Add(s.Position, c.offset)
	c.cam.LookAt = s.Position
}
