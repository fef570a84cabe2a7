package transition

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/icariumtech/mothership-console/constants"
	"github.com/icariumtech/mothership-console/data"
	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
	"github.com/icariumtech/mothership-console/scene"
)

// Phase names one step of a tier transition, in execution order
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrefetch
	PhaseSelectWait
	PhaseFadeOut
	PhaseSwitch
	PhaseReadyWait
	PhaseFadeIn
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrefetch:
		return "prefetch"
	case PhaseSelectWait:
		return "select-wait"
	case PhaseFadeOut:
		return "fade-out"
	case PhaseSwitch:
		return "switch"
	case PhaseReadyWait:
		return "ready-wait"
	case PhaseFadeIn:
		return "fade-in"
	}
	return "unknown"
}

// Config holds the transition timings; DefaultConfig matches the console's
// authored feel, tests shrink everything
type Config struct {
	FadeOut       time.Duration
	FadeIn        time.Duration
	Debounce      time.Duration
	RevealMaxWait time.Duration
	RevealPoll    time.Duration
	Prefetch      time.Duration
}

func DefaultConfig() Config {
	return Config{
		FadeOut:       constants.FadeOutDuration,
		FadeIn:        constants.FadeInDuration,
		Debounce:      constants.TransitionDebounce,
		RevealMaxWait: constants.RevealMaxWait,
		RevealPoll:    constants.RevealPollInterval,
		Prefetch:      constants.PrefetchTimeout,
	}
}

// Coordinator sequences tier transitions: dives into a selected element's
// child map and rises back to the parent. Exactly one transition runs at a
// time; requests arriving while one is in flight are dropped, not queued,
// and a debounce window swallows double-presses. Parent scenes stay mounted
// across a dive so a rise restores them with their clocks and selections
// intact.
type Coordinator struct {
	cfg     Config
	clock   *engine.PausableClock
	sim     *engine.SimContext
	queue   *events.Queue
	fetcher data.Fetcher

	locked     atomic.Bool
	lastAccept atomic.Int64 // unix nanos of the last accepted request
	phase      atomic.Int64 // current Phase
	phaseHops  atomic.Int64 // phase entries since construction

	mu     sync.Mutex
	active scene.Tier
	galaxy *scene.GalaxyScene
	system *scene.SystemScene
	orbit  *scene.OrbitScene
}

func NewCoordinator(cfg Config, clock *engine.PausableClock, sim *engine.SimContext, queue *events.Queue, fetcher data.Fetcher) *Coordinator {
	return &Coordinator{
		cfg:     cfg,
		clock:   clock,
		sim:     sim,
		queue:   queue,
		fetcher: fetcher,
		active:  scene.TierGalaxy,
	}
}

// Mount fetches the star map and builds the galaxy scene. Must complete
// before the frame loop starts.
func (c *Coordinator) Mount(ctx context.Context) error {
	doc, err := c.fetcher.FetchTier(ctx, "galaxy")
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.galaxy = scene.NewGalaxyScene(doc, c.clock, c.queue)
	c.galaxy.BeginFadeIn(c.cfg.FadeIn)
	c.mu.Unlock()
	return nil
}

// Active returns the scene the renderers should draw
func (c *Coordinator) Active() *scene.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeLocked()
}

func (c *Coordinator) activeLocked() *scene.Scene {
	switch c.active {
	case scene.TierSystem:
		if c.system != nil {
			return c.system.Scene
		}
	case scene.TierOrbit:
		if c.orbit != nil {
			return c.orbit.Scene
		}
	}
	if c.galaxy != nil {
		return c.galaxy.Scene
	}
	return nil
}

// ActiveTier returns the currently presented tier
func (c *Coordinator) ActiveTier() scene.Tier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Phase returns the coordinator's current phase
func (c *Coordinator) Phase() Phase {
	return Phase(c.phase.Load())
}

// PhaseHops counts phase entries, a cheap probe for "did anything run"
func (c *Coordinator) PhaseHops() int64 {
	return c.phaseHops.Load()
}

// Locked reports whether a transition is in flight
func (c *Coordinator) Locked() bool {
	return c.locked.Load()
}

// Update advances every mounted scene by dt seconds. Called once per frame;
// background tiers keep animating so a rise resumes them mid-motion.
func (c *Coordinator) Update(dt float64) {
	c.mu.Lock()
	g, s, o := c.galaxy, c.system, c.orbit
	c.mu.Unlock()

	if g != nil {
		g.Update(dt)
	}
	if s != nil {
		s.Update(dt)
	}
	if o != nil {
		o.Update(dt)
	}
}

func (c *Coordinator) enterPhase(p Phase) {
	c.phase.Store(int64(p))
	c.phaseHops.Add(1)
	if p != PhaseIdle {
		log.Printf("transition: %s", p)
	}
}

// acquire takes the transition lock with debounce. Returns false when the
// request must be dropped.
func (c *Coordinator) acquire() bool {
	now := time.Now().UnixNano()
	last := c.lastAccept.Load()
	if now-last < int64(c.cfg.Debounce) {
		return false
	}
	if !c.locked.CompareAndSwap(false, true) {
		return false
	}
	c.lastAccept.Store(now)
	return true
}

func (c *Coordinator) release(from, to scene.Tier, target string) {
	c.enterPhase(PhaseIdle)
	c.locked.Store(false)
	c.queue.Push(events.Event{
		Type: events.EventTransitionFinished,
		Time: time.Now(),
		Payload: &events.TransitionPayload{
			From:   from.String(),
			To:     to.String(),
			Target: target,
		},
	})
}

func (c *Coordinator) announce(from, to scene.Tier, target string) {
	c.queue.Push(events.Event{
		Type: events.EventTransitionStarted,
		Time: time.Now(),
		Payload: &events.TransitionPayload{
			From:   from.String(),
			To:     to.String(),
			Target: target,
		},
	})
}

// Dive opens the child map behind the named element of the active tier.
// Returns a channel closed when the transition finishes, or nil when the
// request was dropped (locked, debounced, leaf tier, or no child map).
func (c *Coordinator) Dive(target string) <-chan struct{} {
	c.mu.Lock()
	from := c.active
	var childKey string
	switch from {
	case scene.TierGalaxy:
		if c.galaxy != nil {
			childKey = c.galaxy.ChildKeyFor(target)
		}
	case scene.TierSystem:
		if c.system != nil {
			childKey = c.system.ChildKeyFor(target)
		}
	}
	src := c.activeLocked()
	c.mu.Unlock()

	if childKey == "" || src == nil {
		return nil
	}
	if !c.acquire() {
		return nil
	}

	to := from.Child()
	c.announce(from, to, target)
	done := make(chan struct{})
	go c.runDive(src, from, to, target, childKey, done)
	return done
}

func (c *Coordinator) runDive(src scene.Controller, from, to scene.Tier, target, childKey string, done chan struct{}) {
	defer close(done)
	defer c.release(from, to, target)

	c.enterPhase(PhasePrefetch)
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Prefetch)
	doc, err := c.fetcher.FetchTier(ctx, childKey)
	cancel()
	if err != nil {
		// Degrade, don't abort: the dive lands on an empty destination
		// scene rather than swallowing the user's navigation
		log.Printf("transition: prefetch %s failed, continuing empty: %v", childKey, err)
		doc = emptyTierDocument(to, childKey, target)
	}

	c.enterPhase(PhaseSelectWait)
	<-src.SelectAndWait(target, scene.ElementBody)
	c.waitReveal()

	c.enterPhase(PhaseFadeOut)
	src.BeginFadeOut(c.cfg.FadeOut)
	zoomDone := src.DiveToElement(target)
	fadeTimer := time.NewTimer(c.cfg.FadeOut)
	<-zoomDone
	<-fadeTimer.C

	c.enterPhase(PhaseSwitch)
	dst := c.mountChild(to, doc)
	if dst == nil {
		return
	}

	c.enterPhase(PhaseReadyWait)
	<-dst.Ready()

	c.enterPhase(PhaseFadeIn)
	dst.PositionAtCentral()
	zoomDone = dst.ZoomOut()
	dst.BeginFadeIn(c.cfg.FadeIn)
	fadeTimer = time.NewTimer(c.cfg.FadeIn)
	<-zoomDone
	<-fadeTimer.C
}

// emptyTierDocument is the stand-in destination after a failed prefetch:
// no renderables, a generic authored pose, the dive target as its title
func emptyTierDocument(tier scene.Tier, key, target string) *data.TierDocument {
	return &data.TierDocument{
		Tier:   tier.String(),
		Key:    key,
		Title:  target,
		Camera: data.CameraPose{Position: data.Vec{Y: 80, Z: 160}, FOV: 60},
	}
}

// mountChild installs the destination scene and switches the active tier
func (c *Coordinator) mountChild(to scene.Tier, doc *data.TierDocument) scene.Controller {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch to {
	case scene.TierSystem:
		c.system = scene.NewSystemScene(doc, c.clock, c.queue)
		c.orbit = nil
		c.active = to
		return c.system.Scene
	case scene.TierOrbit:
		c.orbit = scene.NewOrbitScene(doc, c.clock, c.queue)
		c.active = to
		return c.orbit.Scene
	}
	return nil
}

// Rise returns to the parent tier. The parent scene stayed mounted through
// the dive, so the switch is a reactivation, not a rebuild. Returns nil
// when dropped (locked, debounced, or already at the galaxy).
func (c *Coordinator) Rise() <-chan struct{} {
	c.mu.Lock()
	from := c.active
	src := c.activeLocked()
	var dst scene.Controller
	switch from {
	case scene.TierOrbit:
		if c.system != nil {
			dst = c.system.Scene
		}
	case scene.TierSystem:
		if c.galaxy != nil {
			dst = c.galaxy.Scene
		}
	}
	c.mu.Unlock()

	if src == nil || dst == nil {
		return nil
	}
	if !c.acquire() {
		return nil
	}

	to := from.Parent()
	c.announce(from, to, "")
	done := make(chan struct{})
	go c.runRise(src, dst, from, to, done)
	return done
}

func (c *Coordinator) runRise(src, dst scene.Controller, from, to scene.Tier, done chan struct{}) {
	defer close(done)
	defer c.release(from, to, "")

	c.enterPhase(PhaseFadeOut)
	src.BeginFadeOut(c.cfg.FadeOut)
	zoomDone := src.ZoomOut()
	fadeTimer := time.NewTimer(c.cfg.FadeOut)
	<-zoomDone
	<-fadeTimer.C

	c.enterPhase(PhaseSwitch)
	c.mu.Lock()
	c.active = to
	if from == scene.TierOrbit {
		c.orbit = nil
	} else {
		c.system = nil
		c.orbit = nil
	}
	c.mu.Unlock()

	c.enterPhase(PhaseReadyWait)
	<-dst.Ready()

	c.enterPhase(PhaseFadeIn)
	returnDone := dst.ReturnToDefault()
	dst.BeginFadeIn(c.cfg.FadeIn)
	fadeTimer = time.NewTimer(c.cfg.FadeIn)
	<-returnDone
	<-fadeTimer.C
}

// waitReveal holds the transition until the info panel's typewriter reveal
// finishes, bounded so a long description never stalls the dive
func (c *Coordinator) waitReveal() {
	if c.sim == nil {
		return
	}
	deadline := time.Now().Add(c.cfg.RevealMaxWait)
	for !c.sim.RevealDone() {
		if time.Now().After(deadline) {
			return
		}
		time.Sleep(c.cfg.RevealPoll)
	}
}
