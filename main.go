// Command mothership-console is the gamemaster's terminal console for
// tabletop sessions: a three-tier celestial map (galaxy, system, orbit)
// with animated camera dives, an info panel, encounter-map overlays, and
// an HTTP sidecar feeding player-facing screens.
package main

import (
	"context"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/icariumtech/mothership-console/audio"
	"github.com/icariumtech/mothership-console/config"
	"github.com/icariumtech/mothership-console/constants"
	"github.com/icariumtech/mothership-console/data"
	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
	"github.com/icariumtech/mothership-console/render"
	"github.com/icariumtech/mothership-console/scene"
	"github.com/icariumtech/mothership-console/server"
	"github.com/icariumtech/mothership-console/texture"
	"github.com/icariumtech/mothership-console/transition"
)

func main() {
	cfgPath := flag.String("config", "console.yaml", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// The terminal owns stdout; logs go to a file
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	log.Printf("console starting, store %s", cfg.DataRoot)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	c := newConsole(cfg, screen)
	if err := c.mount(); err != nil {
		return err
	}
	defer c.shutdown()

	c.runLoop()
	return nil
}

// console wires every subsystem together for the frame loop
type console struct {
	cfg    *config.Config
	screen tcell.Screen

	clock *engine.PausableClock
	sim   *engine.SimContext
	queue *events.Queue
	router *events.Router[*engine.SimContext]

	loader  *data.Loader
	fetcher *data.CachingFetcher
	coord   *transition.Coordinator

	orch      *render.Orchestrator
	starfield *render.Starfield
	overlay   *render.MapOverlay
	player    *audio.Player
	publisher *server.ViewPublisher
	srv       *server.Server

	inputCh  chan tcell.Event
	lastSeed int
}

func newConsole(cfg *config.Config, screen tcell.Screen) *console {
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	sim := engine.NewSimContext(clock)
	queue := events.NewQueue()

	loader := data.NewLoader(cfg.DataRoot)
	fetcher := data.NewCachingFetcher(data.NewStoreFetcher(loader), queue)
	coord := transition.NewCoordinator(transition.DefaultConfig(), clock, sim, queue, fetcher)

	gen := texture.NewGenerator()
	w, h := screen.Size()
	orch := render.NewOrchestrator(screen, w, h)
	starfield := render.NewStarfield(gen, cfg.Visual.StarDensity)
	overlay := render.NewMapOverlay()

	orch.Register(starfield, render.PriorityStarfield)
	orch.Register(render.NewOrbitPaths(), render.PriorityOrbits)
	orch.Register(render.NewBodies(gen), render.PriorityBodies)
	orch.Register(render.NewReticle(), render.PriorityReticle)
	orch.Register(render.NewInfoPanel(), render.PriorityPanel)
	orch.Register(render.NewStatusFooter(), render.PriorityFooter)
	orch.Register(overlay, render.PriorityOverlay)

	c := &console{
		cfg:       cfg,
		screen:    screen,
		clock:     clock,
		sim:       sim,
		queue:     queue,
		router:    events.NewRouter[*engine.SimContext](queue),
		loader:    loader,
		fetcher:   fetcher,
		coord:     coord,
		orch:      orch,
		starfield: starfield,
		overlay:   overlay,
		inputCh:   make(chan tcell.Event, 16),
		lastSeed:  -1,
	}

	if cfg.Audio.Enabled {
		c.player = audio.NewPlayer(cfg.Audio.MasterVolume)
		c.router.Register(c.player)
	}

	if cfg.Server.Enabled {
		hub := server.NewHub()
		store := server.NewActiveViewStore(hub)
		c.publisher = server.NewViewPublisher(store)
		c.router.Register(c.publisher)
		c.srv = server.New(cfg.Server.Addr, loader, store, hub)
	}

	return c
}

// mount loads the galaxy, warms the tier cache, and starts the sidecar
func (c *console) mount() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.coord.Mount(ctx); err != nil {
		return fmt.Errorf("mount galaxy: %w", err)
	}

	// Warm the cache in the background; dives hit memory instead of disk
	go c.warmCache()

	if c.srv != nil {
		c.srv.Start()
		log.Printf("sidecar listening on %s", c.cfg.Server.Addr)
	}

	go c.pollInput()
	return nil
}

// warmCache pre-fetches every authored tier, breadth-first: systems from
// the star map, then each system's orbit maps
func (c *console) warmCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	galaxy, err := c.fetcher.FetchTier(ctx, "galaxy")
	if err != nil {
		return
	}

	var systems []string
	for _, b := range galaxy.Bodies {
		if b.ChildKey != "" {
			systems = append(systems, b.ChildKey)
		}
	}
	c.fetcher.PrefetchAll(ctx, systems)

	var orbits []string
	for _, key := range systems {
		doc, err := c.fetcher.FetchTier(ctx, key)
		if err != nil {
			continue
		}
		for _, b := range doc.Bodies {
			if b.ChildKey != "" {
				orbits = append(orbits, b.ChildKey)
			}
		}
	}
	c.fetcher.PrefetchAll(ctx, orbits)
	log.Printf("cache warm: %d systems, %d orbit maps", len(systems), len(orbits))
}

func (c *console) shutdown() {
	if c.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		c.srv.Shutdown(ctx)
	}
	if c.player != nil {
		c.player.Close()
	}
	log.Printf("console stopped")
}

func (c *console) pollInput() {
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		c.inputCh <- ev
	}
}

func (c *console) runLoop() {
	loop := engine.NewLoop(constants.TickInterval, constants.MaxFrameDelta,
		engine.NewMonotonicTimeProvider(), c.sim)

	loop.Run(func(dt time.Duration, frame int64) bool {
		if !c.handleInput() {
			return false
		}

		c.coord.Update(dt.Seconds())
		c.sim.AdvanceReveal(dt.Seconds() * constants.RevealCharsPerSecond)
		c.router.DispatchAll(c.sim)

		c.renderFrame(dt)
		return true
	})
}

// handleInput drains pending terminal events; returns false on quit
func (c *console) handleInput() bool {
	for {
		select {
		case ev := <-c.inputCh:
			switch e := ev.(type) {
			case *tcell.EventResize:
				w, h := e.Size()
				c.orch.Resize(w, h)
				c.screen.Sync()
			case *tcell.EventKey:
				if !c.handleKey(e) {
					return false
				}
			}
		default:
			return true
		}
	}
}

func (c *console) handleKey(e *tcell.EventKey) bool {
	sc := c.coord.Active()
	if sc == nil {
		return true
	}

	// An in-flight transition owns the camera: selection and camera keys
	// are dropped until it unlocks, quit and pause stay live
	locked := c.coord.Locked()

	switch e.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.overlay.IsVisible() {
			c.overlay.Hide()
			return true
		}
		c.coord.Rise()
	case tcell.KeyEnter:
		if locked {
			return true
		}
		if sel := sc.Selection(); !sel.None() {
			c.coord.Dive(sel.Name)
		}
	case tcell.KeyTab, tcell.KeyRight, tcell.KeyDown:
		if !locked {
			c.cycleSelection(sc, 1)
		}
	case tcell.KeyBacktab, tcell.KeyLeft, tcell.KeyUp:
		if !locked {
			c.cycleSelection(sc, -1)
		}
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q':
			return false
		case ' ':
			c.togglePause()
		case 'm':
			c.toggleMap(sc)
		case 'a':
			if c.player != nil {
				c.player.ToggleMute()
			}
		case '[':
			if !locked {
				sc.OrbitCamera(-0.15)
			}
		case ']':
			if !locked {
				sc.OrbitCamera(0.15)
			}
		case 'x':
			if !locked {
				sc.Deselect()
			}
		}
	}
	return true
}

func (c *console) togglePause() {
	if c.clock.IsPaused() {
		c.clock.Resume()
		log.Printf("simulation resumed")
	} else {
		c.clock.Pause()
		log.Printf("simulation paused")
	}
}

// cycleSelection walks the scene's selectable elements in snapshot order
func (c *console) cycleSelection(sc *scene.Scene, dir int) {
	bodies := sc.Snapshot()
	if len(bodies) == 0 {
		return
	}

	current := sc.Selection().Name
	idx := -1
	for i, b := range bodies {
		if b.Name == current {
			idx = i
			break
		}
	}

	next := (idx + dir + len(bodies)) % len(bodies)
	if idx == -1 && dir < 0 {
		next = len(bodies) - 1
	}
	b := bodies[next]
	sc.Select(b.Name, b.Kind)
}

// toggleMap shows the encounter map behind the selected element, keyed by
// its slugified name, or re-toggles the last shown deck
func (c *console) toggleMap(sc *scene.Scene) {
	if c.overlay.Toggle() {
		return
	}

	sel := sc.Selection()
	if sel.None() {
		return
	}
	slug := slugify(sel.Name)

	m, _, err := c.loader.LoadEncounterMap(slug, "")
	if err != nil {
		log.Printf("no encounter map for %q: %v", slug, err)
		return
	}
	if m.ImagePath == "" {
		log.Printf("encounter map %q has no image", slug)
		return
	}
	img, err := data.LoadDeckImage(c.loader.Root(), m.ImagePath)
	if err != nil {
		log.Printf("load deck image: %v", err)
		return
	}
	c.overlay.Show(img, m.Name)
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (c *console) renderFrame(dt time.Duration) {
	sc := c.coord.Active()
	if sc == nil {
		return
	}

	if c.publisher != nil {
		c.publisher.SetScene(sc.Tier().String(), sc.Title())
	}

	seed := titleSeed(sc.Title())
	if seed != c.lastSeed {
		c.starfield.Reseed(seed)
		c.lastSeed = seed
	}

	w, h := c.screen.Size()
	ctx := render.NewContext(sc, c.sim, w, h, c.clock.IsPaused(), dt)
	c.orch.RenderFrame(ctx)
}

func titleSeed(title string) int {
	h := fnv.New32a()
	h.Write([]byte(title))
	return int(h.Sum32() & 0x7fffffff)
}
