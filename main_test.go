package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/icariumtech/mothership-console/data"
	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
	"github.com/icariumtech/mothership-console/render"
	"github.com/icariumtech/mothership-console/transition"
)

// gatedFetcher serves the galaxy immediately but holds every child fetch
// until the gate opens, pinning the coordinator inside a transition
type gatedFetcher struct {
	docs map[string]*data.TierDocument
	gate chan struct{}
}

func (f *gatedFetcher) FetchTier(ctx context.Context, key string) (*data.TierDocument, error) {
	if key != "galaxy" {
		<-f.gate
	}
	return f.docs[key], nil
}

func consoleDocs() map[string]*data.TierDocument {
	return map[string]*data.TierDocument{
		"galaxy": {
			Tier:   "galaxy",
			Title:  "CHARTED SPACE",
			Camera: data.CameraPose{Position: data.Vec{Y: 200, Z: 400}},
			Bodies: []data.BodyRecord{
				{Name: "Hyperion", VisualSize: 4, ChildKey: "hyperion"},
				{Name: "Kepler Deep", VisualSize: 3},
			},
		},
		"hyperion": {
			Tier:    "system",
			Key:     "hyperion",
			Title:   "HYPERION SYSTEM",
			Camera:  data.CameraPose{Position: data.Vec{Y: 80, Z: 160}},
			Central: &data.CentralRecord{Name: "Hyperion", VisualSize: 12},
		},
	}
}

func keyEv(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

// Selection and camera keys are dropped while a transition holds the lock
func TestSelectionKeysGatedDuringTransition(t *testing.T) {
	f := &gatedFetcher{docs: consoleDocs(), gate: make(chan struct{})}
	queue := events.NewQueue()
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	cfg := transition.Config{
		FadeOut:       time.Millisecond,
		FadeIn:        time.Millisecond,
		Debounce:      time.Millisecond,
		RevealMaxWait: time.Millisecond,
		RevealPoll:    time.Millisecond,
		Prefetch:      5 * time.Second,
	}
	coord := transition.NewCoordinator(cfg, clock, nil, queue, f)
	if err := coord.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	for i := 0; i < 100; i++ {
		coord.Update(0.1)
		select {
		case <-coord.Active().Ready():
			i = 100
		default:
		}
	}

	c := &console{coord: coord, overlay: render.NewMapOverlay(), clock: clock}

	c.handleKey(keyEv(tcell.KeyTab, 0))
	if got := coord.Active().Selection().Name; got != "Hyperion" {
		t.Fatalf("selection after tab = %q, want Hyperion", got)
	}

	done := coord.Dive("Hyperion")
	if done == nil {
		t.Fatalf("dive was dropped")
	}
	if !coord.Locked() {
		t.Fatalf("lock not held while the child fetch is pending")
	}

	c.handleKey(keyEv(tcell.KeyTab, 0))
	c.handleKey(keyEv(tcell.KeyRune, 'x'))
	c.handleKey(keyEv(tcell.KeyRune, '['))
	if got := coord.Active().Selection().Name; got != "Hyperion" {
		t.Errorf("selection mutated during transition: %q", got)
	}

	close(f.gate)
	deadline := time.After(5 * time.Second)
	for {
		coord.Update(0.1)
		select {
		case <-done:
		case <-deadline:
			t.Fatalf("transition never finished")
		case <-time.After(time.Millisecond):
			continue
		}
		break
	}

	// The gate lifts with the lock: selection keys work again
	c.handleKey(keyEv(tcell.KeyTab, 0))
	if coord.Active().Selection().None() {
		t.Errorf("selection keys still gated after the transition")
	}
}
