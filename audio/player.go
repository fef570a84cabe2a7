package audio

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/icariumtech/mothership-console/constants"
	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
)

// Player plays console cues through the system speaker. Initialization
// failure (headless box, no audio device) degrades to silence, never to an
// error: the console is fully usable without sound.
type Player struct {
	rate   beep.SampleRate
	master float64
	silent atomic.Bool
	muted  atomic.Bool
}

// NewPlayer initializes the speaker. Always returns a usable player.
func NewPlayer(masterVolume float64) *Player {
	p := &Player{
		rate:   beep.SampleRate(constants.AudioSampleRate),
		master: masterVolume,
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		log.Printf("audio: speaker unavailable, running silent: %v", err)
		p.silent.Store(true)
	}
	return p
}

// Play starts a cue asynchronously; no-op when silent or muted
func (p *Player) Play(cue Cue) {
	if p.silent.Load() || p.muted.Load() {
		return
	}
	s := buildCue(cue, p.master, p.rate)
	if s == nil {
		return
	}
	speaker.Play(s)
}

// ToggleMute flips the mute state and reports the new value
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Silent reports whether the speaker failed to initialize
func (p *Player) Silent() bool {
	return p.silent.Load()
}

// Close stops all playback
func (p *Player) Close() {
	if !p.silent.Load() {
		speaker.Clear()
	}
}

// ===== EVENT HANDLER =====

// EventTypes registers the player for the cue-worthy console events
func (p *Player) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventSelectionChanged,
		events.EventSceneReady,
		events.EventTransitionStarted,
	}
}

// HandleEvent maps console events to cues
func (p *Player) HandleEvent(_ *engine.SimContext, ev events.Event) {
	switch ev.Type {
	case events.EventSelectionChanged:
		if sel, ok := ev.Payload.(*events.SelectionChangedPayload); ok && sel.Name != "" {
			p.Play(CueSelect)
		}
	case events.EventSceneReady:
		p.Play(CueReady)
	case events.EventTransitionStarted:
		tp, ok := ev.Payload.(*events.TransitionPayload)
		if !ok {
			return
		}
		if tp.Target != "" {
			p.Play(CueDive)
		} else {
			p.Play(CueReturn)
		}
	}
}
