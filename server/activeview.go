package server

import (
	"sync"
	"time"

	"github.com/icariumtech/mothership-console/engine"
	"github.com/icariumtech/mothership-console/events"
)

// ActiveView is what the gamemaster's console is currently presenting,
// published to player-facing clients
type ActiveView struct {
	Tier      string    `json:"tier"`
	Title     string    `json:"title"`
	Selection string    `json:"selection,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveViewStore holds the current view and fans updates out to the
// websocket hub. Written from the frame loop's event dispatch, read from
// HTTP handlers.
type ActiveViewStore struct {
	mu   sync.RWMutex
	view ActiveView
	hub  *Hub
}

func NewActiveViewStore(hub *Hub) *ActiveViewStore {
	return &ActiveViewStore{hub: hub}
}

// Set replaces the active view and broadcasts it
func (s *ActiveViewStore) Set(view ActiveView) {
	view.UpdatedAt = time.Now()
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Broadcast(view)
	}
}

// Get returns the current view
func (s *ActiveViewStore) Get() ActiveView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// ===== EVENT HANDLER =====

// ViewPublisher mirrors console events into the active view store so
// player screens follow the gamemaster's navigation
type ViewPublisher struct {
	store *ActiveViewStore

	mu    sync.Mutex
	tier  string
	title string
}

func NewViewPublisher(store *ActiveViewStore) *ViewPublisher {
	return &ViewPublisher{store: store}
}

// SetScene records the presented tier and title. Safe to call every frame;
// publishes only on change.
func (p *ViewPublisher) SetScene(tier, title string) {
	p.mu.Lock()
	if p.tier == tier && p.title == title {
		p.mu.Unlock()
		return
	}
	p.tier = tier
	p.title = title
	p.mu.Unlock()
	p.publish("")
}

func (p *ViewPublisher) publish(selection string) {
	p.mu.Lock()
	view := ActiveView{Tier: p.tier, Title: p.title, Selection: selection}
	p.mu.Unlock()
	p.store.Set(view)
}

func (p *ViewPublisher) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventSelectionChanged,
		events.EventTransitionFinished,
	}
}

func (p *ViewPublisher) HandleEvent(_ *engine.SimContext, ev events.Event) {
	switch ev.Type {
	case events.EventSelectionChanged:
		if sel, ok := ev.Payload.(*events.SelectionChangedPayload); ok {
			p.publish(sel.Name)
		}
	case events.EventTransitionFinished:
		if tp, ok := ev.Payload.(*events.TransitionPayload); ok {
			p.mu.Lock()
			p.tier = tp.To
			p.mu.Unlock()
			p.publish("")
		}
	}
}
