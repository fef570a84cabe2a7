package events

import (
	"sync"
	"testing"
	"time"

	"github.com/icariumtech/mothership-console/constants"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	for i := 0; i < 5; i++ {
		q.Push(Event{Type: EventType(i), Time: now})
	}

	evs := q.Consume()
	if len(evs) != 5 {
		t.Fatalf("expected 5 events, got %d", len(evs))
	}
	for i, ev := range evs {
		if ev.Type != EventType(i) {
			t.Errorf("event %d out of order: got type %d", i, ev.Type)
		}
	}

	if again := q.Consume(); again != nil {
		t.Errorf("expected empty queue, got %d events", len(again))
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()

	total := constants.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(Event{Type: EventSelectionChanged, Payload: i})
	}

	evs := q.Consume()
	if len(evs) != constants.EventQueueSize {
		t.Fatalf("expected %d events after overflow, got %d", constants.EventQueueSize, len(evs))
	}
	// Oldest events were overwritten; the first surviving payload is 10
	if got := evs[0].Payload.(int); got != 10 {
		t.Errorf("expected first surviving payload 10, got %d", got)
	}
	if got := evs[len(evs)-1].Payload.(int); got != total-1 {
		t.Errorf("expected last payload %d, got %d", total-1, got)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup

	const producers = 8
	const perProducer = 16

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Event{Type: EventSceneReady})
			}
		}()
	}
	wg.Wait()

	total := 0
	for {
		evs := q.Consume()
		if evs == nil {
			break
		}
		total += len(evs)
	}
	if total != producers*perProducer {
		t.Errorf("expected %d events, got %d", producers*perProducer, total)
	}
}

type countingHandler struct {
	types []EventType
	seen  int
}

func (h *countingHandler) HandleEvent(_ struct{}, _ Event) { h.seen++ }
func (h *countingHandler) EventTypes() []EventType         { return h.types }

func TestRouterDispatch(t *testing.T) {
	q := NewQueue()
	r := NewRouter[struct{}](q)

	sel := &countingHandler{types: []EventType{EventSelectionChanged}}
	all := &countingHandler{types: []EventType{EventSelectionChanged, EventSceneReady}}
	r.Register(sel)
	r.Register(all)

	q.Push(Event{Type: EventSelectionChanged})
	q.Push(Event{Type: EventSceneReady})
	q.Push(Event{Type: EventEaseComplete}) // no handler registered

	r.DispatchAll(struct{}{})

	if sel.seen != 1 {
		t.Errorf("selection handler saw %d events, want 1", sel.seen)
	}
	if all.seen != 2 {
		t.Errorf("combined handler saw %d events, want 2", all.seen)
	}
}
