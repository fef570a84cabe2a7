package render

import (
	"github.com/gdamore/tcell/v2"
)

// Priority orders renderers back to front
type Priority int

const (
	PriorityStarfield Priority = 10
	PriorityOrbits    Priority = 20
	PriorityBodies    Priority = 30
	PriorityReticle   Priority = 40
	PriorityPanel     Priority = 50
	PriorityFooter    Priority = 60
	PriorityOverlay   Priority = 70
)

// Renderer is implemented by anything with visual output
type Renderer interface {
	Render(ctx *Context, buf *Buffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

type rendererEntry struct {
	renderer Renderer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator composes registered renderers into the buffer and flushes
// the result to the terminal
type Orchestrator struct {
	screen    tcell.Screen
	buffer    *Buffer
	renderers []rendererEntry
	regCount  int
}

func NewOrchestrator(screen tcell.Screen, width, height int) *Orchestrator {
	return &Orchestrator{
		screen:    screen,
		buffer:    NewBuffer(width, height),
		renderers: make([]rendererEntry, 0, 16),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted
// order via insertion sort.
func (o *Orchestrator) Register(r Renderer, priority Priority) {
	entry := rendererEntry{renderer: r, priority: priority, index: o.regCount}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}
	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize adjusts the compositor to a new terminal size
func (o *Orchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
}

// RenderFrame composes one frame and pushes it to the terminal
func (o *Orchestrator) RenderFrame(ctx *Context) {
	o.buffer.Clear()
	for _, e := range o.renderers {
		if v, ok := e.renderer.(VisibilityToggle); ok && !v.IsVisible() {
			continue
		}
		e.renderer.Render(ctx, o.buffer)
	}
	o.buffer.Flush(o.screen)
}

// Buffer exposes the compositor for tests
func (o *Orchestrator) Buffer() *Buffer {
	return o.buffer
}
