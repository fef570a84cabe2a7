package render

import (
	"math"
)

var (
	reticleColor = RGB{R: 255, G: 180, B: 40}
	labelColor   = RGB{R: 255, G: 220, B: 150}
)

// Reticle draws corner brackets and a name label around the selected
// element, pulsing slowly so it reads as live
type Reticle struct{}

func NewReticle() *Reticle {
	return &Reticle{}
}

func (r *Reticle) Render(ctx *Context, buf *Buffer) {
	sel := ctx.Scene.Selection()
	if sel.None() || ctx.Opacity <= 0 {
		return
	}
	body := ctx.Scene.Lookup(sel.Name)
	if body == nil {
		return
	}

	sx, sy, depth, ok := ctx.Proj.ProjectF(body.Position)
	if !ok {
		return
	}

	radius := ctx.Proj.ApparentRadius(body.VisualSize, depth)
	halfH := int(radius) + 2
	halfW := int(radius*cellAspect) + 3

	pulse := 0.7 + 0.3*math.Sin(float64(ctx.Sim.Frame())*0.12)
	c := Scale(reticleColor, ctx.Opacity*pulse)

	cx := int(sx)
	cy := int(sy)
	left := cx - halfW
	right := cx + halfW
	top := cy - halfH
	bottom := cy + halfH

	// Corner brackets
	buf.SetFg(left, top, '┌', c, AttrBold)
	buf.SetFg(left+1, top, '─', c, AttrBold)
	buf.SetFg(left, top+1, '│', c, AttrBold)

	buf.SetFg(right, top, '┐', c, AttrBold)
	buf.SetFg(right-1, top, '─', c, AttrBold)
	buf.SetFg(right, top+1, '│', c, AttrBold)

	buf.SetFg(left, bottom, '└', c, AttrBold)
	buf.SetFg(left+1, bottom, '─', c, AttrBold)
	buf.SetFg(left, bottom-1, '│', c, AttrBold)

	buf.SetFg(right, bottom, '┘', c, AttrBold)
	buf.SetFg(right-1, bottom, '─', c, AttrBold)
	buf.SetFg(right, bottom-1, '│', c, AttrBold)

	// Name label above the bracket, centered
	label := body.Name
	lx := cx - len(label)/2
	buf.Text(lx, top-1, label, Scale(labelColor, ctx.Opacity), AttrBold)
}
