package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/icariumtech/mothership-console/constants"
	"github.com/icariumtech/mothership-console/scene"
)

var (
	panelBorder = RGB{R: 80, G: 110, B: 90}
	panelTitle  = RGB{R: 160, G: 255, B: 190}
	panelLabel  = RGB{R: 110, G: 150, B: 125}
	panelText   = RGB{R: 200, G: 230, B: 210}
	panelCursor = RGB{R: 160, G: 255, B: 190}
)

// InfoPanel renders the right-hand data column: tier header, selected
// element details, and the description revealed typewriter-style. Reveal
// progress lives in the sim context so the transition coordinator can hold
// a dive until the text has finished printing.
type InfoPanel struct {
	lastSelection string
	lastTier      scene.Tier
}

func NewInfoPanel() *InfoPanel {
	return &InfoPanel{lastTier: -1}
}

func (p *InfoPanel) Render(ctx *Context, buf *Buffer) {
	w := constants.InfoPanelWidth
	if ctx.Width < w+20 {
		return // terminal too narrow for the panel
	}
	x0 := ctx.Width - w
	h := ctx.Height - 1 // footer owns the last row

	sel := ctx.Scene.Selection()
	body := ctx.Scene.SelectedBody()

	p.syncReveal(ctx, sel, body)

	drawBox(buf, x0, 0, w, h, Scale(panelBorder, ctx.Opacity*0.7+0.3))

	inner := x0 + 2
	innerW := w - 4
	y := 1

	buf.Text(inner, y, clip(ctx.Scene.Title(), innerW), panelTitle, AttrBold)
	y++
	buf.Text(inner, y, clip(strings.ToUpper(ctx.Scene.Tier().String())+" VIEW", innerW), panelLabel, AttrNone)
	y += 2

	if body == nil {
		buf.Text(inner, y, "NO TARGET", panelLabel, AttrDim)
		return
	}

	buf.Text(inner, y, clip(body.Name, innerW), panelText, AttrBold)
	y++
	buf.Text(inner, y, clip(sel.Kind.String(), innerW), panelLabel, AttrNone)
	y += 2

	if body.OrbitalRadius > 0 {
		buf.Text(inner, y, clip(fmt.Sprintf("ORBIT   %.1f", body.OrbitalRadius), innerW), panelText, AttrNone)
		y++
		if body.OrbitalPeriod > 0 {
			buf.Text(inner, y, clip(fmt.Sprintf("PERIOD  %.1fs", body.OrbitalPeriod), innerW), panelText, AttrNone)
		} else {
			buf.Text(inner, y, "PERIOD  STATIC", panelText, AttrNone)
		}
		y += 2
	}

	p.drawDescription(ctx, buf, body.Description, inner, y, innerW, h-1)
}

// syncReveal restarts the typewriter whenever the subject changes
func (p *InfoPanel) syncReveal(ctx *Context, sel scene.Selection, body *scene.Body) {
	key := sel.Name
	tier := ctx.Scene.Tier()
	if key == p.lastSelection && tier == p.lastTier {
		return
	}
	p.lastSelection = key
	p.lastTier = tier

	if body == nil {
		ctx.Sim.ResetReveal(0)
		return
	}
	ctx.Sim.ResetReveal(utf8.RuneCountInString(body.Description))
}

// drawDescription word-wraps the description and reveals it left to right
// at the sim's current progress, with a block cursor at the frontier
func (p *InfoPanel) drawDescription(ctx *Context, buf *Buffer, text string, x, y, w, maxY int) {
	if text == "" || w <= 0 {
		return
	}
	total := utf8.RuneCountInString(text)
	visible := int(ctx.Sim.RevealProgress() * float64(total))
	if visible > total {
		visible = total
	}

	shown := 0
	for _, line := range wrap(text, w) {
		if y > maxY {
			return
		}
		runes := []rune(line)
		n := len(runes)
		if shown+n > visible {
			n = visible - shown
		}
		if n > 0 {
			buf.Text(x, y, string(runes[:n]), Scale(panelText, ctx.Opacity), AttrNone)
		}
		shown += len(runes)
		if shown >= visible {
			if visible < total && n >= 0 && ctx.Sim.Frame()/15%2 == 0 {
				buf.SetFg(x+n, y, '█', panelCursor, AttrNone)
			}
			return
		}
		y++
	}
}

// wrap greedily word-wraps text to the given width
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wl := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wl
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func clip(s string, w int) string {
	if utf8.RuneCountInString(s) <= w {
		return s
	}
	runes := []rune(s)
	if w <= 1 {
		return string(runes[:w])
	}
	return string(runes[:w-1]) + "…"
}

// drawBox renders a single-line border box
func drawBox(buf *Buffer, x, y, w, h int, c RGB) {
	if w < 2 || h < 2 {
		return
	}
	buf.SetFg(x, y, '┌', c, AttrNone)
	buf.SetFg(x+w-1, y, '┐', c, AttrNone)
	buf.SetFg(x, y+h-1, '└', c, AttrNone)
	buf.SetFg(x+w-1, y+h-1, '┘', c, AttrNone)
	for i := 1; i < w-1; i++ {
		buf.SetFg(x+i, y, '─', c, AttrNone)
		buf.SetFg(x+i, y+h-1, '─', c, AttrNone)
	}
	for j := 1; j < h-1; j++ {
		buf.SetFg(x, y+j, '│', c, AttrNone)
		buf.SetFg(x+w-1, y+j, '│', c, AttrNone)
	}
}
