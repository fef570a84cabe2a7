package render

import (
	"image"
	"sort"

	"github.com/icariumtech/mothership-console/scene"
	"github.com/icariumtech/mothership-console/texture"
)

// Bodies draws every constructed renderable of the active scene as a
// texture-sampled sprite, back to front, with half-block cells doubling
// vertical resolution
type Bodies struct {
	gen *texture.Generator
}

func NewBodies(gen *texture.Generator) *Bodies {
	return &Bodies{gen: gen}
}

type drawItem struct {
	body  *scene.Body
	sx    float64
	sy    float64
	depth float64
}

func (r *Bodies) Render(ctx *Context, buf *Buffer) {
	if ctx.Opacity <= 0 {
		return
	}

	bodies := ctx.Scene.Snapshot()
	items := make([]drawItem, 0, len(bodies))
	for _, b := range bodies {
		sx, sy, depth, ok := ctx.Proj.ProjectF(b.Position)
		if !ok {
			continue
		}
		items = append(items, drawItem{body: b, sx: sx, sy: sy, depth: depth})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].depth > items[j].depth
	})

	for _, it := range items {
		alpha := ctx.Scene.DisplayOpacity(it.body.Name)
		if ctx.Paused {
			alpha *= 0.6
		}
		if alpha <= 0.01 {
			continue
		}
		r.drawBody(ctx, buf, it, alpha)
	}
}

// textureKind maps an element to its sprite shape
func textureKind(b *scene.Body, tier scene.Tier) texture.Kind {
	if b.TextureRef != "" {
		switch texture.Kind(b.TextureRef) {
		case texture.KindStar, texture.KindPlanet, texture.KindMoon, texture.KindStation:
			return texture.Kind(b.TextureRef)
		}
	}
	switch b.Kind {
	case scene.ElementStation:
		return texture.KindStation
	case scene.ElementMarker:
		return texture.KindMarker
	}
	if tier == scene.TierGalaxy {
		return texture.KindStar
	}
	if tier == scene.TierOrbit {
		return texture.KindMoon
	}
	return texture.KindPlanet
}

func (r *Bodies) drawBody(ctx *Context, buf *Buffer, it drawItem, alpha float64) {
	// Vertical cell radius; half blocks double it in pixel rows
	radius := ctx.Proj.ApparentRadius(it.body.VisualSize, it.depth)
	if radius < 0.5 {
		r.drawPoint(buf, it, alpha)
		return
	}
	if radius > float64(ctx.Height) {
		radius = float64(ctx.Height)
	}

	kind := textureKind(it.body, ctx.Scene.Tier())
	pxSize := int(radius*2)*2 + 2 // two pixel rows per cell row
	master := r.gen.Bitmap(kind, 64)
	sprite := texture.Resample(master, pxSize)

	if it.body.HasRing {
		r.drawSprite(buf, texture.Resample(r.gen.Bitmap(texture.KindRing, 64), pxSize*2),
			it.sx, it.sy, alpha*0.8)
	}
	r.drawSprite(buf, sprite, it.sx, it.sy, alpha)
}

// drawPoint renders a sub-cell body as a single glyph
func (r *Bodies) drawPoint(buf *Buffer, it drawItem, alpha float64) {
	glyph := '•'
	tint := RGB{R: 180, G: 190, B: 210}
	switch it.body.Kind {
	case scene.ElementStation:
		glyph = '◆'
		tint = RGB{R: 140, G: 220, B: 240}
	case scene.ElementMarker:
		glyph = '▾'
		tint = RGB{R: 255, G: 100, B: 80}
	}
	x := int(it.sx)
	y := int(it.sy)
	buf.SetFg(x, y, glyph, Scale(tint, alpha), AttrNone)
}

// drawSprite centers a bitmap at fractional cell coordinates, compositing
// two pixel rows per cell through the half-block rune
func (r *Bodies) drawSprite(buf *Buffer, img *image.RGBA, cx, cy float64, alpha float64) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	cellW := w
	cellH := (h + 1) / 2

	x0 := int(cx) - cellW/2
	y0 := int(cy) - cellH/2

	for row := 0; row < cellH; row++ {
		for col := 0; col < cellW; col++ {
			topR, topA := samplePx(img, col, row*2)
			botR, botA := samplePx(img, col, row*2+1)
			if topA <= 0.01 && botA <= 0.01 {
				continue
			}

			x := x0 + col
			y := y0 + row
			prev := buf.Cell(x, y)
			top := Blend(prev.Fg, topR, topA*alpha)
			bot := Blend(prev.Bg, botR, botA*alpha)
			buf.HalfBlock(x, y, top, bot)
		}
	}
}

func samplePx(img *image.RGBA, x, y int) (RGB, float64) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return RGBBlack, 0
	}
	i := img.PixOffset(x, y)
	return RGB{R: img.Pix[i+0], G: img.Pix[i+1], B: img.Pix[i+2]}, float64(img.Pix[i+3]) / 255.0
}
