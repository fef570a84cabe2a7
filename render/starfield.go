package render

import (
	"github.com/icariumtech/mothership-console/texture"
)

// starHash is a cheap 2D integer hash, stable across frames so the
// starfield never shimmers with camera motion
func starHash(x, y, seed int) uint32 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663 ^ uint32(seed)*83492791
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}

// nebulaMaster is the cached procedural texture's pixel size; stretched
// across the viewport at sample time
const nebulaMaster = 128

// Starfield draws the static background: hashed point stars plus a nebula
// wash screen-blended behind them. Seeded per tier so each map has its own
// sky.
type Starfield struct {
	gen     *texture.Generator
	seed    int
	density uint32
}

// NewStarfield creates a starfield; density is the 1-in-N chance a cell
// holds a star
func NewStarfield(gen *texture.Generator, density int) *Starfield {
	if density <= 0 {
		density = 28
	}
	return &Starfield{gen: gen, density: uint32(density)}
}

// Reseed re-rolls the sky, called when the active tier changes
func (s *Starfield) Reseed(seed int) {
	if seed < 0 {
		seed = -seed
	}
	s.seed = seed
}

func (s *Starfield) Render(ctx *Context, buf *Buffer) {
	if ctx.Opacity <= 0 {
		return
	}

	s.drawNebula(ctx, buf)

	dim := ctx.Opacity
	if ctx.Paused {
		dim *= 0.45
	}

	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			h := starHash(x, y, s.seed)
			if h%s.density != 0 {
				continue
			}
			brightness := 0.25 + float64((h>>8)%160)/255.0
			c := Scale(RGBWhite, brightness*dim)

			r := '·'
			if h>>16&7 == 0 {
				r = '+'
			} else if h>>16&7 == 1 {
				r = '✦'
			}
			buf.SetFg(x, y, r, c, AttrNone)
		}
	}
}

// drawNebula lays a low-frequency color wash under the stars, sampled from
// the cached procedural texture stretched across the viewport. The seed
// shifts the sampling window so each tier gets a different slice of it.
func (s *Starfield) drawNebula(ctx *Context, buf *Buffer) {
	dim := ctx.Opacity * 0.6
	if ctx.Paused {
		dim *= 0.45
	}
	if dim <= 0 || ctx.Width == 0 || ctx.Height == 0 {
		return
	}

	img := s.gen.Bitmap(texture.KindNebula, nebulaMaster)
	offX := (s.seed * 37) % nebulaMaster
	offY := (s.seed * 61) % nebulaMaster

	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			px := (x*nebulaMaster/ctx.Width + offX) % nebulaMaster
			py := (y*nebulaMaster/ctx.Height + offY) % nebulaMaster
			i := img.PixOffset(px, py)
			a := float64(img.Pix[i+3]) / 255.0
			c := Scale(RGB{R: img.Pix[i+0], G: img.Pix[i+1], B: img.Pix[i+2]}, dim*a)
			if c == RGBBlack {
				continue
			}
			buf.ScreenBg(x, y, c)
		}
	}
}
