// Package texture synthesizes the bitmaps the renderer samples: star glow,
// lit planet discs, rings, selection reticles. Generation is a pure function
// of (kind, size), memoized so every body sharing a shape shares one bitmap.
package texture

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// Kind identifies a procedural texture shape
type Kind string

const (
	KindStar         Kind = "star"
	KindPlanet       Kind = "planet"
	KindMoon         Kind = "moon"
	KindStation      Kind = "station"
	KindRing         Kind = "ring"
	KindReticleInner Kind = "reticle-inner-ring"
	KindReticleOuter Kind = "reticle-outer-ring"
	KindMarker       Kind = "marker"
	KindNebula       Kind = "nebula"
)

type texKey struct {
	kind Kind
	size int
}

// Generator memoizes procedural bitmaps per (kind, size)
type Generator struct {
	mu    sync.Mutex
	cache map[texKey]*image.RGBA
}

// NewGenerator creates an empty texture cache
func NewGenerator() *Generator {
	return &Generator{cache: make(map[texKey]*image.RGBA)}
}

// Bitmap returns the memoized bitmap for kind at the given pixel size.
// Deterministic: identical inputs always produce the identical instance.
// Unknown kinds are programmer errors and panic.
func (g *Generator) Bitmap(kind Kind, size int) *image.RGBA {
	if size < 2 {
		size = 2
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := texKey{kind: kind, size: size}
	if img, ok := g.cache[key]; ok {
		return img
	}

	img := synthesize(kind, size)
	g.cache[key] = img
	return img
}

// Resample returns a bilinear-scaled copy at the target size, used when the
// projected on-screen size differs from the cached master
func Resample(src *image.RGBA, size int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func synthesize(kind Kind, size int) *image.RGBA {
	switch kind {
	case KindStar:
		return radialGlow(size, colorful.Color{R: 1.0, G: 0.92, B: 0.70}, 2.2)
	case KindPlanet:
		return litSphere(size, colorful.Color{R: 0.55, G: 0.42, B: 0.30}, colorful.Color{R: 0.20, G: 0.28, B: 0.38})
	case KindMoon:
		return litSphere(size, colorful.Color{R: 0.62, G: 0.62, B: 0.66}, colorful.Color{R: 0.25, G: 0.25, B: 0.30})
	case KindStation:
		return radialGlow(size, colorful.Color{R: 0.70, G: 0.95, B: 1.0}, 3.5)
	case KindRing:
		return annulus(size, 0.62, 0.98, colorful.Color{R: 0.75, G: 0.70, B: 0.58}, 0.55)
	case KindReticleInner:
		return annulus(size, 0.80, 0.92, colorful.Color{R: 1.0, G: 0.75, B: 0.20}, 1.0)
	case KindReticleOuter:
		return annulus(size, 0.92, 1.0, colorful.Color{R: 1.0, G: 0.60, B: 0.10}, 0.7)
	case KindMarker:
		return diamond(size, colorful.Color{R: 1.0, G: 0.35, B: 0.25})
	case KindNebula:
		return nebula(size)
	default:
		panic(fmt.Sprintf("texture: unknown kind %q", kind))
	}
}

// radialGlow is an exponential falloff disc: bright core, soft halo
func radialGlow(size int, tint colorful.Color, falloff float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) - c) / c
			dy := (float64(y) - c) / c
			d := math.Sqrt(dx*dx + dy*dy)
			if d > 1 {
				continue
			}
			intensity := math.Exp(-falloff * d * d)
			setPixel(img, x, y, tint, intensity)
		}
	}
	return img
}

// litSphere shades a disc as a sphere lit from the upper left, blending a
// day tint into a shadow tint across the terminator
func litSphere(size int, day, shadow colorful.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2

	// Light direction, normalized
	lx, ly, lz := -0.55, -0.55, 0.62
	mag := math.Sqrt(lx*lx + ly*ly + lz*lz)
	lx, ly, lz = lx/mag, ly/mag, lz/mag

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) - c) / c
			dy := (float64(y) - c) / c
			rr := dx*dx + dy*dy
			if rr > 1 {
				continue
			}
			nz := math.Sqrt(1 - rr)
			lambert := dx*lx + dy*ly + nz*lz
			if lambert < 0 {
				lambert = 0
			}
			col := shadow.BlendRgb(day, lambert)
			setPixel(img, x, y, col, 1.0)
		}
	}
	return img
}

// annulus draws a filled ring between inner and outer fractional radii
func annulus(size int, inner, outer float64, tint colorful.Color, alpha float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) - c) / c
			dy := (float64(y) - c) / c
			d := math.Sqrt(dx*dx + dy*dy)
			if d < inner || d > outer {
				continue
			}
			setPixel(img, x, y, tint, alpha)
		}
	}
	return img
}

// diamond is the surface-marker glyph: a filled rhombus
func diamond(size int, tint colorful.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := (math.Abs(float64(x)-c) + math.Abs(float64(y)-c)) / c
			if d > 1 {
				continue
			}
			setPixel(img, x, y, tint, 1.0-0.4*d)
		}
	}
	return img
}

// nebula layers deterministic sinusoidal wisps, used as the galaxy backdrop
func nebula(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	deep := colorful.Color{R: 0.08, G: 0.04, B: 0.18}
	hot := colorful.Color{R: 0.55, G: 0.15, B: 0.45}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size)
			v := float64(y) / float64(size)
			w := math.Sin(u*7.3+v*3.1) * math.Sin(u*2.9-v*5.7) * math.Sin((u+v)*4.3)
			w = (w + 1) / 2
			col := deep.BlendRgb(hot, w*w)
			setPixel(img, x, y, col, 0.35+0.3*w)
		}
	}
	return img
}

func setPixel(img *image.RGBA, x, y int, c colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	r, gg, b := c.RGB255()
	i := img.PixOffset(x, y)
	img.Pix[i+0] = r
	img.Pix[i+1] = gg
	img.Pix[i+2] = b
	img.Pix[i+3] = uint8(alpha * 255)
}
