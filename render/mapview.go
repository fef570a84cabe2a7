package render

import (
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"
)

var mapBorder = RGB{R: 200, G: 170, B: 90}

// MapOverlay presents an encounter-map deck plan over the scene: the image
// scaled to the viewport through half-block cells, with the deck name in
// the border. Toggled from the keyboard; hidden is free.
type MapOverlay struct {
	mu      sync.Mutex
	img     image.Image
	title   string
	visible bool

	scaled *image.RGBA
	sw, sh int
}

func NewMapOverlay() *MapOverlay {
	return &MapOverlay{}
}

// Show installs a deck image and makes the overlay visible
func (m *MapOverlay) Show(img image.Image, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.img = img
	m.title = title
	m.scaled = nil
	m.visible = true
}

// Hide removes the overlay
func (m *MapOverlay) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
}

// Toggle flips visibility, keeping the last shown deck
func (m *MapOverlay) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.img == nil {
		return false
	}
	m.visible = !m.visible
	return m.visible
}

func (m *MapOverlay) IsVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible && m.img != nil
}

func (m *MapOverlay) Render(ctx *Context, buf *Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.visible || m.img == nil {
		return
	}

	// Overlay viewport with a one-cell margin
	x0, y0 := 2, 1
	w := ctx.Width - 4
	h := ctx.Height - 3
	if w < 10 || h < 6 {
		return
	}

	m.rescale(w-2, (h-2)*2)

	drawBox(buf, x0, y0, w, h, mapBorder)
	if m.title != "" {
		buf.Text(x0+2, y0, " "+clip(m.title, w-6)+" ", mapBorder, AttrBold)
	}

	img := m.scaled
	iw := img.Bounds().Dx()
	ih := img.Bounds().Dy()
	offX := x0 + 1 + (w-2-iw)/2
	offY := y0 + 1 + (h-2-(ih+1)/2)/2

	for row := 0; row*2 < ih; row++ {
		for col := 0; col < iw; col++ {
			top, ta := samplePx(img, col, row*2)
			bot, ba := samplePx(img, col, row*2+1)
			if ta <= 0.01 && ba <= 0.01 {
				continue
			}
			buf.HalfBlock(offX+col, offY+row, top, bot)
		}
	}
}

// rescale fits the deck image into maxW x maxH pixels preserving aspect,
// cached until the viewport or image changes
func (m *MapOverlay) rescale(maxW, maxH int) {
	if m.scaled != nil && m.sw == maxW && m.sh == maxH {
		return
	}
	m.sw = maxW
	m.sh = maxH

	b := m.img.Bounds()
	iw := float64(b.Dx())
	ih := float64(b.Dy())

	// Cells are twice as tall as wide; the half-block pixel grid already
	// doubles vertically, so only the horizontal stretch remains
	scaleW := float64(maxW) / (iw * cellAspect)
	scaleH := float64(maxH) / ih
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	dw := int(iw * scale * cellAspect)
	dh := int(ih * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), m.img, b, xdraw.Src, nil)
	m.scaled = dst
}
