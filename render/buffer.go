package render

import (
	"github.com/gdamore/tcell/v2"
)

// Attr is the subset of text attributes the console uses
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrDim
	AttrReverse
)

// Cell is one compositor cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// upperHalfBlock paints two vertically stacked colors into one cell
const upperHalfBlock = '▀'

// Buffer is a compositor backed by a flat cell array with dirty tracking.
// Untouched cells flush as the default space-on-black, so renderers only
// pay for what they draw.
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocating only when capacity grows
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at x,y; zero Cell out of bounds. Test hook.
func (b *Buffer) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Touched reports whether the cell was drawn this frame
func (b *Buffer) Touched(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.touched[y*b.width+x]
}

// Set writes a full cell, opaque replace. The hot path for text and UI.
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg, Attrs: attrs}
	b.touched[idx] = true
}

// SetFg writes rune and foreground, preserving the existing background
func (b *Buffer) SetFg(x, y int, r rune, fg RGB, attrs Attr) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
	b.touched[idx] = true
}

// BlendBg alpha-composites a color onto the cell background
func (b *Buffer) BlendBg(x, y int, bg RGB, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = Blend(b.cells[idx].Bg, bg, alpha)
	b.touched[idx] = true
}

// ScreenBg screen-blends a color onto the cell background
func (b *Buffer) ScreenBg(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = Screen(b.cells[idx].Bg, bg)
	b.touched[idx] = true
}

// HalfBlock paints two vertically stacked colors into one cell using the
// upper half block, doubling effective vertical resolution for imagery
func (b *Buffer) HalfBlock(x, y int, top, bottom RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: upperHalfBlock, Fg: top, Bg: bottom}
	b.touched[idx] = true
}

// Text writes a string left to right, clipped at the buffer edge
func (b *Buffer) Text(x, y int, s string, fg RGB, attrs Attr) {
	col := x
	for _, r := range s {
		if col >= b.width {
			return
		}
		b.SetFg(col, y, r, fg, attrs)
		col++
	}
}

// Flush pushes the composed frame to the terminal
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			if !b.touched[idx] {
				screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			c := b.cells[idx]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B))).
				Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
			if c.Attrs&AttrBold != 0 {
				style = style.Bold(true)
			}
			if c.Attrs&AttrDim != 0 {
				style = style.Dim(true)
			}
			if c.Attrs&AttrReverse != 0 {
				style = style.Reverse(true)
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
