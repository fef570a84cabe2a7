package render

import "testing"

func TestBufferSetAndClear(t *testing.T) {
	b := NewBuffer(10, 4)

	b.Set(3, 2, 'X', RGBWhite, RGBBlack, AttrBold)
	c := b.Cell(3, 2)
	if c.Rune != 'X' || c.Fg != RGBWhite || c.Attrs != AttrBold {
		t.Errorf("cell = %+v", c)
	}
	if !b.Touched(3, 2) {
		t.Errorf("cell not marked touched")
	}
	if b.Touched(0, 0) {
		t.Errorf("untouched cell marked touched")
	}

	b.Clear()
	if b.Touched(3, 2) {
		t.Errorf("touched survived clear")
	}
	if got := b.Cell(3, 2); got != (Cell{}) {
		t.Errorf("cell survived clear: %+v", got)
	}
}

func TestBufferOutOfBoundsIgnored(t *testing.T) {
	b := NewBuffer(5, 5)
	b.Set(-1, 0, 'X', RGBWhite, RGBBlack, AttrNone)
	b.Set(5, 0, 'X', RGBWhite, RGBBlack, AttrNone)
	b.Set(0, 99, 'X', RGBWhite, RGBBlack, AttrNone)
	b.HalfBlock(99, 99, RGBWhite, RGBWhite)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if b.Touched(x, y) {
				t.Fatalf("out-of-bounds write leaked to %d,%d", x, y)
			}
		}
	}
}

func TestBufferHalfBlock(t *testing.T) {
	b := NewBuffer(4, 4)
	top := RGB{R: 200, G: 0, B: 0}
	bot := RGB{R: 0, G: 0, B: 200}
	b.HalfBlock(1, 1, top, bot)

	c := b.Cell(1, 1)
	if c.Rune != upperHalfBlock {
		t.Errorf("rune = %q", c.Rune)
	}
	if c.Fg != top || c.Bg != bot {
		t.Errorf("colors = %+v", c)
	}
}

func TestBufferResizePreservesNothing(t *testing.T) {
	b := NewBuffer(8, 8)
	b.Set(7, 7, 'X', RGBWhite, RGBBlack, AttrNone)
	b.Resize(16, 4)

	if b.Width() != 16 || b.Height() != 4 {
		t.Errorf("size = %dx%d", b.Width(), b.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			if b.Touched(x, y) {
				t.Fatalf("stale cell after resize at %d,%d", x, y)
			}
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB{R: 10, G: 20, B: 30}
	c := RGB{R: 200, G: 100, B: 50}

	if got := Blend(a, c, 0); got != a {
		t.Errorf("alpha 0 = %+v", got)
	}
	if got := Blend(a, c, 1); got != c {
		t.Errorf("alpha 1 = %+v", got)
	}
	mid := Blend(a, c, 0.5)
	if mid.R < 100 || mid.R > 110 {
		t.Errorf("midpoint R = %d", mid.R)
	}
}

func TestAddSaturates(t *testing.T) {
	c := Add(RGB{R: 200, G: 200, B: 200}, RGB{R: 100, G: 10, B: 100})
	if c.R != 255 || c.B != 255 {
		t.Errorf("add did not saturate: %+v", c)
	}
	if c.G != 210 {
		t.Errorf("G = %d, want 210", c.G)
	}
}

func TestScaleClamps(t *testing.T) {
	if got := Scale(RGB{R: 200, G: 200, B: 200}, 2.0); got != RGBWhite {
		t.Errorf("scale 2.0 = %+v", got)
	}
	if got := Scale(RGBWhite, 0); got != RGBBlack {
		t.Errorf("scale 0 = %+v", got)
	}
}

func TestTextClipsAtEdge(t *testing.T) {
	b := NewBuffer(5, 1)
	b.Text(3, 0, "ABCDEF", RGBWhite, AttrNone)

	if b.Cell(3, 0).Rune != 'A' || b.Cell(4, 0).Rune != 'B' {
		t.Errorf("text not written")
	}
	// Nothing beyond the edge, nothing wrapped
	if b.Cell(0, 0).Rune != 0 {
		t.Errorf("text wrapped around")
	}
}
