package atlas

import (
	"image"
	"sync"

	"microraster/internal/mathutil"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Built-in atlas layout.
//
//	row 0:  four 16x16 icons, then a 3x3 white patch
//	row 16: printable ASCII glyphs, 16 per row
const (
	builtinWidth  = 128
	builtinHeight = 96

	iconSize     = 16
	whiteSize    = 3
	glyphTop     = iconSize
	glyphsPerRow = 16
)

var (
	builtinOnce  sync.Once
	builtinAtlas *Atlas
)

// Default returns the built-in atlas, generated once from the 7x13 basic
// font and vector-rasterized icons. The returned atlas is shared; do not
// modify it.
func Default() *Atlas {
	builtinOnce.Do(func() {
		builtinAtlas = Build()
	})
	return builtinAtlas
}

// Build generates a fresh copy of the built-in atlas.
func Build() *Atlas {
	a := New(builtinWidth, builtinHeight)
	dst := &image.Alpha{
		Pix:    a.Pix,
		Stride: a.Width,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}

	drawIcons(a, dst)

	wx := 4 * iconSize
	for y := 0; y < whiteSize; y++ {
		for x := 0; x < whiteSize; x++ {
			a.Pix[y*a.Width+wx+x] = 0xff
		}
	}
	a.Set(White, mathutil.R(wx, 0, whiteSize, whiteSize))

	drawGlyphs(a, dst)
	return a
}

// drawGlyphs lays out codepoints 32..127. Control characters get zero rects.
// Codepoint 127 is outside the face's ASCII range and renders as the face's
// replacement glyph, which makes it a visible fallback for non-ASCII bytes.
func drawGlyphs(a *Atlas, dst *image.Alpha) {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Ascent + face.Descent

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
	}
	for c := 32; c < GlyphCount; c++ {
		n := c - 32
		x := (n % glyphsPerRow) * cellW
		y := glyphTop + (n/glyphsPerRow)*cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(rune(c)))
		a.Set(Font+c, mathutil.R(x, y, cellW, cellH))
	}
	for c := 0; c < 32; c++ {
		a.Set(Font+c, mathutil.Rect{})
	}
}

type point struct{ x, y float32 }

func drawIcons(a *Atlas, dst *image.Alpha) {
	icons := []struct {
		id    int
		polys [][]point
	}{
		{IconClose, [][]point{
			{{3, 4}, {4, 3}, {13, 12}, {12, 13}},
			{{12, 3}, {13, 4}, {4, 13}, {3, 12}},
		}},
		{IconCheck, [][]point{
			{{3, 8}, {5, 6}, {7, 8}, {12, 3}, {14, 5}, {7, 12}},
		}},
		{IconCollapsed, [][]point{
			{{5, 3}, {12, 8}, {5, 13}},
		}},
		{IconExpanded, [][]point{
			{{3, 5}, {13, 5}, {8, 12}},
		}},
	}

	z := vector.NewRasterizer(iconSize, iconSize)
	for i, icon := range icons {
		z.Reset(iconSize, iconSize)
		for _, poly := range icon.polys {
			z.MoveTo(poly[0].x, poly[0].y)
			for _, p := range poly[1:] {
				z.LineTo(p.x, p.y)
			}
			z.ClosePath()
		}
		x := i * iconSize
		r := image.Rect(x, 0, x+iconSize, iconSize)
		z.Draw(dst, r, image.Opaque, image.Point{})
		a.Set(icon.id, mathutil.R(x, 0, iconSize, iconSize))
	}
}
