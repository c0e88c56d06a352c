// Package atlas holds the read-only coverage texture consumed by the
// rasterizer: one 8-bit-per-pixel image plus a table mapping symbolic ids to
// rectangles inside it.
package atlas

import (
	"errors"
	"fmt"

	"microraster/internal/mathutil"
)

// Reserved ids. Font glyphs occupy Font+0 .. Font+127.
const (
	IconClose = 1 + iota
	IconCheck
	IconCollapsed
	IconExpanded
	White
	Font

	// GlyphCount is the number of font entries following Font.
	GlyphCount = 128
	// MaxID is one past the last reserved id.
	MaxID = Font + GlyphCount
)

// DefaultLineHeight matches the line height the widget layer expects.
const DefaultLineHeight = 18

// ErrOutOfBounds is returned when a table entry points outside the texture.
var ErrOutOfBounds = errors.New("atlas: rect out of bounds")

// Atlas is an 8-bit coverage texture plus its id table. Treat it as read-only
// once built; it is shared across renderers without locking.
type Atlas struct {
	Width      int
	Height     int
	Pix        []byte // coverage, len = Width*Height, row-major
	LineHeight int

	rects map[int]mathutil.Rect
}

// New allocates an empty (all-zero) atlas of the given size.
func New(w, h int) *Atlas {
	return &Atlas{
		Width:      w,
		Height:     h,
		Pix:        make([]byte, w*h),
		LineHeight: DefaultLineHeight,
		rects:      make(map[int]mathutil.Rect),
	}
}

// Set assigns the rect for id.
func (a *Atlas) Set(id int, r mathutil.Rect) {
	a.rects[id] = r
}

// Rect returns the rect registered for id.
func (a *Atlas) Rect(id int) (mathutil.Rect, bool) {
	r, ok := a.rects[id]
	return r, ok
}

// Glyph returns the rect of the font glyph for codepoint c (0..127).
// Unknown glyphs come back as a zero rect, which draws and measures as nothing.
func (a *Atlas) Glyph(c byte) mathutil.Rect {
	return a.rects[Font+int(c)]
}

// At returns the coverage byte at (x, y). The caller guarantees bounds.
func (a *Atlas) At(x, y int) byte {
	return a.Pix[y*a.Width+x]
}

// IDs returns the registered ids, unordered.
func (a *Atlas) IDs() []int {
	ids := make([]int, 0, len(a.rects))
	for id := range a.rects {
		ids = append(ids, id)
	}
	return ids
}

// Validate checks that every rect lies within the texture and that the solid
// white entry exists.
func (a *Atlas) Validate() error {
	if len(a.Pix) != a.Width*a.Height {
		return fmt.Errorf("atlas: pixel buffer is %d bytes, want %dx%d", len(a.Pix), a.Width, a.Height)
	}
	bounds := mathutil.R(0, 0, a.Width, a.Height)
	for id, r := range a.rects {
		if r.W < 0 || r.H < 0 || !bounds.ContainsRect(r) {
			return fmt.Errorf("%w: id %d rect %+v in %dx%d", ErrOutOfBounds, id, r, a.Width, a.Height)
		}
	}
	if _, ok := a.rects[White]; !ok {
		return errors.New("atlas: missing white entry")
	}
	return nil
}
