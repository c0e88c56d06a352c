package raster

import (
	"microraster/internal/atlas"
	"microraster/internal/mathutil"
)

// DrawRect queues a solid fill of rect.
func (r *Renderer) DrawRect(rect mathutil.Rect, c Color) {
	r.push(rect, atlas.White, c)
}

// DrawText queues one glyph quad per character of text, starting at pos and
// advancing by each glyph's width. UTF-8 continuation bytes are skipped and
// every other byte is clamped to 127, so any non-ASCII character draws as
// the glyph for 127.
func (r *Renderer) DrawText(text string, pos mathutil.Vec2, c Color) {
	dst := mathutil.R(pos.X, pos.Y, 0, 0)
	for i := 0; i < len(text); i++ {
		ch, ok := glyphByte(text[i])
		if !ok {
			continue
		}
		src := r.atlas.Glyph(ch)
		dst.W = src.W
		dst.H = src.H
		r.push(dst, atlas.Font+int(ch), c)
		dst.X += dst.W
	}
}

// DrawIcon queues icon id centered in rect. Odd leftovers put the extra
// pixel on the right/bottom.
func (r *Renderer) DrawIcon(id int, rect mathutil.Rect, c Color) {
	src, ok := r.atlas.Rect(id)
	if !ok {
		r.stats.Skipped++
		r.contractViolation("unknown icon id %d", id)
		return
	}
	x := rect.X + (rect.W-src.W)/2
	y := rect.Y + (rect.H-src.H)/2
	r.push(mathutil.R(x, y, src.W, src.H), id, c)
}

// TextWidth measures the first maxLen bytes of text (all of it when maxLen
// is negative) with the same byte rules as DrawText. Skipped continuation
// bytes still count toward maxLen.
func (r *Renderer) TextWidth(text string, maxLen int) int {
	return TextWidth(r.atlas, text, maxLen)
}

// TextHeight returns the atlas line height.
func (r *Renderer) TextHeight() int {
	return r.atlas.LineHeight
}

// TextWidth is the renderer-free form of Renderer.TextWidth, for layout code
// that only holds the atlas.
func TextWidth(a *atlas.Atlas, text string, maxLen int) int {
	n := len(text)
	if maxLen >= 0 && maxLen < n {
		n = maxLen
	}
	w := 0
	for i := 0; i < n; i++ {
		ch, ok := glyphByte(text[i])
		if !ok {
			continue
		}
		w += a.Glyph(ch).W
	}
	return w
}

func glyphByte(b byte) (byte, bool) {
	if b&0xc0 == 0x80 {
		return 0, false
	}
	return min(b, 127), true
}
