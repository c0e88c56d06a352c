package raster

import "microraster/internal/mathutil"

// Nearest-neighbor atlas addressing. A destination pixel px inside dst maps
// to src.X + floor((px-dst.X) * src.W / dst.W), computed in integers so the
// result is exact; 1:1 quads sample texel for texel.

func (r *Renderer) sampleCol(src, dst mathutil.Rect, px int) int {
	u := (px - dst.X) * src.W / dst.W
	if u < 0 || u >= src.W {
		r.contractViolation("atlas column %d outside entry width %d", u, src.W)
		u = clampIndex(u, src.W)
	}
	return src.X + u
}

func (r *Renderer) sampleRow(src, dst mathutil.Rect, py int) int {
	v := (py - dst.Y) * src.H / dst.H
	if v < 0 || v >= src.H {
		r.contractViolation("atlas row %d outside entry height %d", v, src.H)
		v = clampIndex(v, src.H)
	}
	return src.Y + v
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
