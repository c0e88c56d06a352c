package raster

import "microraster/internal/mathutil"

// The immediate primitives below bypass the quad queue. Each one flushes
// first so earlier quads stay underneath it, then writes straight into the
// framebuffer, clipped per pixel.

// put overwrites one pixel if it lies inside the clip.
func (r *Renderer) put(x, y int, v uint32) {
	if !r.clip.Contains(x, y) {
		return
	}
	r.fb.Pix[y*r.fb.Width+x] = v
}

// blendAt composites c at alpha a onto one pixel if it lies inside the clip.
func (r *Renderer) blendAt(x, y int, c Color, a uint8) {
	if a == 0 || !r.clip.Contains(x, y) {
		return
	}
	i := y*r.fb.Width + x
	if a == 255 {
		r.fb.Pix[i] = c.ARGB()
		return
	}
	r.fb.Pix[i] = blend(r.fb.Pix[i], c, a)
}

// Line draws a one-pixel Bresenham line from (x0,y0) to (x1,y1) inclusive,
// overwriting pixels with c. A zero-length line draws nothing.
func (r *Renderer) Line(x0, y0, x1, y1 int, c Color) {
	if x0 == x1 && y0 == y1 {
		return
	}
	r.flush()

	v := c.ARGB()
	dx := mathutil.Abs(x1 - x0)
	dy := -mathutil.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.put(x0, y0, v)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// WuLine draws an anti-aliased line with Wu's algorithm. Every step along
// the major axis splits 255 units of coverage between the two pixels that
// straddle the exact minor coordinate; both are alpha blended. A zero-length
// line draws nothing.
func (r *Renderer) WuLine(x0, y0, x1, y1 int, c Color) {
	if x0 == x1 && y0 == y1 {
		return
	}
	r.flush()

	steep := mathutil.Abs(y1-y0) > mathutil.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	plot := func(major, minor int, w uint8) {
		if steep {
			r.blendAt(minor, major, c, mul8(c.A, w))
		} else {
			r.blendAt(major, minor, c, mul8(c.A, w))
		}
	}

	dx := x1 - x0
	dy := y1 - y0
	for x := x0; x <= x1; x++ {
		base, lo, hi := wuStep(y0, dy, dx, x-x0)
		plot(x, base, lo)
		plot(x, base+1, hi)
	}
}

// wuStep returns the minor coordinate floor(y0 + dy*t/dx) and the coverage
// weights of that pixel and the next one. The weights always sum to 255.
func wuStep(y0, dy, dx, t int) (base int, lo, hi uint8) {
	num := y0*dx + dy*t
	base = floorDiv(num, dx)
	rem := num - base*dx // in [0, dx)
	w := (rem*255 + dx/2) / dx
	return base, uint8(255 - w), uint8(w)
}

// floorDiv divides rounding toward negative infinity. d must be positive.
func floorDiv(n, d int) int {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}
