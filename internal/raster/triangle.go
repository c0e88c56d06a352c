package raster

import "microraster/internal/mathutil"

// Triangle fills the triangle (a, b, c) with Gouraud shading: each pixel's
// color interpolates ca, cb and cc by barycentric weight.
//
// Culling is single-sided. The signed area (b-a) x (c-a) must be positive
// in screen space (y down), which is clockwise on screen; negative
// (back-facing) and zero (degenerate) triangles draw nothing.
func (r *Renderer) Triangle(a mathutil.Vec2, ca Color, b mathutil.Vec2, cb Color, c mathutil.Vec2, cc Color) {
	area := b.Sub(a).Cross(c.Sub(a))
	if area <= 0 {
		return
	}
	r.flush()

	minX := min(a.X, b.X, c.X)
	minY := min(a.Y, b.Y, c.Y)
	maxX := max(a.X, b.X, c.X)
	maxY := max(a.Y, b.Y, c.Y)
	box := mathutil.R(minX, minY, maxX-minX+1, maxY-minY+1).Intersect(r.clip)
	if box.Empty() {
		return
	}

	// Edge functions are affine in p, so step them incrementally.
	// w0 is opposite a, w1 opposite b, w2 opposite c; w0+w1+w2 == area.
	p := mathutil.V(box.X, box.Y)
	row0 := edge(b, c, p)
	row1 := edge(c, a, p)
	row2 := edge(a, b, p)
	// d/dx and d/dy of edge(u, v, p) = (v-u) x (p-u)
	dx0, dy0 := -(c.Y - b.Y), c.X-b.X
	dx1, dy1 := -(a.Y - c.Y), a.X-c.X
	dx2, dy2 := -(b.Y - a.Y), b.X-a.X

	w := r.fb.Width
	pix := r.fb.Pix
	for y := box.Y; y < box.MaxY(); y++ {
		w0, w1, w2 := row0, row1, row2
		for x := box.X; x < box.MaxX(); x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				col := Color{
					R: lerp3(w0, w1, w2, ca.R, cb.R, cc.R, area),
					G: lerp3(w0, w1, w2, ca.G, cb.G, cc.G, area),
					B: lerp3(w0, w1, w2, ca.B, cb.B, cc.B, area),
					A: lerp3(w0, w1, w2, ca.A, cb.A, cc.A, area),
				}
				i := y*w + x
				switch col.A {
				case 0:
				case 255:
					pix[i] = col.ARGB()
				default:
					pix[i] = blend(pix[i], col, col.A)
				}
			}
			w0 += dx0
			w1 += dx1
			w2 += dx2
		}
		row0 += dy0
		row1 += dy1
		row2 += dy2
	}
}

// edge returns (v-u) x (p-u): positive when p is on the inner side of u->v
// for a positively wound triangle.
func edge(u, v, p mathutil.Vec2) int {
	return v.Sub(u).Cross(p.Sub(u))
}

func lerp3(w0, w1, w2 int, c0, c1, c2 uint8, area int) uint8 {
	return uint8((w0*int(c0) + w1*int(c1) + w2*int(c2)) / area)
}
