package raster

import (
	"math/bits"

	"microraster/internal/mathutil"
)

// Circle draws a one-pixel circle outline with a branchless midpoint walk,
// mirroring each first-octant point into all eight octants. Pixels are
// overwritten with c. radius <= 0 draws nothing.
func (r *Renderer) Circle(center mathutil.Vec2, radius int, c Color) {
	if radius <= 0 {
		return
	}
	r.flush()

	v := c.ARGB()
	cx, cy := center.X, center.Y
	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		r.put(cx+x, cy+y, v)
		r.put(cx+y, cy+x, v)
		r.put(cx-y, cy+x, v)
		r.put(cx-x, cy+y, v)
		r.put(cx-x, cy-y, v)
		r.put(cx-y, cy-x, v)
		r.put(cx+y, cy-x, v)
		r.put(cx+x, cy-y, v)

		y++
		// step is 1 when the midpoint fell outside (d >= 0), else 0
		step := (^d >> (bits.UintSize - 1)) & 1
		x -= step
		d += 2*(y-step*x) + 1
	}
}

// FillCircle fills every pixel with dx*dx+dy*dy <= radius*radius, overwriting
// with c. radius <= 0 draws nothing.
func (r *Renderer) FillCircle(center mathutil.Vec2, radius int, c Color) {
	if radius <= 0 {
		return
	}
	r.flush()

	box := mathutil.R(center.X-radius, center.Y-radius, 2*radius+1, 2*radius+1).Intersect(r.clip)
	v := c.ARGB()
	rr := radius * radius
	w := r.fb.Width
	for y := box.Y; y < box.MaxY(); y++ {
		dy := y - center.Y
		for x := box.X; x < box.MaxX(); x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= rr {
				r.fb.Pix[y*w+x] = v
			}
		}
	}
}
