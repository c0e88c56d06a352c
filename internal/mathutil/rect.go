package mathutil

// Rect is an integer axis-aligned rectangle (value type).
type Rect struct {
	X, Y, W, H int
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.W }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r (half-open on both axes).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ContainsRect reports whether o lies fully inside r. Empty rects are contained everywhere.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Intersect returns the overlap of r and o. Disjoint rects give a zero-size
// rect anchored at the clamped origin.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ClampTo clamps r into [0,w) x [0,h). A rect with no overlap becomes the
// zero Rect.
func (r Rect) ClampTo(w, h int) Rect {
	c := r.Intersect(Rect{W: w, H: h})
	if c.Empty() {
		return Rect{}
	}
	return c
}
