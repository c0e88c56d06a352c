package mathutil

// Vec2 is an integer 2D point.
type Vec2 struct {
	X, Y int
}

// V is shorthand for Vec2{x, y}.
func V(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Cross returns the z component of the 2D cross product a x b.
func (a Vec2) Cross(b Vec2) int {
	return a.X*b.Y - a.Y*b.X
}

// Abs returns |v|.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
