package scene

import "microraster/internal/raster"

// Replay issues the scene's commands against r in order, then presents.
// The background, if any, is cleared first.
func (s *Scene) Replay(r *raster.Renderer) {
	if s.Background != nil {
		r.Clear(*s.Background)
	}
	for i := range s.Commands {
		s.Commands[i].Apply(r)
	}
	r.Present()
}

// Apply issues one command.
func (c *Command) Apply(r *raster.Renderer) {
	col := c.Colors[0]
	switch c.Op {
	case OpRect:
		r.DrawRect(c.Rect, col)
	case OpText:
		r.DrawText(c.Text, c.Pos, col)
	case OpIcon:
		r.DrawIcon(c.Icon, c.Rect, col)
	case OpClip:
		r.SetClipRect(c.Rect)
	case OpClear:
		r.Clear(col)
	case OpLine:
		r.Line(c.Pos.X, c.Pos.Y, c.To.X, c.To.Y, col)
	case OpWuLine:
		r.WuLine(c.Pos.X, c.Pos.Y, c.To.X, c.To.Y, col)
	case OpTriangle:
		r.Triangle(c.Points[0], c.Colors[0], c.Points[1], c.Colors[1], c.Points[2], c.Colors[2])
	case OpCircle:
		r.Circle(c.Pos, c.Radius, col)
	case OpFillCircle:
		r.FillCircle(c.Pos, c.Radius, col)
	}
}
