package raster

import (
	"microraster/internal/atlas"
	"microraster/internal/mathutil"
)

// flush composites every queued quad in submission order, then empties the
// queue.
func (r *Renderer) flush() {
	n := r.queue.Len()
	if n == 0 {
		return
	}
	for _, cmd := range r.queue.Commands() {
		r.composite(cmd)
	}
	r.queue.Reset()
	r.stats.Flushes++
	r.log.Debug("raster: flush", "commands", n, "clip", r.clip)
}

func (r *Renderer) composite(cmd Command) {
	area := cmd.Dst.Intersect(r.clip)
	if area.Empty() {
		return
	}
	if r.strict && !(r.clip.ContainsRect(area) && cmd.Dst.ContainsRect(area)) {
		r.contractViolation("composite region %+v escapes dst %+v or clip %+v", area, cmd.Dst, r.clip)
	}

	if cmd.Atlas == atlas.White {
		r.fillSolid(area, cmd.Color)
		return
	}

	src, ok := r.atlas.Rect(cmd.Atlas)
	if !ok {
		r.stats.Skipped++
		r.contractViolation("unknown atlas id %d", cmd.Atlas)
		return
	}
	if src.Empty() {
		return
	}

	w := r.fb.Width
	pix := r.fb.Pix
	c := cmd.Color
	for y := area.Y; y < area.MaxY(); y++ {
		sy := r.sampleRow(src, cmd.Dst, y)
		row := y * w
		for x := area.X; x < area.MaxX(); x++ {
			cov := r.atlas.At(r.sampleCol(src, cmd.Dst, x), sy)
			a := mul8(c.A, cov)
			switch a {
			case 0:
			case 255:
				pix[row+x] = c.ARGB()
			default:
				pix[row+x] = blend(pix[row+x], c, a)
			}
		}
	}
}

// fillSolid paints area with c, skipping texture sampling.
func (r *Renderer) fillSolid(area mathutil.Rect, c Color) {
	if c.A == 0 {
		return
	}
	w := r.fb.Width
	pix := r.fb.Pix
	v := c.ARGB()
	for y := area.Y; y < area.MaxY(); y++ {
		row := pix[y*w+area.X : y*w+area.MaxX()]
		if c.A == 255 {
			for i := range row {
				row[i] = v
			}
			continue
		}
		for i := range row {
			row[i] = blend(row[i], c, c.A)
		}
	}
}
