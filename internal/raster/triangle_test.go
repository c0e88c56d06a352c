package raster

import (
	"testing"

	"microraster/internal/mathutil"

	"github.com/stretchr/testify/assert"
)

func TestTriangleFillsFrontFacing(t *testing.T) {
	r, fb := newTestRenderer(t, 6, 6)
	a, b, c := mathutil.V(0, 0), mathutil.V(4, 0), mathutil.V(0, 4)
	r.Triangle(a, White, b, White, c, White)

	lit := litPixels(fb, White)
	assert.Len(t, lit, 15)
	for p := range lit {
		assert.LessOrEqual(t, p.X+p.Y, 4, "pixel %v outside the triangle", p)
	}
}

func TestTriangleBackFacingIsCulled(t *testing.T) {
	r, fb := newTestRenderer(t, 6, 6)
	before := snapshot(fb)
	a, b, c := mathutil.V(0, 0), mathutil.V(4, 0), mathutil.V(0, 4)

	r.Triangle(a, White, c, White, b, White)
	assert.Equal(t, before, fb.Pix, "negative signed area draws nothing")

	r.Triangle(a, White, b, White, c, White)
	assert.NotEqual(t, before, fb.Pix, "reversed winding fills")
}

func TestTriangleDegenerateIsNoop(t *testing.T) {
	r, fb := newTestRenderer(t, 6, 6)
	before := snapshot(fb)
	r.Triangle(mathutil.V(0, 0), White, mathutil.V(2, 2), White, mathutil.V(4, 4), White)
	r.Triangle(mathutil.V(1, 1), White, mathutil.V(1, 1), White, mathutil.V(1, 1), White)
	assert.Equal(t, before, fb.Pix)
}

func TestTriangleGouraudVertices(t *testing.T) {
	r, fb := newTestRenderer(t, 12, 12)
	a, b, c := mathutil.V(0, 0), mathutil.V(10, 0), mathutil.V(0, 10)
	r.Triangle(a, red, b, green, c, blue)

	assert.Equal(t, red, fb.At(0, 0))
	assert.Equal(t, green, fb.At(10, 0))
	assert.Equal(t, blue, fb.At(0, 10))

	// midpoint of edge a-b is half red, half green
	mid := fb.At(5, 0)
	assert.Equal(t, uint8(127), mid.R)
	assert.Equal(t, uint8(127), mid.G)
	assert.Equal(t, uint8(0), mid.B)
}

func TestTriangleBlendsTranslucent(t *testing.T) {
	r, fb := newTestRenderer(t, 6, 6)
	c := RGBA(255, 255, 255, 128)
	r.Triangle(mathutil.V(0, 0), c, mathutil.V(4, 0), c, mathutil.V(0, 4), c)
	assert.Equal(t, uint8(128), fb.At(1, 1).R)
	assert.Equal(t, uint8(255), fb.At(1, 1).A)
}

func TestTriangleClipped(t *testing.T) {
	r, fb := newTestRenderer(t, 8, 8)
	r.SetClipRect(mathutil.R(2, 2, 2, 2))
	r.Triangle(mathutil.V(-10, -10), White, mathutil.V(20, -10), White, mathutil.V(-10, 20), White)

	lit := litPixels(fb, White)
	assert.Len(t, lit, 4)
	for p := range lit {
		assert.True(t, r.ClipRect().Contains(p.X, p.Y))
	}
}
