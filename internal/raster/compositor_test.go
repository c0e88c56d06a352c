package raster

import (
	"bytes"
	"log/slog"
	"testing"

	"microraster/internal/atlas"
	"microraster/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	checkerID = 40
	halfID    = 41
)

// testAtlas is 4x2: a 2x2 diagonal checker at x=0 and a 2x2 block of
// coverage 128 at x=2.
func testAtlas() *atlas.Atlas {
	a := atlas.New(4, 2)
	copy(a.Pix, []byte{
		255, 0, 128, 128,
		0, 255, 128, 128,
	})
	a.Set(checkerID, mathutil.R(0, 0, 2, 2))
	a.Set(halfID, mathutil.R(2, 0, 2, 2))
	return a
}

func TestMul8(t *testing.T) {
	assert.Equal(t, uint8(255), mul8(255, 255))
	assert.Equal(t, uint8(0), mul8(255, 0))
	assert.Equal(t, uint8(0), mul8(0, 200))
	assert.Equal(t, uint8(128), mul8(255, 128))
	assert.Equal(t, uint8(64), mul8(128, 128))
}

func TestBlendEndpoints(t *testing.T) {
	dst := RGBA(10, 20, 30, 200).ARGB()
	c := RGBA(250, 240, 230, 99)

	assert.Equal(t, dst, blend(dst, c, 0))
	assert.Equal(t, RGBA(250, 240, 230, 200), ColorFromARGB(blend(dst, c, 255)))
}

func TestColorPacking(t *testing.T) {
	c := RGBA(0x11, 0x22, 0x33, 0x44)
	assert.Equal(t, uint32(0x44112233), c.ARGB())
	assert.Equal(t, c, ColorFromARGB(c.ARGB()))
}

func TestGlyphSamplingMatchesAtlas(t *testing.T) {
	r, fb := newTestRenderer(t, 16, 16)
	r.DrawText("A", mathutil.V(3, 2), White)
	r.Present()

	a := r.Atlas()
	g := a.Glyph('A')
	lit := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cov := a.At(g.X+x, g.Y+y)
			want := ColorFromARGB(blend(Black.ARGB(), White, cov))
			if cov == 255 {
				want = White
				lit++
			}
			assert.Equal(t, want, fb.At(3+x, 2+y), "glyph texel %d,%d", x, y)
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, Black, fb.At(0, 0))
}

func TestStretchedSamplingIsNearestNeighbor(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	r := New(fb, testAtlas())
	r.push(mathutil.R(0, 0, 4, 4), checkerID, red)
	r.Present()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Black
			if (x < 2) == (y < 2) {
				want = red
			}
			assert.Equal(t, want, fb.At(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestShrunkSampling(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	r := New(fb, testAtlas())
	r.push(mathutil.R(0, 0, 1, 1), checkerID, red)
	r.Present()
	assert.Equal(t, red, fb.At(0, 0), "1x1 quad samples the entry's top-left texel")
}

func TestCoverageTimesColorAlpha(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	r := New(fb, testAtlas())

	r.push(mathutil.R(0, 0, 1, 1), halfID, White)
	r.push(mathutil.R(1, 0, 1, 1), checkerID, RGBA(255, 255, 255, 128))
	r.Present()

	assert.Equal(t, fb.At(0, 0), fb.At(1, 0))
	assert.Equal(t, uint8(128), fb.At(0, 0).R)
}

func TestUnknownAtlasIDSkippedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	fb := NewFrameBuffer(2, 2)
	r := New(fb, testAtlas(), WithLogger(log))
	r.push(mathutil.R(0, 0, 2, 2), 999, red)
	r.DrawIcon(998, mathutil.R(0, 0, 2, 2), red)
	r.Present()

	assert.Equal(t, Black, fb.At(0, 0))
	assert.Equal(t, 2, r.Stats().Skipped)
	assert.Contains(t, buf.String(), "unknown atlas id 999")
	assert.Contains(t, buf.String(), "unknown icon id 998")
}

func TestStrictModePanicsOnUnknownID(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	r := New(fb, testAtlas(), WithStrictSampling(true))
	r.push(mathutil.R(0, 0, 2, 2), 999, red)
	assert.Panics(t, func() { r.Present() })
}

func TestSampleOutsideEntry(t *testing.T) {
	src := mathutil.R(2, 0, 2, 2)
	dst := mathutil.R(0, 0, 2, 2)

	lenient := New(NewFrameBuffer(1, 1), testAtlas())
	assert.Equal(t, 3, lenient.sampleCol(src, dst, 5), "clamped to last column")
	assert.Equal(t, 0, lenient.sampleRow(src, dst, -3), "clamped to first row")
	assert.Equal(t, 3, lenient.sampleCol(src, dst, 1))

	strict := New(NewFrameBuffer(1, 1), testAtlas(), WithStrictSampling(true))
	assert.Panics(t, func() { strict.sampleCol(src, dst, 5) })
	assert.NotPanics(t, func() { strict.sampleRow(src, dst, 1) })
}

func TestStrictModeCompositesNormally(t *testing.T) {
	r, fb := newTestRenderer(t, 32, 20, WithStrictSampling(true))
	require.NotPanics(t, func() {
		r.SetClipRect(mathutil.R(1, 1, 20, 10))
		r.DrawText("clip me, please", mathutil.V(-4, 0), White)
		r.DrawIcon(atlas.IconCheck, mathutil.R(10, 5, 30, 30), red)
		r.Present()
	})
	assert.Equal(t, Black, fb.At(0, 0))
}
