package atlas

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"microraster/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coverageSum(a *Atlas, r mathutil.Rect) int {
	sum := 0
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			sum += int(a.At(x, y))
		}
	}
	return sum
}

func TestDefaultAtlas(t *testing.T) {
	a := Default()
	require.NoError(t, a.Validate())
	assert.Same(t, a, Default())
	assert.Equal(t, DefaultLineHeight, a.LineHeight)

	white, ok := a.Rect(White)
	require.True(t, ok)
	for y := white.Y; y < white.MaxY(); y++ {
		for x := white.X; x < white.MaxX(); x++ {
			assert.Equal(t, byte(0xff), a.At(x, y))
		}
	}

	for _, id := range []int{IconClose, IconCheck, IconCollapsed, IconExpanded} {
		r, ok := a.Rect(id)
		require.True(t, ok, "icon %d", id)
		assert.Equal(t, 16, r.W)
		assert.Positive(t, coverageSum(a, r), "icon %d is blank", id)
	}
}

func TestDefaultGlyphs(t *testing.T) {
	a := Default()

	g := a.Glyph('A')
	assert.Equal(t, 7, g.W)
	assert.Equal(t, 13, g.H)
	assert.Positive(t, coverageSum(a, g))

	assert.Zero(t, coverageSum(a, a.Glyph(' ')))
	assert.Equal(t, 7, a.Glyph(' ').W)

	assert.True(t, a.Glyph('\n').Empty())
	assert.Positive(t, coverageSum(a, a.Glyph(127)), "fallback glyph must be visible")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "atlas.png")
	table := filepath.Join(dir, "atlas.json")

	src := Build()
	require.NoError(t, Save(src, img, table))

	got, err := Load(img, table)
	require.NoError(t, err)
	assert.Equal(t, src.Width, got.Width)
	assert.Equal(t, src.Height, got.Height)
	assert.Equal(t, src.Pix, got.Pix)
	assert.Equal(t, src.LineHeight, got.LineHeight)
	for _, id := range src.IDs() {
		want, _ := src.Rect(id)
		r, ok := got.Rect(id)
		require.True(t, ok, "id %d", id)
		assert.Equal(t, want, r)
	}
}

func TestLoadRejectsOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "atlas.png")
	table := filepath.Join(dir, "atlas.json")
	require.NoError(t, Save(Build(), img, table))

	bad := `{"line_height": 12, "entries": [{"id": 5, "x": 0, "y": 0, "w": 3, "h": 3}, {"id": 40, "x": 120, "y": 0, "w": 16, "h": 16}]}`
	require.NoError(t, os.WriteFile(table, []byte(bad), 0644))

	_, err := Load(img, table)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 1, strings.Count(err.Error(), "atlas:"), err.Error())
	assert.Contains(t, err.Error(), table)
}

func TestSaveLoadTGA(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "atlas.tga")
	table := filepath.Join(dir, "atlas.json")

	src := Build()
	require.NoError(t, Save(src, img, table))

	got, err := Load(img, table)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestLoadJPEG(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "atlas.jpg")
	table := filepath.Join(dir, "atlas.json")

	gray := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			gray.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	f, err := os.Create(img)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, gray, &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(table, []byte(`{"entries": [{"id": 5, "x": 0, "y": 0, "w": 3, "h": 3}]}`), 0644))

	a, err := Load(img, table)
	require.NoError(t, err)
	assert.Equal(t, 16, a.Width)
	assert.Greater(t, a.At(2, 2), byte(240))
	assert.Less(t, a.At(13, 13), byte(15))
	assert.Equal(t, DefaultLineHeight, a.LineHeight)
}

func TestUnsupportedImageFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "atlas.bmp"), filepath.Join(dir, "atlas.json"))
	assert.Error(t, err, "missing file is reported before the format")

	bmp := filepath.Join(dir, "atlas.bmp")
	require.NoError(t, os.WriteFile(bmp, []byte("BM"), 0644))
	_, err = Load(bmp, filepath.Join(dir, "atlas.json"))
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, 1, strings.Count(err.Error(), "atlas:"), err.Error())

	err = Save(Default(), filepath.Join(dir, "atlas.jpg"), filepath.Join(dir, "atlas.json"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"), "nope.json")
	assert.Error(t, err)
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "ui.png")
	require.NoError(t, Save(Default(), img, TablePath(img)))

	c := NewCache()
	a1, err := c.Resolve(img)
	require.NoError(t, err)
	a2, err := c.Resolve(filepath.Join(dir, ".", "ui.png"))
	require.NoError(t, err)
	assert.Same(t, a1, a2)
	assert.Equal(t, 1, c.Len())

	_, err = c.Resolve(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
	_, err = c.Resolve(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestTablePath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "ui.json"), TablePath(filepath.Join("a", "ui.png")))
	assert.Equal(t, "atlas.json", TablePath("atlas"))
}
