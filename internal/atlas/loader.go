package atlas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"microraster/internal/mathutil"

	"github.com/ftrvxmtrx/tga"
)

// ErrFormat is returned for an atlas image extension with no decoder
// (.png, .jpg, .jpeg, .tga) or, when saving, no encoder (.png, .tga).
var ErrFormat = errors.New("atlas: unsupported image format")

// tableFile is the on-disk id table.
type tableFile struct {
	LineHeight int          `json:"line_height"`
	Entries    []tableEntry `json:"entries"`
}

type tableEntry struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
	W  int `json:"w"`
	H  int `json:"h"`
}

// Load reads an atlas image (PNG, JPEG or TGA) and its JSON id table.
// Coverage comes from the alpha channel when the image carries any
// transparency, otherwise from luma.
func Load(imagePath, tablePath string) (*Atlas, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", imagePath, err)
	}
	img, err := decodeImage(imagePath, raw)
	if errors.Is(err, ErrFormat) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", imagePath, err)
	}

	a := fromImage(img)

	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", tablePath, err)
	}
	var table tableFile
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("atlas: parse %s: %w", tablePath, err)
	}
	if table.LineHeight > 0 {
		a.LineHeight = table.LineHeight
	}
	for _, e := range table.Entries {
		a.Set(e.ID, mathutil.R(e.X, e.Y, e.W, e.H))
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w (table %s)", err, tablePath)
	}
	return a, nil
}

// decodeImage picks the decoder from the file extension. The tga package
// registers with an empty magic string, which would claim every file
// passed through image.Decode.
func decodeImage(path string, raw []byte) (image.Image, error) {
	r := bytes.NewReader(raw)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".tga":
		return tga.Decode(r)
	}
	return nil, fmt.Errorf("%w %q: %s", ErrFormat, filepath.Ext(path), path)
}

// fromImage converts any image to a coverage atlas.
func fromImage(src image.Image) *Atlas {
	b := src.Bounds()
	a := New(b.Dx(), b.Dy())

	if g, ok := src.(*image.Alpha); ok {
		for y := 0; y < a.Height; y++ {
			copy(a.Pix[y*a.Width:(y+1)*a.Width], g.Pix[y*g.Stride:y*g.Stride+a.Width])
		}
		return a
	}

	useAlpha := false
	for y := b.Min.Y; y < b.Max.Y && !useAlpha; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, al := src.At(x, y).RGBA(); al != 0xffff {
				useAlpha = true
				break
			}
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := (y - b.Min.Y) * a.Width
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.At(x, y)
			var v uint8
			if useAlpha {
				v = color.AlphaModel.Convert(c).(color.Alpha).A
			} else {
				v = color.GrayModel.Convert(c).(color.Gray).Y
			}
			a.Pix[off+x-b.Min.X] = v
		}
	}
	return a
}

// Image returns the coverage texture as an *image.Alpha sharing a's pixels.
func (a *Atlas) Image() *image.Alpha {
	return &image.Alpha{
		Pix:    a.Pix,
		Stride: a.Width,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

// Save writes the atlas image as PNG or TGA, chosen by extension, plus its
// JSON id table.
func Save(a *Atlas, imagePath, tablePath string) error {
	for _, p := range []string{imagePath, tablePath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("atlas: mkdir for %s: %w", p, err)
		}
	}

	encode := png.Encode
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
	case ".tga":
		encode = tga.Encode
	default:
		return fmt.Errorf("%w %q: %s", ErrFormat, filepath.Ext(imagePath), imagePath)
	}

	f, err := os.Create(imagePath)
	if err != nil {
		return fmt.Errorf("atlas: create %s: %w", imagePath, err)
	}
	if err := encode(f, a.Image()); err != nil {
		f.Close()
		return fmt.Errorf("atlas: encode %s: %w", imagePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("atlas: close %s: %w", imagePath, err)
	}

	ids := a.IDs()
	sort.Ints(ids)
	table := tableFile{LineHeight: a.LineHeight}
	for _, id := range ids {
		r := a.rects[id]
		table.Entries = append(table.Entries, tableEntry{ID: id, X: r.X, Y: r.Y, W: r.W, H: r.H})
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("atlas: encode %s: %w", tablePath, err)
	}
	if err := os.WriteFile(tablePath, data, 0644); err != nil {
		return fmt.Errorf("atlas: write %s: %w", tablePath, err)
	}
	return nil
}
