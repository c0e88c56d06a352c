package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resizes img by factor. Enlargements use nearest-neighbor so glyph
// and line pixels stay crisp; reductions filter with CatmullRom. factor == 1
// or factor <= 0 returns img as is.
func Scale(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor+0.5))
	h := max(1, int(float64(b.Dy())*factor+0.5))

	var interp draw.Interpolator = draw.CatmullRom
	if factor > 1 {
		interp = draw.NearestNeighbor
	}
	// The scaler premultiplies the NRGBA source, so filtering into an RGBA
	// target keeps translucent edges free of dark fringes.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return straighten(dst)
}

// straighten converts premultiplied pixels back to straight alpha. Filter
// overshoot can push a channel above alpha; it is clamped to 255.
func straighten(src *image.RGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		a := uint32(src.Pix[i+3])
		out.Pix[i+3] = uint8(a)
		if a == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			v := (uint32(src.Pix[i+c])*255 + a/2) / a
			out.Pix[i+c] = uint8(min(v, 255))
		}
	}
	return out
}
