package raster

import (
	"errors"
	"fmt"
	"image"

	"microraster/internal/mathutil"
)

// ErrSize is returned when a pixel slice does not match its stated dimensions.
var ErrSize = errors.New("raster: framebuffer size mismatch")

// FrameBuffer is the render target: packed ARGB pixels, row-major, top-left
// origin. The pixel slice is referenced, never copied, so a window layer can
// hand in its own display buffer.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint32 // len = W*H
}

// NewFrameBuffer allocates a zeroed framebuffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint32, w*h),
	}
}

// WrapFrameBuffer adopts a caller-owned pixel slice.
func WrapFrameBuffer(pix []uint32, w, h int) (*FrameBuffer, error) {
	if w < 0 || h < 0 || len(pix) != w*h {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrSize, len(pix), w, h)
	}
	return &FrameBuffer{Width: w, Height: h, Pix: pix}, nil
}

// Bounds returns the full buffer rect.
func (fb *FrameBuffer) Bounds() mathutil.Rect {
	return mathutil.R(0, 0, fb.Width, fb.Height)
}

// At returns the pixel at (x, y) as a Color.
func (fb *FrameBuffer) At(x, y int) Color {
	return ColorFromARGB(fb.Pix[y*fb.Width+x])
}

// NRGBA converts the buffer into a new image.
func (fb *FrameBuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pix {
		j := i * 4
		img.Pix[j] = uint8(p >> 16)
		img.Pix[j+1] = uint8(p >> 8)
		img.Pix[j+2] = uint8(p)
		img.Pix[j+3] = uint8(p >> 24)
	}
	return img
}
