package raster

// Color is a straight (non-premultiplied) RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA is shorthand for Color{r, g, b, a}.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{}
)

// ARGB packs c as A<<24 | R<<16 | G<<8 | B.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ColorFromARGB unpacks an ARGB pixel.
func ColorFromARGB(p uint32) Color {
	return Color{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}

// mul8 multiplies two 8-bit fractions: 255*255 stays 255, anything times 0 is 0.
func mul8(a, b uint8) uint8 {
	return uint8(uint16(a) * uint16(b) / 255)
}

// blend composites c at alpha a over the packed pixel dst:
// out = (src*a + dst*(255-a)) / 255 per color channel. The destination
// alpha byte is left as is.
func blend(dst uint32, c Color, a uint8) uint32 {
	sa := uint32(a)
	ia := 255 - sa
	r := (uint32(c.R)*sa + (dst>>16&0xff)*ia) / 255
	g := (uint32(c.G)*sa + (dst>>8&0xff)*ia) / 255
	b := (uint32(c.B)*sa + (dst&0xff)*ia) / 255
	return dst&0xff000000 | r<<16 | g<<8 | b
}
