// Package domain contains the core raster types: packed pixels, bitmaps and
// the clipped blit family that everything else is drawn with.
package domain

import "fmt"

// Pixel is a color with four 8-bit channels.
type Pixel struct {
	R, G, B, A uint8
}

// NewPixel creates an opaque color.
func NewPixel(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 255}
}

// NewPixelRGBA creates a color with an explicit alpha.
func NewPixelRGBA(r, g, b, a uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: a}
}

// Pack packs the channels into one ARGB32 value, alpha in the high byte.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits an ARGB32 value into its channels.
func Unpack(v uint32) Pixel {
	return Pixel{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// Packed returns the ARGB32 form of the color.
func (p Pixel) Packed() uint32 {
	return Pack(p.R, p.G, p.B, p.A)
}

// Equals checks if two colors are equal in all four channels.
func (p Pixel) Equals(other Pixel) bool {
	return p == other
}

// String returns a string representation of the color.
func (p Pixel) String() string {
	return fmt.Sprintf("R:%d G:%d B:%d A:%d", p.R, p.G, p.B, p.A)
}
