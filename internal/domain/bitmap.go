package domain

import (
	"fmt"
	"math"

	"github.com/jwulff/basil-go/internal/codec"
)

// MaxPixels caps a single allocation at 256 megapixels (1 GiB of packed data).
const MaxPixels = 1 << 28

// Bitmap is a row-major buffer of packed ARGB32 pixels with no row padding.
// A Bitmap is not safe for concurrent mutation.
type Bitmap struct {
	width  int
	height int
	pixels []uint32
}

// NewBitmap allocates a bitmap with every pixel set to 0.
// Non-positive or oversized dimensions fail with ErrAllocation.
func NewBitmap(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, width, height)
	}
	if width > math.MaxInt/height || width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}
	return &Bitmap{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}, nil
}

// NewBitmapWithColor allocates a bitmap filled with the given color.
func NewBitmapWithColor(width, height int, color Pixel) (*Bitmap, error) {
	b, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	b.Fill(color)
	return b, nil
}

// FromRGBA builds a bitmap from RGBA8 bytes, converting each pixel to the
// packed layout.
func FromRGBA(width, height int, rgba []byte) (*Bitmap, error) {
	b, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	if len(rgba) != width*height*codec.BytesPerPixel {
		return nil, fmt.Errorf("%w: pixel data size mismatch: expected %d, got %d",
			ErrLoad, width*height*codec.BytesPerPixel, len(rgba))
	}
	for i := range b.pixels {
		o := i * codec.BytesPerPixel
		b.pixels[i] = Pack(rgba[o], rgba[o+1], rgba[o+2], rgba[o+3])
	}
	return b, nil
}

// LoadBitmap decodes an image file into a new bitmap.
func LoadBitmap(path string) (*Bitmap, error) {
	Logger().Info("loading bitmap", "path", path)

	img, err := codec.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return FromRGBA(img.Width, img.Height, img.Pix)
}

// RGBA returns a new RGBA8 byte slice holding the bitmap's pixels.
func (b *Bitmap) RGBA() []byte {
	out := make([]byte, len(b.pixels)*codec.BytesPerPixel)
	for i, v := range b.pixels {
		o := i * codec.BytesPerPixel
		out[o] = uint8(v >> 16)
		out[o+1] = uint8(v >> 8)
		out[o+2] = uint8(v)
		out[o+3] = uint8(v >> 24)
	}
	return out
}

// Save encodes the bitmap to path. The bitmap is not modified.
func (b *Bitmap) Save(path string) error {
	Logger().Info("saving bitmap", "path", path, "width", b.width, "height", b.height)

	img := &codec.Image{Width: b.width, Height: b.height, Pix: b.RGBA()}
	if err := codec.Encode(path, img); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// Destroy releases the pixel buffer. Calling it again is a no-op.
func (b *Bitmap) Destroy() {
	if b.pixels == nil {
		return
	}
	b.pixels = nil
	b.width = 0
	b.height = 0
}

// Released reports whether Destroy has been called.
func (b *Bitmap) Released() bool {
	return b.pixels == nil
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *Bitmap) Height() int {
	return b.height
}

// Pixels returns the packed pixel buffer. Callers must not resize it.
func (b *Bitmap) Pixels() []uint32 {
	return b.pixels
}

func (b *Bitmap) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// GetPixel returns the color at (x, y), or nil if out of bounds.
func (b *Bitmap) GetPixel(x, y int) *Pixel {
	if !b.inBounds(x, y) {
		return nil
	}
	p := Unpack(b.pixels[y*b.width+x])
	return &p
}

// ReadPixel stores the color at (x, y) in out. Out of bounds coordinates leave
// out untouched.
func (b *Bitmap) ReadPixel(x, y int, out *Pixel) {
	if !b.inBounds(x, y) {
		return
	}
	*out = Unpack(b.pixels[y*b.width+x])
}

// SetPixel sets a single pixel. Out of bounds coordinates are silently ignored.
func (b *Bitmap) SetPixel(x, y int, color Pixel) {
	if !b.inBounds(x, y) {
		return
	}
	b.pixels[y*b.width+x] = color.Packed()
}

// Clear sets every packed pixel to 0 (transparent black).
func (b *Bitmap) Clear() {
	clear(b.pixels)
}

// Fill sets every pixel to the given color.
func (b *Bitmap) Fill(color Pixel) {
	v := color.Packed()
	for i := range b.pixels {
		b.pixels[i] = v
	}
}

// Clone creates a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	clone := &Bitmap{
		width:  b.width,
		height: b.height,
	}
	if b.pixels != nil {
		clone.pixels = make([]uint32, len(b.pixels))
		copy(clone.pixels, b.pixels)
	}
	return clone
}

// DrawRect draws a rectangle outline (not filled).
func (b *Bitmap) DrawRect(x, y, width, height int, color Pixel) {
	for i := 0; i < width; i++ {
		b.SetPixel(x+i, y, color)
		b.SetPixel(x+i, y+height-1, color)
	}
	for i := 0; i < height; i++ {
		b.SetPixel(x, y+i, color)
		b.SetPixel(x+width-1, y+i, color)
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (b *Bitmap) DrawLine(x0, y0, x1, y1 int, color Pixel) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		b.SetPixel(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String returns a short description of the bitmap.
func (b *Bitmap) String() string {
	if b.Released() {
		return "Bitmap(released)"
	}
	return fmt.Sprintf("Bitmap(%dx%d)", b.width, b.height)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
