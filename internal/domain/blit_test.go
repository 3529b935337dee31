package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numbered returns a bitmap whose pixel at (x, y) is 0xFF000000 | (y<<8 | x).
func numbered(t *testing.T, width, height int) *Bitmap {
	t.Helper()
	b := newTestBitmap(t, width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.Pixels()[y*width+x] = 0xFF000000 | uint32(y<<8|x)
		}
	}
	return b
}

func TestBlitSinglePixel(t *testing.T) {
	dst, err := NewBitmapWithColor(4, 4, NewPixel(1, 1, 1))
	require.NoError(t, err)
	before := snapshot(dst)
	src, err := NewBitmapWithColor(1, 1, NewPixel(200, 100, 50))
	require.NoError(t, err)

	dst.Blit(src, 0, 0)

	for i, v := range dst.Pixels() {
		if i == 0 {
			assert.Equal(t, NewPixel(200, 100, 50).Packed(), v)
			continue
		}
		assert.Equal(t, before[i], v, "pixel %d should be unchanged", i)
	}
}

func TestBlitOutsideDestination(t *testing.T) {
	dst := newTestBitmap(t, 4, 4)
	before := snapshot(dst)
	src, err := NewBitmapWithColor(2, 2, NewPixel(255, 0, 0))
	require.NoError(t, err)

	dst.Blit(src, dst.Width(), 0)
	dst.Blit(src, 0, dst.Height())
	dst.Blit(src, -2, 0)
	dst.Blit(src, 0, -2)
	dst.BlitKeyed(src, 10, 10, Pixel{})

	assert.Equal(t, before, dst.Pixels())
}

func TestBlitClipsAndKeepsSourceAligned(t *testing.T) {
	src := numbered(t, 4, 4)
	dst := newTestBitmap(t, 3, 3)

	dst.Blit(src, -1, -2)

	// dst (0,0) receives src (1,2)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			sy := y + 2
			sx := x + 1
			want := uint32(0)
			if sy < 4 {
				want = 0xFF000000 | uint32(sy<<8|sx)
			}
			assert.Equal(t, want, dst.Pixels()[y*3+x], "dst (%d,%d)", x, y)
		}
	}
}

func TestBlitDifferentStrides(t *testing.T) {
	src := numbered(t, 3, 2)
	dst := newTestBitmap(t, 7, 5)

	dst.Blit(src, 2, 1)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, 0xFF000000|uint32(y<<8|x), dst.Pixels()[(y+1)*7+x+2])
		}
	}
	assert.Equal(t, uint32(0), dst.Pixels()[1*7+5])
	assert.Equal(t, uint32(0), dst.Pixels()[3*7+2])
}

func TestBlitKeyed(t *testing.T) {
	c := NewPixel(255, 0, 255)
	d := NewPixel(0, 128, 0)
	e := NewPixel(10, 20, 30)

	src := newTestBitmap(t, 2, 1)
	src.SetPixel(0, 0, c)
	src.SetPixel(1, 0, d)
	dst, err := NewBitmapWithColor(2, 1, e)
	require.NoError(t, err)

	dst.BlitKeyed(src, 0, 0, c)

	assert.Equal(t, e, *dst.GetPixel(0, 0))
	assert.Equal(t, d, *dst.GetPixel(1, 0))
}

func TestBlitKeyedComparesAlpha(t *testing.T) {
	src := newTestBitmap(t, 1, 1)
	src.SetPixel(0, 0, NewPixelRGBA(255, 0, 255, 0))
	dst := newTestBitmap(t, 1, 1)

	dst.BlitKeyed(src, 0, 0, NewPixel(255, 0, 255))

	assert.Equal(t, NewPixelRGBA(255, 0, 255, 0), *dst.GetPixel(0, 0))
}

func TestBlitRegion(t *testing.T) {
	src := numbered(t, 4, 4)
	dst := newTestBitmap(t, 4, 4)

	err := dst.BlitRegion(src, 1, 1, 2, 1, 2, 3)
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint32(0)
			if x >= 1 && x <= 2 && y >= 1 {
				want = 0xFF000000 | uint32((y)<<8|(x+1))
			}
			assert.Equal(t, want, dst.Pixels()[y*4+x], "dst (%d,%d)", x, y)
		}
	}
}

func TestBlitRegionDestinationClipped(t *testing.T) {
	src := numbered(t, 4, 4)
	dst := newTestBitmap(t, 2, 2)

	err := dst.BlitRegion(src, -1, 1, 1, 1, 3, 3)
	require.NoError(t, err)

	// dst (0,1) receives src (2,1); dst row 0 untouched.
	assert.Equal(t, uint32(0), dst.Pixels()[0])
	assert.Equal(t, uint32(0), dst.Pixels()[1])
	assert.Equal(t, 0xFF000000|uint32(1<<8|2), dst.Pixels()[2])
	assert.Equal(t, 0xFF000000|uint32(1<<8|3), dst.Pixels()[3])
}

func TestBlitRegionInvalid(t *testing.T) {
	src := numbered(t, 4, 4)
	srcBefore := snapshot(src)
	dst, err := NewBitmapWithColor(4, 4, NewPixel(5, 5, 5))
	require.NoError(t, err)
	dstBefore := snapshot(dst)

	regions := []struct{ x, y, w, h int }{
		{1, 0, 4, 1}, // srcX+srcW-1 == width
		{0, 0, 5, 1},
		{0, 2, 1, 3}, // srcY+srcH-1 == height
		{-1, 0, 2, 2},
		{0, -1, 2, 2},
	}
	for _, r := range regions {
		err := dst.BlitRegion(src, 0, 0, r.x, r.y, r.w, r.h)
		assert.ErrorIs(t, err, ErrInvalidRegion, "region %+v", r)

		err = dst.BlitRegionKeyed(src, 0, 0, r.x, r.y, r.w, r.h, Pixel{})
		assert.ErrorIs(t, err, ErrInvalidRegion, "keyed region %+v", r)

		err = dst.BlitRegionKeyedTinted(src, 0, 0, r.x, r.y, r.w, r.h, TextKey, NewPixel(255, 255, 255))
		assert.ErrorIs(t, err, ErrInvalidRegion, "tinted region %+v", r)
	}

	assert.Equal(t, srcBefore, src.Pixels())
	assert.Equal(t, dstBefore, dst.Pixels())
}

func TestBlitRegionInvalidErrorDetails(t *testing.T) {
	src := newTestBitmap(t, 4, 3)
	dst := newTestBitmap(t, 4, 3)

	err := dst.BlitRegion(src, 0, 0, 2, 0, 3, 1)

	var regionErr *RegionError
	require.ErrorAs(t, err, &regionErr)
	assert.Equal(t, RegionError{X: 2, Y: 0, Width: 3, Height: 1, SrcWidth: 4, SrcHeight: 3}, *regionErr)
}

func TestBlitRegionHugeSizeRejected(t *testing.T) {
	src := numbered(t, 4, 4)
	dst := newTestBitmap(t, 8, 8)
	before := snapshot(dst)

	cases := []struct{ srcX, srcY, srcW, srcH int }{
		{2, 0, math.MaxInt, 1},
		{2, 3, math.MaxInt, 1},
		{0, 2, 1, math.MaxInt},
		{math.MaxInt, 0, math.MaxInt, 1},
	}
	for _, c := range cases {
		err := dst.BlitRegion(src, 0, 0, c.srcX, c.srcY, c.srcW, c.srcH)
		assert.ErrorIs(t, err, ErrInvalidRegion, "%+v", c)
		err = dst.BlitRegionKeyedTinted(src, 0, 0, c.srcX, c.srcY, c.srcW, c.srcH, 0, NewPixel(255, 255, 255))
		assert.ErrorIs(t, err, ErrInvalidRegion, "%+v", c)
	}
	assert.Equal(t, before, dst.Pixels())
}

func TestBlitRegionEmpty(t *testing.T) {
	src := numbered(t, 2, 2)
	dst := newTestBitmap(t, 2, 2)
	before := snapshot(dst)

	require.NoError(t, dst.BlitRegion(src, 0, 0, 0, 0, 0, 2))
	require.NoError(t, dst.BlitRegion(src, 0, 0, 0, 0, 2, 0))

	assert.Equal(t, before, dst.Pixels())
}

func TestBlitRegionKeyed(t *testing.T) {
	key := NewPixel(255, 0, 255)
	src := newTestBitmap(t, 3, 1)
	src.SetPixel(0, 0, NewPixel(1, 1, 1))
	src.SetPixel(1, 0, key)
	src.SetPixel(2, 0, NewPixel(3, 3, 3))
	dst, err := NewBitmapWithColor(2, 1, NewPixel(9, 9, 9))
	require.NoError(t, err)

	require.NoError(t, dst.BlitRegionKeyed(src, 0, 0, 1, 0, 2, 1, key))

	assert.Equal(t, NewPixel(9, 9, 9), *dst.GetPixel(0, 0))
	assert.Equal(t, NewPixel(3, 3, 3), *dst.GetPixel(1, 0))
}

func TestBlitKeyedTintedHalvesRed(t *testing.T) {
	src := newTestBitmap(t, 3, 1)
	src.SetPixel(0, 0, NewPixelRGBA(200, 100, 50, 77))
	src.SetPixel(1, 0, NewPixelRGBA(255, 255, 255, 255))
	src.SetPixel(2, 0, Pixel{}) // keyed
	dst, err := NewBitmapWithColor(3, 1, NewPixel(1, 2, 3))
	require.NoError(t, err)

	tint := NewPixelRGBA(128, 255, 255, 0)
	require.NoError(t, dst.BlitRegionKeyedTinted(src, 0, 0, 0, 0, 3, 1, TextKey, tint))

	assert.Equal(t, NewPixelRGBA(100, 99, 49, 77), *dst.GetPixel(0, 0))
	assert.Equal(t, NewPixelRGBA(127, 254, 254, 255), *dst.GetPixel(1, 0))
	assert.Equal(t, NewPixel(1, 2, 3), *dst.GetPixel(2, 0))
}

func TestBlitKeyedTintedWhiteKeepsShape(t *testing.T) {
	src := newTestBitmap(t, 2, 2)
	src.SetPixel(1, 1, NewPixel(255, 255, 255))
	dst := newTestBitmap(t, 2, 2)

	require.NoError(t, dst.BlitRegionKeyedTinted(src, 0, 0, 0, 0, 2, 2, TextKey, NewPixel(0, 255, 0)))

	assert.Equal(t, uint32(0), dst.Pixels()[0])
	assert.Equal(t, NewPixel(0, 254, 0), *dst.GetPixel(1, 1))
}

func TestBlendModeString(t *testing.T) {
	assert.Equal(t, "copy", BlendCopy.String())
	assert.Equal(t, "keyed", BlendKeyed.String())
	assert.Equal(t, "keyed-tinted", BlendKeyedTinted.String())
	assert.Equal(t, "unknown", BlendMode(42).String())
}

func TestBlitFromReleasedSource(t *testing.T) {
	src := numbered(t, 2, 2)
	src.Destroy()
	dst := newTestBitmap(t, 2, 2)
	before := snapshot(dst)

	assert.NotPanics(t, func() { dst.Blit(src, 0, 0) })
	assert.Equal(t, before, dst.Pixels())
}
