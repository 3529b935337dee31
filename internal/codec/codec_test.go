package codec

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(width, height int) *Image {
	m := NewImage(width, height)
	for i := 0; i < width*height; i++ {
		o := i * BytesPerPixel
		m.Pix[o] = uint8(i * 7)
		m.Pix[o+1] = uint8(i * 13)
		m.Pix[o+2] = uint8(255 - i)
		m.Pix[o+3] = uint8(128 + i)
	}
	return m
}

func TestEncodeDecodePNG(t *testing.T) {
	m := pattern(6, 4)
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, Encode(path, m))

	got, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, m.Width, got.Width)
	assert.Equal(t, m.Height, got.Height)
	assert.Equal(t, m.Pix, got.Pix)
}

func TestEncodeLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Encode(filepath.Join(dir, "a.bmp"), pattern(3, 3)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bmp", entries[0].Name())
}

func TestEncodeOtherFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "a.jpeg", "a.gif", "a.bmp", "a.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Encode(path, pattern(4, 4)), name)

		got, err := Decode(path)
		require.NoError(t, err, name)
		assert.Equal(t, 4, got.Width, name)
		assert.Equal(t, 4, got.Height, name)
	}
}

func TestEncodeSizeMismatch(t *testing.T) {
	m := &Image{Width: 2, Height: 2, Pix: make([]byte, 3)}
	err := Encode(filepath.Join(t.TempDir(), "bad.png"), m)
	assert.ErrorContains(t, err, "size mismatch")
}

func TestFormatFor(t *testing.T) {
	cases := map[string]string{
		"a.png":  "png",
		"a":      "png",
		"A.PNG":  "png",
		"b.jpg":  "jpeg",
		"b.JPEG": "jpeg",
		"c.gif":  "gif",
		"d.bmp":  "bmp",
		"e.tif":  "tiff",
		"e.tiff": "tiff",
	}
	for path, want := range cases {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("x.webp")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Decode(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "could not open image")

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = Decode(junk)
	assert.ErrorContains(t, err, "could not decode image")
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 12, 21))
	src.Set(10, 20, color.RGBA{R: 255, A: 255})
	src.Set(11, 20, color.RGBA{B: 255, A: 255})

	m := FromImage(src)

	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 1, m.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, m.Pix)
}
