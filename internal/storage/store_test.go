package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jwulff/basil-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsset(t *testing.T) {
	b, err := domain.NewBitmapWithColor(3, 2, domain.NewPixel(1, 2, 3))
	require.NoError(t, err)

	asset := NewAsset("logo", b)

	_, err = uuid.Parse(asset.ID)
	assert.NoError(t, err)
	assert.Equal(t, "logo", asset.Name)
	assert.Equal(t, 3, asset.Width)
	assert.Equal(t, 2, asset.Height)
	assert.Equal(t, int64(24), asset.Size)
	assert.False(t, asset.CreatedAt.IsZero())
	assert.True(t, asset.CreatedAt.Before(time.Now().Add(time.Second)))

	b.SetPixel(0, 0, domain.NewPixel(9, 9, 9))
	assert.Equal(t, domain.NewPixel(1, 2, 3).Packed(), asset.Pixels[0], "asset holds a snapshot")
}

func TestNewAssetUniqueIDs(t *testing.T) {
	b, err := domain.NewBitmap(1, 1)
	require.NoError(t, err)

	assert.NotEqual(t, NewAsset("a", b).ID, NewAsset("a", b).ID)
}

func TestAssetBitmap(t *testing.T) {
	src, err := domain.NewBitmap(2, 2)
	require.NoError(t, err)
	src.SetPixel(1, 0, domain.NewPixelRGBA(5, 6, 7, 8))

	b, err := NewAsset("x", src).Bitmap()
	require.NoError(t, err)
	assert.Equal(t, src.Pixels(), b.Pixels())
}

func TestAssetBitmapMismatch(t *testing.T) {
	a := &Asset{Name: "x", Width: 2, Height: 2, Pixels: make([]uint32, 3)}
	_, err := a.Bitmap()
	assert.ErrorIs(t, err, domain.ErrLoad)

	a = &Asset{Name: "x", Width: 0, Height: 2}
	_, err = a.Bitmap()
	assert.ErrorIs(t, err, domain.ErrAllocation)
}

func TestEncodePixelsLittleEndian(t *testing.T) {
	data := EncodePixels([]uint32{0x44112233})
	assert.Equal(t, []byte{0x33, 0x22, 0x11, 0x44}, data)

	pixels, err := DecodePixels(data)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x44112233}, pixels)
}

func TestDecodePixelsBadLength(t *testing.T) {
	_, err := DecodePixels([]byte{1, 2, 3})
	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestCachedFrame(t *testing.T) {
	b, err := domain.NewBitmapWithColor(2, 1, domain.NewPixel(255, 0, 0))
	require.NoError(t, err)

	frame := NewCachedFrame("scene.yaml", b)
	assert.Equal(t, "scene.yaml", frame.Scene)
	assert.Len(t, frame.FrameData, 8)
	assert.False(t, frame.GeneratedAt.IsZero())

	decoded, err := frame.Bitmap()
	require.NoError(t, err)
	assert.Equal(t, b.Pixels(), decoded.Pixels())
}

func TestErrNotFound(t *testing.T) {
	err := ErrNotFound{Resource: "bitmap", ID: "logo"}

	assert.Equal(t, "bitmap not found: logo", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("loading sprite: %w", err)))
}

func TestIsNotFoundFalse(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(assert.AnError))
}
