// Package storage provides persistent storage for bitmap assets, fonts,
// rendered frames and settings.
package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwulff/basil-go/internal/domain"
)

// Store is the interface for persistent storage.
type Store interface {
	// Bitmap assets
	SaveBitmap(ctx context.Context, asset *Asset) error
	GetBitmap(ctx context.Context, name string) (*Asset, error)
	ListBitmaps(ctx context.Context) ([]*Asset, error)
	DeleteBitmap(ctx context.Context, name string) error

	// Fonts
	SaveFont(ctx context.Context, font *FontRecord) error
	GetFont(ctx context.Context, name string) (*FontRecord, error)

	// Frame cache
	CacheFrame(ctx context.Context, frame *CachedFrame) error
	GetCachedFrame(ctx context.Context) (*CachedFrame, error)

	// Configuration
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	DeleteConfig(ctx context.Context, key string) error

	// Lifecycle
	Close() error
}

// Asset is a stored bitmap. ListBitmaps leaves Pixels empty and reports the
// encoded size in Size.
type Asset struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Pixels    []uint32
	Size      int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAsset snapshots a bitmap under a fresh ID.
func NewAsset(name string, b *domain.Bitmap) *Asset {
	now := time.Now()
	pixels := make([]uint32, len(b.Pixels()))
	copy(pixels, b.Pixels())
	return &Asset{
		ID:        uuid.NewString(),
		Name:      name,
		Width:     b.Width(),
		Height:    b.Height(),
		Pixels:    pixels,
		Size:      int64(len(pixels) * 4),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Bitmap returns a new bitmap holding the asset's pixels.
func (a *Asset) Bitmap() (*domain.Bitmap, error) {
	b, err := domain.NewBitmap(a.Width, a.Height)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", a.Name, err)
	}
	if len(a.Pixels) != len(b.Pixels()) {
		return nil, fmt.Errorf("%w: asset %q has %d pixels, expected %d",
			domain.ErrLoad, a.Name, len(a.Pixels), len(b.Pixels()))
	}
	copy(b.Pixels(), a.Pixels)
	return b, nil
}

// FontRecord describes a font whose atlas is stored as a bitmap asset.
type FontRecord struct {
	Name        string
	Atlas       string
	GlyphWidth  int
	GlyphHeight int
	CreatedAt   time.Time
}

// CachedFrame is the last composed frame.
type CachedFrame struct {
	Scene       string
	Width       int
	Height      int
	FrameData   []byte
	GeneratedAt time.Time
}

// NewCachedFrame snapshots a composed bitmap.
func NewCachedFrame(scene string, b *domain.Bitmap) *CachedFrame {
	return &CachedFrame{
		Scene:       scene,
		Width:       b.Width(),
		Height:      b.Height(),
		FrameData:   EncodePixels(b.Pixels()),
		GeneratedAt: time.Now(),
	}
}

// Bitmap decodes the cached frame into a new bitmap.
func (f *CachedFrame) Bitmap() (*domain.Bitmap, error) {
	pixels, err := DecodePixels(f.FrameData)
	if err != nil {
		return nil, err
	}
	a := Asset{Name: f.Scene, Width: f.Width, Height: f.Height, Pixels: pixels}
	return a.Bitmap()
}

// EncodePixels serializes packed pixels as little-endian uint32 values.
func EncodePixels(pixels []uint32) []byte {
	out := make([]byte, 0, len(pixels)*4)
	for _, v := range pixels {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

// DecodePixels is the inverse of EncodePixels.
func DecodePixels(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: pixel blob length %d is not a multiple of 4", domain.ErrLoad, len(data))
	}
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out, nil
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is, or wraps, a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
