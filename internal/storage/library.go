package storage

import (
	"context"
	"fmt"

	"github.com/jwulff/basil-go/internal/domain"
	"github.com/jwulff/basil-go/internal/render"
)

// Library resolves scene sprites and fonts from a Store.
type Library struct {
	Store Store
}

// LoadAsset returns a new bitmap for the named asset.
func (l Library) LoadAsset(ctx context.Context, name string) (*domain.Bitmap, error) {
	asset, err := l.Store.GetBitmap(ctx, name)
	if err != nil {
		return nil, err
	}
	return asset.Bitmap()
}

// LoadFont builds the named font from its stored atlas.
func (l Library) LoadFont(ctx context.Context, name string) (*render.Font, error) {
	rec, err := l.Store.GetFont(ctx, name)
	if err != nil {
		return nil, err
	}
	atlas, err := l.LoadAsset(ctx, rec.Atlas)
	if err != nil {
		return nil, fmt.Errorf("font %q atlas: %w", name, err)
	}
	return render.NewFont(atlas, rec.GlyphWidth, rec.GlyphHeight)
}

var (
	_ render.AssetLoader = Library{}
	_ render.FontLoader  = Library{}
)
