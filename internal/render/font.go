package render

import (
	"fmt"

	"github.com/jwulff/basil-go/internal/domain"
)

// Printable code point range covered by a glyph atlas.
const (
	FirstGlyph = 32
	LastGlyph  = 255
)

// TabWidth is the number of glyph cells a tab advances the cursor.
const TabWidth = 3

// Font is a fixed-cell bitmap font. Glyph i (code point i+32) sits at grid
// cell (i mod GlyphsPerRow, i div GlyphsPerRow) of the atlas.
type Font struct {
	glyphWidth  int
	glyphHeight int
	atlas       *domain.Bitmap
}

// NewFont takes ownership of atlas.
func NewFont(atlas *domain.Bitmap, glyphWidth, glyphHeight int) (*Font, error) {
	if glyphWidth <= 0 || glyphHeight <= 0 {
		return nil, fmt.Errorf("%w: invalid glyph size %dx%d", domain.ErrAllocation, glyphWidth, glyphHeight)
	}
	if atlas == nil || atlas.Released() {
		return nil, fmt.Errorf("%w: font atlas is empty", domain.ErrLoad)
	}
	return &Font{
		glyphWidth:  glyphWidth,
		glyphHeight: glyphHeight,
		atlas:       atlas,
	}, nil
}

// LoadFont loads an atlas image from path.
func LoadFont(path string, glyphWidth, glyphHeight int) (*Font, error) {
	if glyphWidth <= 0 || glyphHeight <= 0 {
		return nil, fmt.Errorf("%w: invalid glyph size %dx%d", domain.ErrAllocation, glyphWidth, glyphHeight)
	}
	atlas, err := domain.LoadBitmap(path)
	if err != nil {
		return nil, err
	}
	domain.Logger().Debug("font loaded", "path", path, "glyph_width", glyphWidth, "glyph_height", glyphHeight)
	return NewFont(atlas, glyphWidth, glyphHeight)
}

// Destroy releases the atlas. Calling it again is a no-op.
func (f *Font) Destroy() {
	f.atlas.Destroy()
}

// GlyphWidth returns the cell width.
func (f *Font) GlyphWidth() int { return f.glyphWidth }

// GlyphHeight returns the cell height.
func (f *Font) GlyphHeight() int { return f.glyphHeight }

// Atlas returns the glyph atlas. The font keeps ownership.
func (f *Font) Atlas() *domain.Bitmap { return f.atlas }

// GlyphsPerRow returns how many cells fit across the atlas.
func (f *Font) GlyphsPerRow() int {
	return f.atlas.Width() / f.glyphWidth
}

// GlyphCell returns the top-left corner of the cell for code point cp.
// ok is false when cp is not drawable or the cell lies outside the atlas.
func (f *Font) GlyphCell(cp rune) (x, y int, ok bool) {
	if cp < FirstGlyph || cp > LastGlyph {
		return 0, 0, false
	}
	perRow := f.GlyphsPerRow()
	if perRow == 0 {
		return 0, 0, false
	}
	idx := int(cp - FirstGlyph)
	x = idx % perRow * f.glyphWidth
	y = idx / perRow * f.glyphHeight
	if y+f.glyphHeight > f.atlas.Height() {
		return 0, 0, false
	}
	return x, y, true
}
