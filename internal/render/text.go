package render

import "github.com/jwulff/basil-go/internal/domain"

// Bounds represents the bounding box of rendered text.
type Bounds struct {
	Width  int
	Height int
}

// utf8Offsets holds the marker bits accumulated while folding a sequence of
// n bytes into a code point; subtracting entry n-1 leaves the payload.
var utf8Offsets = [6]uint32{
	0x00000000, 0x00003080, 0x000E2080,
	0x03C82080, 0xFA082080, 0x82082080,
}

// nextCodePoint decodes the sequence starting at s[i] and returns the code
// point with the index of the next lead byte. Input is not validated.
func nextCodePoint(s string, i int) (rune, int) {
	var ch uint32
	n := 0
	for {
		ch = ch<<6 + uint32(s[i])
		i++
		n++
		if i >= len(s) || s[i]&0xC0 != 0x80 {
			break
		}
	}
	if n > len(utf8Offsets) {
		n = len(utf8Offsets)
	}
	return rune(ch - utf8Offsets[n-1]), i
}

// DecodeUTF8 returns the code points of s. Malformed input yields
// unspecified code points rather than an error.
func DecodeUTF8(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		var cp rune
		cp, i = nextCodePoint(s, i)
		out = append(out, cp)
	}
	return out
}

// layout walks text with a cursor starting at (x, y) and calls glyph for every
// code point that occupies a cell. Tabs, newlines and undrawable code points
// only move the cursor.
func layout(text string, x, y int, font *Font, glyph func(cp rune, cx, cy int)) {
	cx, cy := x, y
	for i := 0; i < len(text); {
		var cp rune
		cp, i = nextCodePoint(text, i)
		switch {
		case cp == '\t':
			cx += TabWidth * font.glyphWidth
		case cp == '\n':
			cx = x
			cy += font.glyphHeight
		case cp < FirstGlyph || cp > LastGlyph:
			cx += font.glyphWidth
		default:
			glyph(cp, cx, cy)
			cx += font.glyphWidth
		}
	}
}

// DrawText draws text onto dst with its first glyph cell at (x, y). Atlas
// pixels equal to domain.TextKey are transparent; the rest are tinted.
func DrawText(dst *domain.Bitmap, text string, x, y int, font *Font, tint domain.Pixel) {
	atlas := font.atlas
	layout(text, x, y, font, func(cp rune, cx, cy int) {
		sx, sy, ok := font.GlyphCell(cp)
		if !ok {
			return
		}
		// GlyphCell only returns cells inside the atlas.
		_ = dst.BlitRegionKeyedTinted(atlas, cx, cy, sx, sy, font.glyphWidth, font.glyphHeight, domain.TextKey, tint)
	})
}

// DrawTextWhite draws text with the atlas colors unchanged.
func DrawTextWhite(dst *domain.Bitmap, text string, x, y int, font *Font) {
	DrawText(dst, text, x, y, font, ColorWhite)
}

// MeasureText returns the extent the cursor covers while laying out text.
func MeasureText(text string, font *Font) Bounds {
	if len(text) == 0 {
		return Bounds{}
	}
	var b Bounds
	cx, lines := 0, 1
	for i := 0; i < len(text); {
		var cp rune
		cp, i = nextCodePoint(text, i)
		switch cp {
		case '\t':
			cx += TabWidth * font.glyphWidth
		case '\n':
			cx = 0
			lines++
		default:
			cx += font.glyphWidth
		}
		b.Width = max(b.Width, cx)
	}
	b.Height = lines * font.glyphHeight
	return b
}

// DrawTextCentered draws text centered horizontally within the given width.
func DrawTextCentered(dst *domain.Bitmap, text string, width, y int, font *Font, tint domain.Pixel) {
	x := (width - MeasureText(text, font).Width) / 2
	DrawText(dst, text, x, y, font, tint)
}

// DrawTextRightAligned draws text so its last column lands on rightX.
func DrawTextRightAligned(dst *domain.Bitmap, text string, rightX, y int, font *Font, tint domain.Pixel) {
	x := rightX - MeasureText(text, font).Width + 1
	DrawText(dst, text, x, y, font, tint)
}
