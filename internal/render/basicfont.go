package render

import (
	"golang.org/x/image/font/basicfont"
)

// BasicFont builds a 7x13 font from the x/image basicfont face. Code points
// the face does not cover stay blank.
func BasicFont() *Font {
	face := basicfont.Face7x13
	cellW, cellH := face.Advance, face.Height
	atlas := newGlyphAtlas(cellW, cellH)
	origin := face.Mask.Bounds().Min

	for cp := rune(FirstGlyph); cp <= LastGlyph; cp++ {
		idx, ok := basicGlyphIndex(face, cp)
		if !ok {
			continue
		}
		ox, oy := atlasCell(cp, cellW, cellH)
		for row := 0; row < face.Height; row++ {
			for col := 0; col < face.Width; col++ {
				_, _, _, a := face.Mask.At(origin.X+col, origin.Y+idx*face.Height+row).RGBA()
				if a >= 0x8000 {
					atlas.SetPixel(ox+col, oy+row, ColorWhite)
				}
			}
		}
	}
	return &Font{glyphWidth: cellW, glyphHeight: cellH, atlas: atlas}
}

func basicGlyphIndex(face *basicfont.Face, cp rune) (int, bool) {
	for _, r := range face.Ranges {
		if cp >= r.Low && cp < r.High {
			return r.Offset + int(cp-r.Low), true
		}
	}
	return 0, false
}

// BuiltinFont returns a built-in font by name: "tiny" or "basic".
func BuiltinFont(name string) (*Font, bool) {
	switch name {
	case "tiny":
		return TinyFont(), true
	case "basic", "7x13":
		return BasicFont(), true
	default:
		return nil, false
	}
}
