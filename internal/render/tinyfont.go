package render

import (
	"unicode"

	"github.com/jwulff/basil-go/internal/domain"
)

// Tiny font glyph size (3x5 pixels) and the cell it is laid out in.
const (
	TinyCharWidth  = 3
	TinyCharHeight = 5
	TinyCellWidth  = TinyCharWidth + 1
	TinyCellHeight = TinyCharHeight + 1
)

// atlasColumns is the number of glyph cells per atlas row for built-in fonts.
const atlasColumns = 16

// tinyFontData contains the 3x5 bitmap font data.
var tinyFontData = map[rune][TinyCharHeight]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},

	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b011, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b110, 0b100, 0b110, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},

	' ':  {0b000, 0b000, 0b000, 0b000, 0b000},
	'!':  {0b010, 0b010, 0b010, 0b000, 0b010},
	'?':  {0b111, 0b001, 0b010, 0b000, 0b010},
	'/':  {0b001, 0b001, 0b010, 0b100, 0b100},
	'-':  {0b000, 0b000, 0b111, 0b000, 0b000},
	'+':  {0b000, 0b010, 0b111, 0b010, 0b000},
	'=':  {0b000, 0b111, 0b000, 0b111, 0b000},
	':':  {0b000, 0b010, 0b000, 0b010, 0b000},
	'.':  {0b000, 0b000, 0b000, 0b000, 0b010},
	',':  {0b000, 0b000, 0b000, 0b010, 0b100},
	'%':  {0b101, 0b001, 0b010, 0b100, 0b101},
	'(':  {0b001, 0b010, 0b010, 0b010, 0b001},
	')':  {0b100, 0b010, 0b010, 0b010, 0b100},
	'\'': {0b010, 0b010, 0b000, 0b000, 0b000},
	'_':  {0b000, 0b000, 0b000, 0b000, 0b111},
}

// TinyGlyph returns the 3x5 rows for a character. Lowercase letters share the
// uppercase shapes; unknown characters are blank.
func TinyGlyph(char rune) ([TinyCharHeight]uint8, bool) {
	rows, ok := tinyFontData[unicode.ToUpper(char)]
	return rows, ok
}

// TinyFont builds a font from the 3x5 glyph table. Each glyph sits in a 4x6
// cell so consecutive glyphs get one column and one row of spacing.
func TinyFont() *Font {
	atlas := newGlyphAtlas(TinyCellWidth, TinyCellHeight)
	for cp := rune(FirstGlyph); cp <= LastGlyph; cp++ {
		rows, ok := TinyGlyph(cp)
		if !ok {
			continue
		}
		ox, oy := atlasCell(cp, TinyCellWidth, TinyCellHeight)
		for row := 0; row < TinyCharHeight; row++ {
			for col := 0; col < TinyCharWidth; col++ {
				if rows[row]&(1<<(TinyCharWidth-1-col)) != 0 {
					atlas.SetPixel(ox+col, oy+row, ColorWhite)
				}
			}
		}
	}
	return &Font{glyphWidth: TinyCellWidth, glyphHeight: TinyCellHeight, atlas: atlas}
}

// newGlyphAtlas allocates a transparent atlas large enough for every code
// point in [FirstGlyph, LastGlyph].
func newGlyphAtlas(cellWidth, cellHeight int) *domain.Bitmap {
	glyphs := LastGlyph - FirstGlyph + 1
	rows := (glyphs + atlasColumns - 1) / atlasColumns
	atlas, err := domain.NewBitmap(atlasColumns*cellWidth, rows*cellHeight)
	if err != nil {
		panic(err) // fixed, small dimensions
	}
	return atlas
}

func atlasCell(cp rune, cellWidth, cellHeight int) (x, y int) {
	idx := int(cp - FirstGlyph)
	return idx % atlasColumns * cellWidth, idx / atlasColumns * cellHeight
}
