package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwulff/basil-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssets map[string]*domain.Bitmap

func (f fakeAssets) LoadAsset(_ context.Context, name string) (*domain.Bitmap, error) {
	b, ok := f[name]
	if !ok {
		return nil, errors.New("asset not found")
	}
	return b.Clone(), nil
}

func TestParseSceneDefaults(t *testing.T) {
	s, err := ParseScene([]byte("layers: []\n"))
	require.NoError(t, err)

	assert.Equal(t, DisplayWidth, s.Width)
	assert.Equal(t, DisplayHeight, s.Height)
}

func TestParseSceneInvalid(t *testing.T) {
	_, err := ParseScene([]byte("width: [oops"))
	assert.Error(t, err)
}

func TestComposeShapes(t *testing.T) {
	s, err := ParseScene([]byte(`
width: 8
height: 6
background: "#000010"
layers:
  - type: rect
    x: 1
    y: 1
    width: 2
    height: 2
    color: "#ff0000"
  - type: line
    x: 0
    y: 5
    x2: 7
    y2: 5
    color: green
  - type: outline
    x: 4
    y: 0
    width: 4
    height: 3
`))
	require.NoError(t, err)

	frame, err := Compose(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Equal(t, 8, frame.Width())
	assert.Equal(t, 6, frame.Height())
	assert.Equal(t, domain.NewPixel(0, 0, 0x10), *frame.GetPixel(0, 0))
	assert.Equal(t, ColorRed, *frame.GetPixel(2, 2))
	assert.Equal(t, ColorGreen, *frame.GetPixel(7, 5))
	assert.Equal(t, ColorWhite, *frame.GetPixel(4, 0))
	assert.Equal(t, ColorWhite, *frame.GetPixel(7, 2))
	assert.Equal(t, domain.NewPixel(0, 0, 0x10), *frame.GetPixel(5, 1))
}

func TestComposeSpriteFromFile(t *testing.T) {
	sprite, err := domain.NewBitmapWithColor(2, 2, ColorBlue)
	require.NoError(t, err)
	sprite.SetPixel(0, 0, ColorMagenta)
	path := filepath.Join(t.TempDir(), "sprite.png")
	require.NoError(t, sprite.Save(path))

	s := &Scene{Width: 4, Height: 4, Layers: []Layer{
		{Type: LayerSprite, Path: path, X: 1, Y: 1, Key: "magenta"},
	}}
	frame, err := Compose(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Equal(t, ColorBlack, *frame.GetPixel(1, 1), "keyed pixel stays background")
	assert.Equal(t, ColorBlue, *frame.GetPixel(2, 1))
	assert.Equal(t, ColorBlue, *frame.GetPixel(2, 2))
}

func TestComposeSpriteRegionFromAsset(t *testing.T) {
	sheet, err := domain.NewBitmap(4, 2)
	require.NoError(t, err)
	sheet.Rectangle(2, 0, 2, 2, ColorYellow)
	assets := fakeAssets{"sheet": sheet}

	s := &Scene{Width: 4, Height: 4, Layers: []Layer{
		{Type: LayerSprite, Asset: "sheet", Region: &Region{X: 2, Y: 0, Width: 2, Height: 2}},
	}}
	frame, err := Compose(context.Background(), s, assets)
	require.NoError(t, err)

	assert.Equal(t, ColorYellow, *frame.GetPixel(0, 0))
	assert.Equal(t, ColorYellow, *frame.GetPixel(1, 1))
	assert.Equal(t, ColorBlack, *frame.GetPixel(2, 0))
}

func TestComposeInvalidRegion(t *testing.T) {
	sheet, err := domain.NewBitmap(4, 2)
	require.NoError(t, err)

	s := &Scene{Width: 4, Height: 4, Layers: []Layer{
		{Type: LayerRect, Width: 1, Height: 1},
		{Type: LayerSprite, Asset: "sheet", Region: &Region{X: 3, Y: 0, Width: 2, Height: 1}},
	}}
	frame, err := Compose(context.Background(), s, fakeAssets{"sheet": sheet})

	assert.Nil(t, frame)
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)
	assert.ErrorContains(t, err, "layer 1 (sprite)")
}

func TestComposeHugeRegionRejected(t *testing.T) {
	sheet, err := domain.NewBitmap(4, 4)
	require.NoError(t, err)

	s, err := ParseScene([]byte(`
width: 8
height: 8
layers:
  - type: sprite
    asset: sheet
    region: {x: 2, y: 3, width: 9223372036854775807, height: 1}
`))
	require.NoError(t, err)

	frame, err := Compose(context.Background(), s, fakeAssets{"sheet": sheet})
	assert.Nil(t, frame)
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)
}

func TestComposeText(t *testing.T) {
	s := &Scene{Width: 16, Height: 8, Layers: []Layer{
		{Type: LayerText, Text: "1", X: 0, Y: 0, Color: "#ff0000"},
		{Type: LayerText, Text: "1", X: 8, Y: 0, Font: "tiny"},
	}}
	frame, err := Compose(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.NewPixel(254, 0, 0), *frame.GetPixel(1, 0))
	assert.Equal(t, domain.NewPixel(254, 254, 254), *frame.GetPixel(9, 0))
}

func TestComposeTextCentered(t *testing.T) {
	s := &Scene{Width: 64, Height: 8, Layers: []Layer{
		{Type: LayerText, Text: "1", Y: 0, Align: AlignCenter},
	}}
	frame, err := Compose(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.NewPixel(254, 254, 254), *frame.GetPixel(31, 0))
}

func TestComposeFontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.png")
	tiny := TinyFont()
	require.NoError(t, tiny.Atlas().Save(path))
	tiny.Destroy()

	s := &Scene{Width: 8, Height: 8, Layers: []Layer{
		{Type: LayerText, Text: "1", FontFile: path, GlyphWidth: TinyCellWidth, GlyphHeight: TinyCellHeight},
	}}
	frame, err := Compose(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.NewPixel(254, 254, 254), *frame.GetPixel(1, 0))
}

func TestComposeErrors(t *testing.T) {
	cases := map[string]*Scene{
		"unknown layer":   {Width: 4, Height: 4, Layers: []Layer{{Type: "circle"}}},
		"bad color":       {Width: 4, Height: 4, Layers: []Layer{{Type: LayerRect, Color: "#zz"}}},
		"bad background":  {Width: 4, Height: 4, Background: "nope"},
		"bad size":        {Width: 0, Height: 4},
		"unknown font":    {Width: 4, Height: 4, Layers: []Layer{{Type: LayerText, Text: "x", Font: "comic"}}},
		"bad align":       {Width: 4, Height: 4, Layers: []Layer{{Type: LayerText, Text: "x", Align: "justify"}}},
		"empty sprite":    {Width: 4, Height: 4, Layers: []Layer{{Type: LayerSprite}}},
		"no asset store":  {Width: 4, Height: 4, Layers: []Layer{{Type: LayerSprite, Asset: "a"}}},
		"missing sprite":  {Width: 4, Height: 4, Layers: []Layer{{Type: LayerSprite, Path: "/nonexistent/a.png"}}},
		"bad sprite key":  {Width: 4, Height: 4, Layers: []Layer{{Type: LayerSprite, Asset: "a", Key: "#1"}}},
		"missing asset":   {Width: 4, Height: 4, Layers: []Layer{{Type: LayerSprite, Asset: "b"}}},
		"bad font glyphs": {Width: 4, Height: 4, Layers: []Layer{{Type: LayerText, Text: "x", FontFile: "f.png"}}},
	}
	a, err := domain.NewBitmap(1, 1)
	require.NoError(t, err)
	assets := fakeAssets{"a": a}

	for name, s := range cases {
		frame, err := Compose(context.Background(), s, assets)
		if name == "no asset store" {
			frame, err = Compose(context.Background(), s, nil)
		}
		assert.Error(t, err, name)
		assert.Nil(t, frame, name)
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 10\nheight: 5\n"), 0o644))

	s, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 5, s.Height)

	_, err = LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
