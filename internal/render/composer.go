package render

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jwulff/basil-go/internal/domain"
)

// Default scene size, matching a Pixoo64 display.
const (
	DisplayWidth  = 64
	DisplayHeight = 64
)

// Layer types.
const (
	LayerRect    = "rect"
	LayerOutline = "outline"
	LayerLine    = "line"
	LayerSprite  = "sprite"
	LayerText    = "text"
)

// Text alignment values for text layers.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Scene describes a frame as a background color and an ordered list of
// layers, each drawn over the previous ones.
type Scene struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background string  `yaml:"background"`
	Layers     []Layer `yaml:"layers"`
}

// Layer is one drawing step. Which fields apply depends on Type.
type Layer struct {
	Type   string `yaml:"type"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	X2     int    `yaml:"x2,omitempty"`
	Y2     int    `yaml:"y2,omitempty"`
	Color  string `yaml:"color,omitempty"`

	// sprite
	Path   string  `yaml:"path,omitempty"`
	Asset  string  `yaml:"asset,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Region *Region `yaml:"region,omitempty"`

	// text
	Text        string `yaml:"text,omitempty"`
	Font        string `yaml:"font,omitempty"`
	FontFile    string `yaml:"font_file,omitempty"`
	GlyphWidth  int    `yaml:"glyph_width,omitempty"`
	GlyphHeight int    `yaml:"glyph_height,omitempty"`
	Align       string `yaml:"align,omitempty"`
}

// Region selects part of a sprite.
type Region struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AssetLoader resolves named bitmaps for sprite layers. The caller owns the
// returned bitmap.
type AssetLoader interface {
	LoadAsset(ctx context.Context, name string) (*domain.Bitmap, error)
}

// FontLoader resolves fonts that are neither built in nor loaded from a file.
// An AssetLoader that also implements FontLoader serves named text layer fonts.
type FontLoader interface {
	LoadFont(ctx context.Context, name string) (*Font, error)
}

// ParseScene decodes a YAML scene and fills in defaults.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not parse scene: %w", err)
	}
	if s.Width == 0 {
		s.Width = DisplayWidth
	}
	if s.Height == 0 {
		s.Height = DisplayHeight
	}
	return &s, nil
}

// LoadScene reads and parses a YAML scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scene %q: %w", path, err)
	}
	return ParseScene(data)
}

// Compose renders the scene into a new bitmap. assets may be nil when no
// sprite layer names a stored asset. The first failing layer aborts the
// composition.
func Compose(ctx context.Context, scene *Scene, assets AssetLoader) (*domain.Bitmap, error) {
	bg := ColorBlack
	if scene.Background != "" {
		var err error
		if bg, err = ParseHexColor(scene.Background); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}
	frame, err := domain.NewBitmapWithColor(scene.Width, scene.Height, bg)
	if err != nil {
		return nil, err
	}

	c := composer{ctx: ctx, frame: frame, assets: assets, fonts: map[string]*Font{}}
	defer c.close()

	for i, l := range scene.Layers {
		if err := c.draw(l); err != nil {
			frame.Destroy()
			return nil, fmt.Errorf("layer %d (%s): %w", i, l.Type, err)
		}
	}
	domain.Logger().Debug("scene composed", "width", scene.Width, "height", scene.Height, "layers", len(scene.Layers))
	return frame, nil
}

type composer struct {
	ctx    context.Context
	frame  *domain.Bitmap
	assets AssetLoader
	fonts  map[string]*Font
}

func (c *composer) close() {
	for _, f := range c.fonts {
		f.Destroy()
	}
}

func (c *composer) draw(l Layer) error {
	switch l.Type {
	case LayerRect, LayerOutline, LayerLine:
		color, err := layerColor(l.Color)
		if err != nil {
			return err
		}
		switch l.Type {
		case LayerRect:
			c.frame.Rectangle(l.X, l.Y, l.Width, l.Height, color)
		case LayerOutline:
			c.frame.DrawRect(l.X, l.Y, l.Width, l.Height, color)
		default:
			c.frame.DrawLine(l.X, l.Y, l.X2, l.Y2, color)
		}
		return nil
	case LayerSprite:
		return c.drawSprite(l)
	case LayerText:
		return c.drawText(l)
	default:
		return fmt.Errorf("unknown layer type %q", l.Type)
	}
}

func (c *composer) drawSprite(l Layer) error {
	sprite, err := c.loadSprite(l)
	if err != nil {
		return err
	}
	defer sprite.Destroy()

	var key domain.Pixel
	keyed := l.Key != ""
	if keyed {
		if key, err = ParseHexColor(l.Key); err != nil {
			return fmt.Errorf("key: %w", err)
		}
	}

	if r := l.Region; r != nil {
		if keyed {
			return c.frame.BlitRegionKeyed(sprite, l.X, l.Y, r.X, r.Y, r.Width, r.Height, key)
		}
		return c.frame.BlitRegion(sprite, l.X, l.Y, r.X, r.Y, r.Width, r.Height)
	}
	if keyed {
		c.frame.BlitKeyed(sprite, l.X, l.Y, key)
	} else {
		c.frame.Blit(sprite, l.X, l.Y)
	}
	return nil
}

func (c *composer) loadSprite(l Layer) (*domain.Bitmap, error) {
	switch {
	case l.Path != "":
		return domain.LoadBitmap(l.Path)
	case l.Asset != "":
		if c.assets == nil {
			return nil, fmt.Errorf("asset %q requested without an asset store", l.Asset)
		}
		return c.assets.LoadAsset(c.ctx, l.Asset)
	default:
		return nil, errors.New("sprite needs a path or an asset")
	}
}

func (c *composer) drawText(l Layer) error {
	font, err := c.font(l)
	if err != nil {
		return err
	}
	tint := ColorWhite
	if l.Color != "" {
		if tint, err = ParseHexColor(l.Color); err != nil {
			return err
		}
	}

	switch l.Align {
	case "", AlignLeft:
		DrawText(c.frame, l.Text, l.X, l.Y, font, tint)
	case AlignCenter:
		DrawTextCentered(c.frame, l.Text, c.frame.Width(), l.Y, font, tint)
	case AlignRight:
		DrawTextRightAligned(c.frame, l.Text, l.X, l.Y, font, tint)
	default:
		return fmt.Errorf("unknown alignment %q", l.Align)
	}
	return nil
}

// font returns the layer's font, loading each distinct font once per scene.
func (c *composer) font(l Layer) (*Font, error) {
	key := l.Font
	if l.FontFile != "" {
		key = fmt.Sprintf("file:%s:%dx%d", l.FontFile, l.GlyphWidth, l.GlyphHeight)
	}
	if key == "" {
		key = "tiny"
	}
	if f, ok := c.fonts[key]; ok {
		return f, nil
	}

	var f *Font
	if l.FontFile != "" {
		var err error
		if f, err = LoadFont(l.FontFile, l.GlyphWidth, l.GlyphHeight); err != nil {
			return nil, err
		}
	} else if builtin, ok := BuiltinFont(key); ok {
		f = builtin
	} else if fl, ok := c.assets.(FontLoader); ok {
		var err error
		if f, err = fl.LoadFont(c.ctx, key); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("unknown font %q", key)
	}
	c.fonts[key] = f
	return f, nil
}

func layerColor(s string) (domain.Pixel, error) {
	if s == "" {
		return ColorWhite, nil
	}
	return ParseHexColor(s)
}
