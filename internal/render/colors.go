package render

import (
	"fmt"
	"strings"

	"github.com/jwulff/basil-go/internal/domain"
)

// Common colors.
var (
	ColorTransparent = domain.NewPixelRGBA(0, 0, 0, 0)
	ColorBlack       = domain.NewPixel(0, 0, 0)
	ColorWhite       = domain.NewPixel(255, 255, 255)
	ColorGray        = domain.NewPixel(128, 128, 128)
	ColorDimGray     = domain.NewPixel(64, 64, 64)
	ColorLightGray   = domain.NewPixel(192, 192, 192)

	ColorRed     = domain.NewPixel(255, 0, 0)
	ColorGreen   = domain.NewPixel(0, 255, 0)
	ColorBlue    = domain.NewPixel(0, 0, 255)
	ColorYellow  = domain.NewPixel(255, 255, 0)
	ColorOrange  = domain.NewPixel(255, 165, 0)
	ColorMagenta = domain.NewPixel(255, 0, 255)
	ColorCyan    = domain.NewPixel(0, 255, 255)
)

var namedColors = map[string]domain.Pixel{
	"transparent": ColorTransparent,
	"black":       ColorBlack,
	"white":       ColorWhite,
	"gray":        ColorGray,
	"dimgray":     ColorDimGray,
	"lightgray":   ColorLightGray,
	"red":         ColorRed,
	"green":       ColorGreen,
	"blue":        ColorBlue,
	"yellow":      ColorYellow,
	"orange":      ColorOrange,
	"magenta":     ColorMagenta,
	"cyan":        ColorCyan,
}

// ParseHexColor parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA. A color name from
// the palette above is accepted as well. Alpha defaults to 255.
func ParseHexColor(s string) (domain.Pixel, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return domain.Pixel{}, fmt.Errorf("invalid color %q: missing '#'", s)
	}

	var c domain.Pixel
	var n int
	var err error
	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
		n++
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xFF
		n++
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return domain.Pixel{}, fmt.Errorf("invalid color %q: unexpected length %d", s, len(s))
	}
	if err != nil {
		return domain.Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
	}
	if n < 4 {
		return domain.Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
	}
	return c, nil
}

// LerpColor linearly interpolates between two colors, alpha included.
func LerpColor(a, b domain.Pixel, t float64) domain.Pixel {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + t*float64(int(y)-int(x)))
	}
	return domain.NewPixelRGBA(lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A))
}

// DimColor reduces the brightness of a color by a factor (0-1). Alpha is kept.
func DimColor(c domain.Pixel, factor float64) domain.Pixel {
	if factor <= 0 {
		return domain.NewPixelRGBA(0, 0, 0, c.A)
	}
	if factor >= 1 {
		return c
	}
	return domain.NewPixelRGBA(
		uint8(float64(c.R)*factor),
		uint8(float64(c.G)*factor),
		uint8(float64(c.B)*factor),
		c.A,
	)
}
