package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/jwulff/basil-go/internal/codec"
	"github.com/jwulff/basil-go/internal/domain"
	"github.com/jwulff/basil-go/internal/parallel"
	"github.com/jwulff/basil-go/internal/render"
	"github.com/jwulff/basil-go/internal/storage"
)

// RenderCmd composes scene files into images.
type RenderCmd struct {
	Scenes  []string `arg:"" help:"Scene files (YAML)." type:"existingfile"`
	Out     string   `help:"Output image, or output directory when rendering several scenes." short:"o" default:"."`
	Workers int      `help:"Number of scenes rendered at once. 0 uses every CPU." short:"w" default:"0"`
	Cache   bool     `help:"Store the last rendered frame for preview."`
}

// Run renders every scene. A failing scene is logged and the rest continue.
func (c *RenderCmd) Run(g *Globals) error {
	lib, err := g.Library()
	if err != nil {
		return err
	}

	single := len(c.Scenes) == 1 && isImagePath(c.Out)
	if !single {
		if err := os.MkdirAll(c.Out, 0o755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
	}

	var failed atomic.Int32
	var last atomic.Pointer[storage.CachedFrame]
	pool := parallel.Start(g.Context(), c.Workers)
	for _, scenePath := range c.Scenes {
		pool.Do(func(ctx context.Context) error {
			out := c.Out
			if !single {
				out = filepath.Join(c.Out, sceneBaseName(scenePath)+".png")
			}
			frame, err := renderScene(ctx, lib, scenePath, out)
			if err != nil {
				slog.Error("render failed", "scene", scenePath, "error", err)
				failed.Add(1)
				return fmt.Errorf("%s: %w", scenePath, err)
			}
			slog.Info("rendered", "scene", scenePath, "out", out)
			if c.Cache {
				last.Store(storage.NewCachedFrame(scenePath, frame))
			}
			frame.Destroy()
			return nil
		})
	}
	waitErr := pool.Wait()

	if f := last.Load(); f != nil {
		if err := lib.Store.CacheFrame(g.Context(), f); err != nil {
			return fmt.Errorf("could not cache frame: %w", err)
		}
	}
	if waitErr != nil {
		return fmt.Errorf("%d of %d scenes failed: %w", failed.Load(), len(c.Scenes), waitErr)
	}
	return nil
}

func renderScene(ctx context.Context, lib storage.Library, scenePath, out string) (*domain.Bitmap, error) {
	scene, err := render.LoadScene(scenePath)
	if err != nil {
		return nil, err
	}
	frame, err := render.Compose(ctx, scene, lib)
	if err != nil {
		return nil, err
	}
	if err := frame.Save(out); err != nil {
		frame.Destroy()
		return nil, err
	}
	return frame, nil
}

// isImagePath reports whether path names an image file rather than a directory.
func isImagePath(path string) bool {
	if filepath.Ext(path) == "" {
		return false
	}
	_, err := codec.FormatFor(path)
	return err == nil
}

func sceneBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TextCmd renders a single string into an image sized to fit it.
type TextCmd struct {
	Text       string `arg:"" help:"Text to render. Supports \\n and \\t escapes."`
	Out        string `help:"Output image." short:"o" required:""`
	Font       string `help:"Built-in font (tiny, basic) or a stored font name." short:"f" default:"tiny"`
	Color      string `help:"Text color." short:"c" default:"white"`
	Background string `help:"Background color." short:"b" default:"black"`
	Padding    int    `help:"Border around the text in pixels." default:"1"`
}

// Validate checks colors and padding before any work is done.
func (c *TextCmd) Validate() error {
	if _, err := render.ParseHexColor(c.Color); err != nil {
		return err
	}
	if _, err := render.ParseHexColor(c.Background); err != nil {
		return err
	}
	if c.Padding < 0 {
		return errors.New("padding must not be negative")
	}
	return nil
}

// Run lays out the text and writes the image.
func (c *TextCmd) Run(g *Globals) error {
	font, err := resolveFont(g, c.Font)
	if err != nil {
		return err
	}
	defer font.Destroy()

	text := strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(c.Text)
	tint, _ := render.ParseHexColor(c.Color)
	bg, _ := render.ParseHexColor(c.Background)

	bounds := render.MeasureText(text, font)
	canvas, err := domain.NewBitmapWithColor(bounds.Width+2*c.Padding, bounds.Height+2*c.Padding, bg)
	if err != nil {
		return fmt.Errorf("nothing to draw: %w", err)
	}
	defer canvas.Destroy()

	render.DrawText(canvas, text, c.Padding, c.Padding, font, tint)
	if err := canvas.Save(c.Out); err != nil {
		return err
	}
	slog.Info("text rendered", "out", c.Out, "width", canvas.Width(), "height", canvas.Height())
	return nil
}

func resolveFont(g *Globals, name string) (*render.Font, error) {
	if f, ok := render.BuiltinFont(name); ok {
		return f, nil
	}
	lib, err := g.Library()
	if err != nil {
		return nil, err
	}
	return lib.LoadFont(g.Context(), name)
}
