package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jwulff/basil-go/internal/domain"
	"github.com/jwulff/basil-go/internal/pixoo"
	"github.com/jwulff/basil-go/internal/render"
	"github.com/jwulff/basil-go/internal/storage"
)

// PreviewCmd prints a frame to the terminal.
type PreviewCmd struct {
	Scene string `arg:"" optional:"" help:"Scene file. Without one the last cached frame is shown." type:"existingfile"`
}

// Run composes the scene, or loads the cached frame, and prints it.
func (c *PreviewCmd) Run(g *Globals) error {
	var frame *domain.Bitmap
	title := c.Scene
	if c.Scene != "" {
		lib, err := g.Library()
		if err != nil {
			return err
		}
		if frame, err = composeFile(g.Context(), lib, c.Scene); err != nil {
			return err
		}
	} else {
		s, err := g.Store()
		if err != nil {
			return err
		}
		cached, err := s.GetCachedFrame(g.Context())
		if err != nil {
			if storage.IsNotFound(err) {
				return fmt.Errorf("no cached frame: render a scene with --cache first")
			}
			return err
		}
		if frame, err = cached.Bitmap(); err != nil {
			return err
		}
		title = fmt.Sprintf("%s (cached %s)", cached.Scene, humanize.Time(cached.GeneratedAt))
	}
	defer frame.Destroy()

	fmt.Printf("%dx%d %s\n\n", frame.Width(), frame.Height(), title)
	printFrameASCII(os.Stdout, frame)
	fmt.Println()
	fmt.Println("Legend: █=bright ▓=medium ▒=dim ░=faint ·=very dim (space)=off")
	return nil
}

func composeFile(ctx context.Context, assets render.AssetLoader, path string) (*domain.Bitmap, error) {
	scene, err := render.LoadScene(path)
	if err != nil {
		return nil, err
	}
	return render.Compose(ctx, scene, assets)
}

// printFrameASCII renders the frame as shaded block characters.
func printFrameASCII(w io.Writer, frame *domain.Bitmap) {
	border := strings.Repeat("─", frame.Width())
	fmt.Fprintf(w, "  ┌%s┐\n", border)

	var p domain.Pixel
	var row strings.Builder
	for y := 0; y < frame.Height(); y++ {
		row.Reset()
		for x := 0; x < frame.Width(); x++ {
			frame.ReadPixel(x, y, &p)
			row.WriteString(shade(p))
		}
		fmt.Fprintf(w, "%2d│%s│\n", y, row.String())
	}

	fmt.Fprintf(w, "  └%s┘\n", border)
}

// shade maps a pixel's brightness, scaled by its alpha, to a block character.
func shade(p domain.Pixel) string {
	brightness := (int(p.R) + int(p.G) + int(p.B)) / 3 * int(p.A) / 255

	switch {
	case brightness > 200:
		return "█"
	case brightness > 150:
		return "▓"
	case brightness > 100:
		return "▒"
	case brightness > 50:
		return "░"
	case brightness > 10:
		return "·"
	default:
		return " "
	}
}

// SendCmd composes a scene and pushes it to a Pixoo display.
type SendCmd struct {
	Scene      string        `arg:"" help:"Scene file." type:"existingfile"`
	IP         string        `help:"Pixoo IP address. Falls back to the stored pixoo.ip setting." env:"PIXOO_IP"`
	Brightness int           `help:"Set display brightness (0-100) before sending. -1 leaves it unchanged." default:"-1"`
	Timeout    time.Duration `help:"Device request timeout." default:"10s"`
}

const pixooIPKey = "pixoo.ip"

// Run sends the frame and caches it.
func (c *SendCmd) Run(g *Globals) error {
	lib, err := g.Library()
	if err != nil {
		return err
	}
	ip := c.IP
	if ip == "" {
		if ip, err = lib.Store.GetConfig(g.Context(), pixooIPKey); err != nil {
			if storage.IsNotFound(err) {
				return fmt.Errorf("no Pixoo address: pass --ip, set PIXOO_IP or run 'basil config set %s <ip>'", pixooIPKey)
			}
			return err
		}
	}

	frame, err := composeFile(g.Context(), lib, c.Scene)
	if err != nil {
		return err
	}
	defer frame.Destroy()
	if err := pixoo.CheckSize(frame); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(g.Context(), c.Timeout)
	defer cancel()

	client := pixoo.NewClient(ip)
	slog.Info("sending frame", "device", client.Endpoint(), "scene", c.Scene)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("pixoo at %s is not reachable: %w", ip, err)
	}
	if c.Brightness >= 0 {
		if err := client.SetBrightness(ctx, c.Brightness); err != nil {
			return fmt.Errorf("could not set brightness: %w", err)
		}
	}
	if err := client.Present(ctx, frame); err != nil {
		return fmt.Errorf("could not send frame: %w", err)
	}

	if err := lib.Store.CacheFrame(g.Context(), storage.NewCachedFrame(c.Scene, frame)); err != nil {
		slog.Warn("could not cache frame", "error", err)
	}
	fmt.Printf("Frame sent to %s\n", ip)
	return nil
}
