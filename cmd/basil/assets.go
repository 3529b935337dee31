package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jwulff/basil-go/internal/domain"
	"github.com/jwulff/basil-go/internal/render"
	"github.com/jwulff/basil-go/internal/storage"
)

// AssetsCmd groups the asset subcommands.
type AssetsCmd struct {
	Import AssetsImportCmd `cmd:"" help:"Store an image file as a named asset."`
	List   AssetsListCmd   `cmd:"" help:"List stored assets."`
	Export AssetsExportCmd `cmd:"" help:"Write a stored asset to an image file."`
	Delete AssetsDeleteCmd `cmd:"" help:"Remove a stored asset."`
}

// AssetsImportCmd stores an image file.
type AssetsImportCmd struct {
	Path string `arg:"" help:"Image file." type:"existingfile"`
	Name string `help:"Asset name. Defaults to the file name without extension." short:"n"`
}

func (c *AssetsImportCmd) Run(g *Globals) error {
	s, err := g.Store()
	if err != nil {
		return err
	}
	b, err := domain.LoadBitmap(c.Path)
	if err != nil {
		return err
	}
	defer b.Destroy()

	name := c.Name
	if name == "" {
		name = sceneBaseName(c.Path)
	}
	asset := storage.NewAsset(name, b)
	if err := s.SaveBitmap(g.Context(), asset); err != nil {
		return fmt.Errorf("could not save asset %q: %w", name, err)
	}
	fmt.Printf("Imported %s (%dx%d)\n", name, asset.Width, asset.Height)
	return nil
}

// AssetsListCmd prints a table of stored assets.
type AssetsListCmd struct{}

func (c *AssetsListCmd) Run(g *Globals) error {
	s, err := g.Store()
	if err != nil {
		return err
	}
	assets, err := s.ListBitmaps(g.Context())
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Println("No assets stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tBYTES\tUPDATED")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\n",
			a.Name, a.Width, a.Height, humanize.Bytes(uint64(a.Size)), humanize.Time(a.UpdatedAt))
	}
	return w.Flush()
}

// AssetsExportCmd writes an asset to disk.
type AssetsExportCmd struct {
	Name string `arg:"" help:"Asset name."`
	Out  string `arg:"" help:"Output image file."`
}

func (c *AssetsExportCmd) Run(g *Globals) error {
	lib, err := g.Library()
	if err != nil {
		return err
	}
	b, err := lib.LoadAsset(g.Context(), c.Name)
	if err != nil {
		return err
	}
	defer b.Destroy()
	if err := b.Save(c.Out); err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", c.Name, c.Out)
	return nil
}

// AssetsDeleteCmd removes an asset.
type AssetsDeleteCmd struct {
	Name string `arg:"" help:"Asset name."`
}

func (c *AssetsDeleteCmd) Run(g *Globals) error {
	s, err := g.Store()
	if err != nil {
		return err
	}
	if err := s.DeleteBitmap(g.Context(), c.Name); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", c.Name)
	return nil
}

// FontsCmd groups the font subcommands.
type FontsCmd struct {
	Add FontsAddCmd `cmd:"" help:"Store a glyph atlas image as a named font."`
}

// FontsAddCmd stores an atlas under "font/<name>" and registers the font.
type FontsAddCmd struct {
	Name        string `arg:"" help:"Font name used by text layers and --font."`
	Atlas       string `arg:"" help:"Glyph atlas image: 16 cells per row starting at code point 32." type:"existingfile"`
	GlyphWidth  int    `help:"Cell width in pixels." required:""`
	GlyphHeight int    `help:"Cell height in pixels." required:""`
}

func (c *FontsAddCmd) Run(g *Globals) error {
	if _, ok := render.BuiltinFont(c.Name); ok {
		return fmt.Errorf("%q is a built-in font name", c.Name)
	}
	s, err := g.Store()
	if err != nil {
		return err
	}

	font, err := render.LoadFont(c.Atlas, c.GlyphWidth, c.GlyphHeight)
	if err != nil {
		return err
	}
	defer font.Destroy()

	atlasName := filepath.ToSlash(filepath.Join("font", c.Name))
	if err := s.SaveBitmap(g.Context(), storage.NewAsset(atlasName, font.Atlas())); err != nil {
		return fmt.Errorf("could not save atlas: %w", err)
	}
	rec := &storage.FontRecord{
		Name:        c.Name,
		Atlas:       atlasName,
		GlyphWidth:  c.GlyphWidth,
		GlyphHeight: c.GlyphHeight,
		CreatedAt:   time.Now(),
	}
	if err := s.SaveFont(g.Context(), rec); err != nil {
		return fmt.Errorf("could not save font: %w", err)
	}
	fmt.Printf("Added font %s (%dx%d, %d glyphs per row)\n", c.Name, c.GlyphWidth, c.GlyphHeight, font.GlyphsPerRow())
	return nil
}

// ConfigCmd groups the settings subcommands.
type ConfigCmd struct {
	Get   ConfigGetCmd   `cmd:"" help:"Print a setting."`
	Set   ConfigSetCmd   `cmd:"" help:"Change a setting."`
	Unset ConfigUnsetCmd `cmd:"" help:"Remove a setting."`
}

type ConfigGetCmd struct {
	Key string `arg:""`
}

func (c *ConfigGetCmd) Run(g *Globals) error {
	s, err := g.Store()
	if err != nil {
		return err
	}
	v, err := s.GetConfig(g.Context(), c.Key)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:""`
	Value string `arg:""`
}

func (c *ConfigSetCmd) Run(g *Globals) error {
	s, err := g.Store()
	if err != nil {
		return err
	}
	return s.SetConfig(g.Context(), c.Key, c.Value)
}

type ConfigUnsetCmd struct {
	Key string `arg:""`
}

func (c *ConfigUnsetCmd) Run(g *Globals) error {
	s, err := g.Store()
	if err != nil {
		return err
	}
	return s.DeleteConfig(g.Context(), c.Key)
}
