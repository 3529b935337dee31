// Package main is the entry point for the basil compositing tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/jwulff/basil-go/internal/domain"
	"github.com/jwulff/basil-go/internal/storage"
	"github.com/jwulff/basil-go/internal/storage/sqlite"
)

// Globals are the flags shared by every command.
type Globals struct {
	DB       string `help:"Asset database path." env:"BASIL_DB" default:"basil.db" type:"path"`
	LogLevel string `help:"Log level." env:"BASIL_LOG_LEVEL" enum:"debug,info,warn,error" default:"warn"`

	ctx   context.Context
	store storage.Store
}

// Context returns the command context, cancelled on SIGINT or SIGTERM.
func (g *Globals) Context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}
	return g.ctx
}

// Store opens the asset database on first use.
func (g *Globals) Store() (storage.Store, error) {
	if g.store != nil {
		return g.store, nil
	}
	s, err := sqlite.NewFileStore(g.DB)
	if err != nil {
		return nil, fmt.Errorf("could not open asset database %q: %w", g.DB, err)
	}
	g.store = s
	return s, nil
}

// Library returns a scene asset loader backed by the store.
func (g *Globals) Library() (storage.Library, error) {
	s, err := g.Store()
	if err != nil {
		return storage.Library{}, err
	}
	return storage.Library{Store: s}, nil
}

func (g *Globals) close() {
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			slog.Error("could not close asset database", "error", err)
		}
		g.store = nil
	}
}

// CLI is the command tree.
type CLI struct {
	Globals

	Render  RenderCmd  `cmd:"" help:"Compose scene files into image files."`
	Text    TextCmd    `cmd:"" help:"Render a string into an image file."`
	Preview PreviewCmd `cmd:"" help:"Show an ASCII preview of a scene or of the last cached frame."`
	Send    SendCmd    `cmd:"" help:"Compose a scene and show it on a Pixoo display."`
	Assets  AssetsCmd  `cmd:"" help:"Manage stored bitmap assets."`
	Fonts   FontsCmd   `cmd:"" help:"Manage stored fonts."`
	Config  ConfigCmd  `cmd:"" help:"Read and write stored settings."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("basil"),
		kong.Description("2D raster compositing: scenes, sprites, bitmap fonts and Pixoo output."),
		kong.UsageOnError(),
	)

	setupLogger(cli.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cli.Globals.ctx = ctx
	defer cli.Globals.close()

	err := kctx.Run(&cli.Globals)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		cli.Globals.close()
		stop()
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	domain.SetLogger(logger)
}
