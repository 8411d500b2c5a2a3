package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/depeter/jellygrid/internal/app"
	"github.com/depeter/jellygrid/internal/bitmap"
	"github.com/depeter/jellygrid/internal/cache"
	"github.com/depeter/jellygrid/internal/config"
	"github.com/depeter/jellygrid/internal/grid"
	"github.com/depeter/jellygrid/internal/input"
	"github.com/depeter/jellygrid/internal/jellyfin"
	"github.com/depeter/jellygrid/internal/layout"
	"github.com/depeter/jellygrid/internal/player"
	"github.com/depeter/jellygrid/internal/render"
	"github.com/depeter/jellygrid/internal/source"
	"github.com/depeter/jellygrid/internal/touch"
)

// labelFontSize is the title size in points inside a label texture.
const labelFontSize = 13

type options struct {
	configPath  string
	placeholder int
	width       int
	height      int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "jellygrid",
		Short:        "Paged touch grid for launching Jellyfin media",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the configured Jellyfin server
  jellygrid

  # Try the grid offline with 40 generated tiles
  jellygrid --placeholder 40

  # Write a default config file
  jellygrid config init
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.toml (default: $XDG_CONFIG_HOME/jellygrid/config.toml)")
	cmd.Flags().IntVar(&opts.placeholder, "placeholder", 0, "Show N generated items instead of a server library")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Window width (overrides config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Window height (overrides config)")

	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newCacheCmd())
	return cmd
}

func loadConfig(opts *options) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFrom(opts.configPath)
	}
	return config.Load()
}

func run(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.width > 0 {
		cfg.UI.Width = opts.width
	}
	if opts.height > 0 {
		cfg.UI.Height = opts.height
	}

	defs := layout.Default()
	labels, err := source.NewLabeler(defs, labelFontSize)
	if err != nil {
		return err
	}

	var (
		src    source.Source
		client *jellyfin.Client
	)
	switch {
	case opts.placeholder > 0:
		src = &source.Placeholders{Defs: defs, Labels: labels, Count: opts.placeholder}
	case cfg.HasServer():
		client = jellyfin.NewClient(cfg.Server.URL)
		client.SetToken(cfg.Server.Token, cfg.Server.UserID)

		cacheDir, err := config.CacheDir()
		if err != nil {
			return err
		}
		imgCache, err := cache.NewImageCache(cacheDir, cfg.Source.PosterConcurrency)
		if err != nil {
			return fmt.Errorf("init image cache: %w", err)
		}
		src = &source.Jellyfin{
			Defs:        defs,
			Labels:      labels,
			Library:     client,
			Images:      imgCache,
			LibraryID:   cfg.Server.LibraryID,
			Concurrency: cfg.Source.PosterConcurrency,
		}
	default:
		log.Printf("No server configured, showing %d placeholder items", cfg.Source.PlaceholderCount)
		src = &source.Placeholders{Defs: defs, Labels: labels, Count: cfg.Source.PlaceholderCount}
	}

	touchCfg := cfg.TouchSettings()
	ctrl := grid.NewController(defs, touchCfg)
	engine := render.NewEngine(defs, touch.Uptime)
	game := app.NewGame(ctx, cfg, ctrl, engine, src, touch.Uptime)
	game.NewLauncher = func() (app.Launcher, error) {
		p, err := player.New(cfg)
		if err != nil {
			return nil, err
		}
		if client != nil {
			p.OnPlaybackEnd = func(itemID string, position float64) {
				ticks := int64(position * jellyfin.TicksPerSecond)
				if err := client.ReportPlaybackStopped(ctx, itemID, ticks); err != nil {
					log.Printf("Playback report: %v", err)
				}
			}
		}
		return p, nil
	}
	if client != nil {
		game.Reporter = client
	}
	game.Back = &input.BackWatcher{}
	game.Back.Start(ctx)
	game.Load()

	ebiten.SetWindowSize(cfg.UI.Width, cfg.UI.Height)
	ebiten.SetWindowTitle("JellyGrid")
	ebiten.SetWindowIcon(bitmap.WindowIcon())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.UI.Fullscreen)

	return ebiten.RunGame(game)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
