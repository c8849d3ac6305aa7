// Package cli implements the trailblazer command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trailblazer/pkg/buildinfo"
	"github.com/matzehuels/trailblazer/pkg/cache"
	"github.com/matzehuels/trailblazer/pkg/config"
	"github.com/matzehuels/trailblazer/pkg/geo"
	netio "github.com/matzehuels/trailblazer/pkg/io"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/projection"
	"github.com/matzehuels/trailblazer/pkg/store"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "trailblazer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string

	// openStore connects the network store; tests replace it.
	openStore func(ctx context.Context, cfg config.Store) (store.NetworkStore, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		openStore: openMongo,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Trailblazer finds and draws shortest routes on road networks",
		Long:         `Trailblazer loads road networks of intersections and roads, finds shortest routes between intersections, and renders the network on a Web Mercator map.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.tilesCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// config loads the --config file, or the user's default file when present.
func (c *CLI) config() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadOrDefault(config.DefaultPath())
}

// loadNetwork reads a text or JSON network file.
func (c *CLI) loadNetwork(path string) (*geo.Graph, error) {
	p := newProgress(c.Logger)
	g, err := netio.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded network", "path", path, "intersections", g.IntersectionCount(), "roads", g.RoadCount())
	p.debug("Loaded " + path)
	return g, nil
}

// newView projects g onto the configured panel and resets the view.
func newView(cfg config.View, g *geo.Graph) *mapview.View {
	p := projection.NewWebMercator(float64(cfg.Width), float64(cfg.Height), cfg.Zoom)
	v := mapview.New(g, p)
	v.ResetView(cfg.MinPixelWidth)
	return v
}

// newCache opens the configured cache, or a no-op cache when disabled.
func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, cfg.Options())
}

// newFetcher builds a tile fetcher over the configured cache. The caller
// closes the returned cache.
func newFetcher(ctx context.Context, cfg config.Config, noCache bool) (*tiles.Fetcher, cache.Cache, error) {
	tmpl, err := cfg.Tiles.Template()
	if err != nil {
		return nil, nil, err
	}
	ttl, err := cfg.Tiles.TTLDuration()
	if err != nil {
		return nil, nil, err
	}
	cc, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, nil, err
	}
	f := tiles.NewFetcher(tmpl, tiles.FetcherOptions{
		Provider: cfg.Tiles.ProviderName(),
		Cache:    cc,
		Keyer:    cache.NewKeyer(cfg.Cache.Prefix),
		TTL:      ttl,
	})
	return f, cc, nil
}

func openMongo(ctx context.Context, cfg config.Store) (store.NetworkStore, error) {
	return store.NewMongo(ctx, store.MongoConfig{URI: cfg.URI, Database: cfg.Database})
}
