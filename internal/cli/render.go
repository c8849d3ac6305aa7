package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trailblazer/pkg/cache"
	"github.com/matzehuels/trailblazer/pkg/config"
	"github.com/matzehuels/trailblazer/pkg/geo"
	netio "github.com/matzehuels/trailblazer/pkg/io"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/render"
	"github.com/matzehuels/trailblazer/pkg/route"
)

// renderTTL bounds how long converted renders stay cached.
const renderTTL = 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file, "-" for stdout
	format  string  // svg, png, pdf, dot or graphviz
	from    string  // route start to highlight
	to      string  // route end to highlight
	width   int     // panel width override
	height  int     // panel height override
	scale   float64 // PNG scale
	debug   bool    // outline the focus bounding box
	labels  bool    // mark intersections
	tiles   bool    // draw background map tiles
	noCache bool    // bypass the cache
}

// renderKey identifies a render in the cache.
type renderKey struct {
	Format string
	Scale  float64
	Debug  bool
	Labels bool
	Tiles  string
	View   config.View
	From   string
	To     string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [network]",
		Short: "Render a network to SVG, PNG, PDF or Graphviz",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: network name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(render.Formats, ", ")+" (default: from --output, else svg)")
	cmd.Flags().StringVar(&opts.from, "from", "", "highlight the shortest route starting here")
	cmd.Flags().StringVar(&opts.to, "to", "", "highlight the shortest route ending here")
	cmd.Flags().IntVar(&opts.width, "width", 0, "panel width in pixels (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "panel height in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "outline the focus bounding box in blue")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "mark intersections with their ids")
	cmd.Flags().BoolVar(&opts.tiles, "tiles", false, "draw background map tiles")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the tile and render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.width > 0 {
		cfg.View.Width = opts.width
	}
	if opts.height > 0 {
		cfg.View.Height = opts.height
	}
	if opts.format == "" {
		opts.format = render.FormatFromPath(opts.output)
	}
	if opts.output == "" {
		opts.output = defaultOutput(path, opts.format)
	}

	g, err := c.loadNetwork(path)
	if err != nil {
		return err
	}
	if opts.from != "" || opts.to != "" {
		if _, err := route.NewRouter(g).FindShortestPath(opts.from, opts.to); err != nil {
			return err
		}
	}

	p := newProgress(c.Logger)
	v := newView(cfg.View, g)
	data, err := c.renderCached(ctx, cfg, v, opts)
	if err != nil {
		return err
	}
	p.done("Rendered " + opts.format)

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printFile(opts.output)
	return nil
}

// renderCached renders v, reusing a cached result for the same network and
// options.
func (c *CLI) renderCached(ctx context.Context, cfg config.Config, v *mapview.View, opts renderOpts) ([]byte, error) {
	var (
		cc       cache.Cache
		imgs     []render.Image
		complete = true
	)
	if opts.tiles {
		fetcher, fc, err := newFetcher(ctx, cfg, opts.noCache)
		if err != nil {
			return nil, err
		}
		cc = fc
		if imgs, err = render.TileImages(ctx, v, fetcher); err != nil {
			printWarning("Background tiles unavailable: %v", err)
			complete = false
		} else {
			c.Logger.Debug("fetched tiles", "count", len(imgs))
		}
	} else {
		var err error
		if cc, err = newCache(ctx, cfg.Cache, opts.noCache); err != nil {
			return nil, err
		}
	}
	defer cc.Close()

	keyTiles := ""
	if opts.tiles {
		keyTiles = cfg.Tiles.ProviderName()
	}
	key := cache.NewKeyer(cfg.Cache.Prefix).RenderKey(networkHash(v.Graph()), renderKey{
		Format: opts.format,
		Scale:  opts.scale,
		Debug:  opts.debug,
		Labels: opts.labels,
		Tiles:  keyTiles,
		View:   cfg.View,
		From:   opts.from,
		To:     opts.to,
	})
	if data, ok, err := cc.Get(ctx, key); err == nil && ok {
		c.Logger.Debug("render cache hit", "format", opts.format)
		return data, nil
	}

	data, err := render.Render(ctx, v, opts.format, render.Options{
		Debug:  opts.debug,
		Labels: opts.labels,
		Scale:  opts.scale,
		Images: imgs,
	})
	if err != nil {
		return nil, err
	}
	if !complete {
		return data, nil
	}
	if err := cc.Set(ctx, key, data, renderTTL); err != nil {
		c.Logger.Warn("render cache write failed", "err", err)
	}
	return data, nil
}

// networkHash fingerprints a graph by its JSON encoding.
func networkHash(g *geo.Graph) string {
	var buf bytes.Buffer
	_ = netio.WriteJSON(g, &buf)
	return cache.Hash(buf.Bytes())
}

// defaultOutput names the output after the network file.
func defaultOutput(network, format string) string {
	base := strings.TrimSuffix(filepath.Base(network), filepath.Ext(network))
	switch format {
	case render.FormatGraphviz:
		return base + ".neato.svg"
	default:
		return base + "." + format
	}
}
