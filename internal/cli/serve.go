package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/trailblazer/internal/server"
	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/metrics"
	"github.com/matzehuels/trailblazer/pkg/observability"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noTiles, noCache bool

	cmd := &cobra.Command{
		Use:   "serve [network]",
		Short: "Serve a network over HTTP",
		Long: `Serve a network over HTTP.

Endpoints:
  GET /healthz              liveness and network size
  GET /network              the network as JSON
  GET /route?from=&to=      shortest route (or from_lat/from_lon, to_lat/to_lon)
  GET /render.svg           map image; from, to, debug, labels and tiles query flags
  GET /tiles/{z}/{x}/{y}    cached map tiles
  GET /metrics              Prometheus metrics

The network argument defaults to server.network from the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			network := cfg.Server.Network
			if len(args) == 1 {
				network = args[0]
			}
			if network == "" {
				return errs.New(errs.ErrCodeInvalidArguments, "serve: no network given and server.network is not set")
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			g, err := c.loadNetwork(network)
			if err != nil {
				return err
			}

			m := metrics.New()
			m.Install()
			defer observability.Reset()

			var fetcher *tiles.Fetcher
			if !noTiles {
				f, cc, err := newFetcher(ctx, cfg, noCache)
				if err != nil {
					return err
				}
				defer cc.Close()
				fetcher = f
			}

			srv := server.New(server.Options{
				Graph:         g,
				Logger:        c.Logger,
				Fetcher:       fetcher,
				Metrics:       m,
				Width:         cfg.View.Width,
				Height:        cfg.View.Height,
				MinPixelWidth: cfg.View.MinPixelWidth,
			})
			printInfo("Serving %s on %s", network, StyleValue.Render(cfg.Server.Addr))
			return server.Run(ctx, cfg.Server.Addr, srv.Router(), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noTiles, "no-tiles", false, "disable the tile proxy")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not cache fetched tiles")

	return cmd
}
