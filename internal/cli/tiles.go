package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

// tilesCommand creates the tiles command group.
func (c *CLI) tilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Inspect and prefetch map tiles",
	}

	cmd.AddCommand(c.tilesURLCommand())
	cmd.AddCommand(c.tilesAtCommand())
	cmd.AddCommand(c.tilesFetchCommand())

	return cmd
}

// tilesURLCommand creates the "tiles url" subcommand.
func (c *CLI) tilesURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "url [z] [x] [y]",
		Short: "Print the URL of a tile from the configured provider",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTile(args)
			if err != nil {
				return err
			}
			if err := t.Validate(tiles.DefaultLevels); err != nil {
				return err
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			tmpl, err := cfg.Tiles.Template()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tmpl.URL(t.X, t.Y, t.Z))
			return nil
		},
	}
}

// tilesAtCommand creates the "tiles at" subcommand.
func (c *CLI) tilesAtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "at [lat] [lon] [z]",
		Short: "Print the tile containing a coordinate",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err1 := strconv.ParseFloat(args[0], 64)
			lon, err2 := strconv.ParseFloat(args[1], 64)
			z, err3 := strconv.Atoi(args[2])
			if err1 != nil || err2 != nil || err3 != nil {
				return errs.New(errs.ErrCodeInvalidArguments, "tiles at: want numeric lat, lon and zoom")
			}
			fmt.Fprintln(cmd.OutOrStdout(), tiles.At(lat, lon, z))
			return nil
		},
	}
}

// tilesFetchCommand creates the "tiles fetch" subcommand.
func (c *CLI) tilesFetchCommand() *cobra.Command {
	var zoom int
	var noCache bool

	cmd := &cobra.Command{
		Use:   "fetch [network]",
		Short: "Download the tiles covering a network into the cache",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			g, err := c.loadNetwork(args[0])
			if err != nil {
				return err
			}
			f, cc, err := newFetcher(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer cc.Close()

			v := newView(cfg.View, g)
			z := zoom
			if z < 0 {
				z = tiles.ZoomFor(v.Projection(), f.Manager().Levels())
			}
			cover := tiles.Cover(v.Projection(), v.VisibleRect(), z)
			ts := make([]tiles.Tile, len(cover))
			for i, p := range cover {
				ts[i] = p.Tile
			}

			p := newProgress(c.Logger)
			data, err := f.FetchAll(ctx, ts)
			if err != nil {
				return err
			}
			var size int
			for _, b := range data {
				size += len(b)
			}
			p.done(fmt.Sprintf("Fetched %d tiles at zoom %d", len(data), z))
			printSuccess("Cached %d tiles (%d KB) from %s", len(data), size/1024, cfg.Tiles.ProviderName())
			return nil
		},
	}

	cmd.Flags().IntVar(&zoom, "zoom", -1, "tile zoom level (default: matched to the view)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "download without writing the cache")

	return cmd
}

func parseTile(args []string) (tiles.Tile, error) {
	var n [3]int
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return tiles.Tile{}, errs.New(errs.ErrCodeInvalidArguments, "tile coordinate %q is not an integer", a)
		}
		n[i] = v
	}
	return tiles.Tile{Z: n[0], X: n[1], Y: n[2]}, nil
}
