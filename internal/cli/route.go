package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/route"
)

// routeCommand creates the route command, which prints driving directions.
func (c *CLI) routeCommand() *cobra.Command {
	var show, debug bool

	cmd := &cobra.Command{
		Use:   "route [network] [from] [to]",
		Short: "Print the shortest route between two intersections",
		Long: `Print the shortest route between two intersections.

The first line is the starting intersection. If no path connects the two
intersections, a single "No path connects" line follows; otherwise the
intersections along the route follow, then the total distance in miles.`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadNetwork(args[0])
			if err != nil {
				return err
			}
			from, to := args[1], args[2]

			path, err := route.Find(cmd.Context(), g, from, to)
			if err != nil {
				return err
			}
			if err := writeDirections(cmd.OutOrStdout(), g, from, to, path); err != nil {
				return err
			}

			if !show {
				return nil
			}
			for _, r := range path {
				r.Highlighted = true
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return runViewer(g, cfg.View, debug)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "open the interactive map with the route highlighted")
	cmd.Flags().BoolVar(&debug, "debug", false, "outline the focus bounding box in the map")

	return cmd
}

// writeDirections prints the route report for a path found by
// [route.ShortestPath].
func writeDirections(w io.Writer, g *geo.Graph, from, to string, path []*geo.Road) error {
	start, ok := g.Intersection(from)
	if !ok {
		return errs.Wrap(errs.ErrCodeNotFound, route.ErrUnknownEndpoint, "start %q", from)
	}
	fmt.Fprintln(w, start.ID)

	if len(path) == 0 {
		fmt.Fprintf(w, "No path connects %s and %s\n", from, to)
		return nil
	}

	fmt.Fprintf(w, "Going from %s to %s\n", from, to)
	stops := route.Stops(start, path)
	for _, in := range stops[1:] {
		fmt.Fprintln(w, in.ID)
	}
	_, err := fmt.Fprintf(w, "Total miles travelled: %s\n", formatMiles(route.TotalDistance(path)))
	return err
}

// exactArgs is cobra.ExactArgs reporting INVALID_ARGUMENTS.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errs.New(errs.ErrCodeInvalidArguments, "%s: accepts %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
