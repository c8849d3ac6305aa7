package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trailblazer/pkg/geo"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats [network]",
		Short: "Summarize a network",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadNetwork(args[0])
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), g, top)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "number of busiest intersections to list")

	return cmd
}

// writeStats prints network totals and the intersections with the most
// roads.
func writeStats(w io.Writer, g *geo.Graph, top int) {
	var isolated int
	for _, in := range g.Intersections() {
		if g.Degree(in.ID) == 0 {
			isolated++
		}
	}

	fmt.Fprintln(w, StyleTitle.Render("Network"))
	rows := [][]string{
		{"Intersections", strconv.Itoa(g.IntersectionCount())},
		{"Roads", strconv.Itoa(g.RoadCount())},
		{"Isolated", strconv.Itoa(isolated)},
		{"Total miles", strconv.FormatFloat(g.TotalDistance(), 'f', 2, 64)},
	}
	if b, ok := g.Bounds(); ok {
		rows = append(rows, []string{"Bounds", fmt.Sprintf("%.4f,%.4f → %.4f,%.4f", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)})
	}
	printTable(w, []string{"", "Value"}, rows)

	if top <= 0 || g.IntersectionCount() == 0 {
		return
	}
	busiest := g.Intersections()
	slices.SortStableFunc(busiest, func(a, b *geo.Intersection) int {
		return g.Degree(b.ID) - g.Degree(a.ID)
	})
	busiest = busiest[:min(top, len(busiest))]

	fmt.Fprintln(w, StyleTitle.Render("Busiest intersections"))
	rows = nil
	for _, in := range busiest {
		rows = append(rows, []string{in.ID, strconv.Itoa(g.Degree(in.ID))})
	}
	printTable(w, []string{"Intersection", "Roads"}, rows)
}
