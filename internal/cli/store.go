package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	netio "github.com/matzehuels/trailblazer/pkg/io"
	"github.com/matzehuels/trailblazer/pkg/store"
)

// storeCommand creates the store command group for the network database.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and load networks in the document store",
		Long:  `Save and load named networks in the MongoDB store configured under [store].`,
	}

	cmd.AddCommand(c.storePushCommand())
	cmd.AddCommand(c.storePullCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.NetworkStore) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	s, err := c.openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()
	return fn(s)
}

// storePushCommand creates the "store push" subcommand.
func (c *CLI) storePushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push [name] [network]",
		Short: "Save a network file under a name",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadNetwork(args[1])
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s store.NetworkStore) error {
				if err := s.Save(cmd.Context(), args[0], netio.FromGraph(g)); err != nil {
					return err
				}
				printSuccess("Saved %s (%d intersections, %d roads)", args[0], g.IntersectionCount(), g.RoadCount())
				return nil
			})
		},
	}
}

// storePullCommand creates the "store pull" subcommand.
func (c *CLI) storePullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull [name] [output]",
		Short: "Write a stored network to a file (.json or text)",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.NetworkStore) error {
				n, err := s.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				g, err := n.Graph()
				if err != nil {
					return err
				}
				if err := netio.Save(g, args[1]); err != nil {
					return err
				}
				printFile(args[1])
				return nil
			})
		},
	}
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored networks",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.NetworkStore) error {
				summaries, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(summaries) == 0 {
					printInfo("No stored networks")
					return nil
				}
				rows := make([][]string, len(summaries))
				for i, sum := range summaries {
					rows[i] = []string{
						sum.Name,
						strconv.Itoa(sum.Intersections),
						strconv.Itoa(sum.Roads),
						sum.UpdatedAt.Local().Format(time.DateTime),
					}
				}
				printTable(cmd.OutOrStdout(), []string{"Name", "Intersections", "Roads", "Updated"}, rows)
				return nil
			})
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored network",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.NetworkStore) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}
