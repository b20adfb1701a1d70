package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeize/pkg/io"
	"github.com/matzehuels/treeize/pkg/layout"
)

// layoutCommand creates the layout command, which computes node
// positions for a graph and writes the positioned graph back to JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node positions for a graph",
		Long:  `Layout reads a graph from a JSON file, assigns every node a row by longest path from the roots, orders rows to reduce wire crossings, and writes the positioned graph back out.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			logger.Info("loaded graph", "nodes", g.NodeCount(), "wires", g.WireCount())

			opts := c.pipelineOptions()
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner := c.newRunner(cmd, noCache)
			res, hit, err := runner.ComputeLayoutWithCacheInfo(cmd.Context(), g, opts)
			if err != nil {
				return fmt.Errorf("layout: %w", err)
			}
			layout.Apply(g, res.Positions)

			path := output
			if path == "" {
				path = args[0]
			}
			if err := io.ExportJSON(g, path); err != nil {
				return err
			}

			printSuccess("Layout written")
			printFile(path)
			printStats(g.NodeCount(), g.WireCount(), hit)
			logger.Debug("layout complete", "rows", len(res.Rows), "crossings", res.Crossings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the input file)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the layout cache")

	return cmd
}
