package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeize/pkg/io"
	"github.com/matzehuels/treeize/pkg/layout"
	"github.com/matzehuels/treeize/pkg/observability"
	"github.com/matzehuels/treeize/pkg/tree"
	"github.com/matzehuels/treeize/pkg/widget"
)

// viewCommand creates the view command, which opens a graph in the
// interactive terminal widget.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		editable bool
		write    bool
		relayout bool
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a graph interactively in the terminal",
		Long: `View opens a graph in a full-screen terminal widget. Nodes can be
selected, collapsed, and inspected; in editable mode (--editable, or
press 'e') nodes can be dragged and new wires drawn between pins.
Wires can never be deleted from inside the widget.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}

			if relayout || needsLayout(g) {
				runner := c.newRunner(cmd, false)
				opts := c.pipelineOptions()
				if err := opts.ValidateAndSetDefaults(); err != nil {
					return err
				}
				res, err := runner.ComputeLayout(cmd.Context(), g, opts)
				if err != nil {
					return fmt.Errorf("layout: %w", err)
				}
				layout.Apply(g, res.Positions)
			}

			mode := widget.ModeReadonly
			if editable {
				mode = widget.ModeEditable
			}
			m := widget.New(g, nil, widget.WithMode(mode))

			hooks := observability.Widget()
			hooks.OnSessionStart(cmd.Context(), g.NodeCount(), editable)
			start := time.Now()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("widget: %w", err)
			}
			fm, ok := final.(widget.Model)
			if !ok {
				return fmt.Errorf("widget: unexpected model type %T", final)
			}
			hooks.OnSessionEnd(cmd.Context(), time.Since(start), fm.Edited())

			if fm.Edited() {
				if !write {
					printWarning("Graph was edited; re-run with --write to save changes")
					return nil
				}
				if err := io.ExportJSON(fm.Graph(), args[0]); err != nil {
					return err
				}
				printSuccess("Saved changes")
				printFile(args[0])
			}
			logger.Debug("view session ended", "edited", fm.Edited())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&editable, "editable", "e", false, "start in editable mode")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write edits back to the input file on exit")
	cmd.Flags().BoolVar(&relayout, "relayout", false, "recompute the layout even if nodes have positions")

	return cmd
}

// needsLayout reports whether every node still sits at the origin,
// which is what freshly imported graphs without positions look like.
func needsLayout(g *tree.Graph) bool {
	for _, n := range g.Nodes() {
		if n.Pos != (tree.Point{}) {
			return false
		}
	}
	return g.NodeCount() > 0
}
