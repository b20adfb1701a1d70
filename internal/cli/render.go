package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeize/pkg/io"
	"github.com/matzehuels/treeize/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "svg", "png", "dot", "json"
	style    string   // style file overriding the config
	detailed bool     // include node metadata in DOT output
	noCache  bool     // bypass the layout and artifact caches
}

// renderCommand creates the render command, which produces one file
// per requested format (SVG, PNG, DOT, positioned JSON).
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph to SVG, PNG, DOT, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "TOML style file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node metadata in DOT output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout and artifact caches")

	return cmd
}

// runRender loads the graph, runs the layout and render pipeline, and
// writes each artifact file.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	g, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Info("loaded graph", "nodes", g.NodeCount(), "wires", g.WireCount())

	popts := c.pipelineOptions()
	popts.Formats = opts.formats
	popts.Detailed = opts.detailed
	if opts.style != "" {
		popts.StylePath = opts.style
	}

	spin := newSpinnerWithContext(cmd.Context(), "rendering "+filepath.Base(input))
	spin.Start()

	runner := c.newRunner(cmd, opts.noCache)
	res, err := runner.Execute(cmd.Context(), g, popts)
	if err != nil {
		spin.StopWithError("render failed")
		return err
	}
	spin.Stop()

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %d format(s)", len(opts.formats))
	printStats(res.Stats.NodeCount, res.Stats.WireCount, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	logger.Debug("render complete",
		"hash", res.GraphHash,
		"layout_hit", res.CacheInfo.LayoutHit,
		"render_hit", res.CacheInfo.RenderHit,
		"layout_time", res.Stats.LayoutTime,
		"render_time", res.Stats.RenderTime)
	return nil
}

// outputPath derives the output file for a format. With a single
// format the --output flag is used verbatim when set; with multiple
// formats it acts as a base path and the extension is appended.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		ext := filepath.Ext(base)
		if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
			base = strings.TrimSuffix(base, ext)
		}
	}
	return base + "." + format
}
