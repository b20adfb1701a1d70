// Package pipeline provides the layout → render pipeline with caching.
//
// Both the CLI and the HTTP server use a [Runner] so caching and
// logging behave the same across entry points. The pipeline consists
// of two stages:
//
//  1. Layout: compute top-to-bottom positions for the graph
//  2. Render: generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeize/pkg/cache"
	"github.com/matzehuels/treeize/pkg/layout"
	"github.com/matzehuels/treeize/pkg/render"
	"github.com/matzehuels/treeize/pkg/tree"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Layout options
	HorizontalSpacing float64 `json:"horizontal_spacing,omitempty"`
	VerticalSpacing   float64 `json:"vertical_spacing,omitempty"`
	StartX            float64 `json:"start_x,omitempty"`
	StartY            float64 `json:"start_y,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	StylePath string   `json:"style,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout holds the computed positions, row orders, and crossing
	// count.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	WireCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // layout came from cache
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks formats and applies defaults. The
// method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.HorizontalSpacing <= 0 {
		o.HorizontalSpacing = layout.DefaultHorizontalSpacing
	}
	if o.VerticalSpacing <= 0 {
		o.VerticalSpacing = layout.DefaultVerticalSpacing
	}
	o.validated = true
	return nil
}

// LayoutConfig converts options into a layout configuration.
func (o Options) LayoutConfig() layout.Config {
	return layout.Config{
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		StartX:            o.StartX,
		StartY:            o.StartY,
	}
}

// LayoutKeyOpts converts options into a layout cache key.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		StartX:            o.StartX,
		StartY:            o.StartY,
	}
}

// ArtifactKeyOpts converts options into an artifact cache key for a
// single format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.StylePath,
		Detailed: o.Detailed,
	}
}

// LoadStyle resolves the render style from the options, falling back
// to the default style when no path is set.
func (o Options) LoadStyle() (render.Style, error) {
	if o.StylePath == "" {
		return render.DefaultStyle(), nil
	}
	return render.LoadStyle(o.StylePath)
}

// graphPositions applies computed positions onto a clone of g, for
// sinks that export the graph itself rather than a drawing of it.
func graphPositions(g *tree.Graph, res layout.Result) *tree.Graph {
	clone := g.Clone()
	layout.Apply(clone, res.Positions)
	return clone
}
