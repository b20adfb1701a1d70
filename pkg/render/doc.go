// Package render turns a laid-out tree graph into visual artifacts.
//
// # Overview
//
// Two sinks are provided:
//
//   - [SVG] draws the graph directly: a background grid, node boxes with a
//     header band, pins on the top and bottom edges, and wires as cubic
//     bezier curves dropping from output pins to input pins.
//   - [ToDOT] exports the graph as Graphviz DOT (rankdir=TB), which
//     [RenderSVG] and [RenderPNG] rasterize through goccy/go-graphviz.
//
// # Styling
//
// [Style] collects every tunable visual parameter with sensible defaults
// from [DefaultStyle]. Styles can be loaded from TOML files with
// [LoadStyle], so a project can ship its own look without recompiling:
//
//	style, err := render.LoadStyle("dark.toml")
//	svg := render.SVG(g, result, style)
//
// Collapsed nodes draw only their header band. Nodes never render a footer
// region.
package render
