// Package pkg provides the core libraries for Treeize tree-graph rendering.
//
// # Overview
//
// Treeize lays out and renders tree-shaped node graphs where every wire
// runs from a node's output pin down to another node's input pin. The
// pkg directory is organized into three main areas:
//
//  1. [tree], [layout] - Domain logic (graph structure, effects, positioning)
//  2. [render], [widget] - Presentation (SVG/DOT/PNG output, terminal UI)
//  3. [cache], [store], [pipeline] - Infrastructure and orchestration
//
// # Architecture
//
// The typical data flow through Treeize:
//
//	JSON graph file
//	         ↓
//	    [io] package (import/export)
//	         ↓
//	    [tree] package (graph structure + effects)
//	         ↓
//	    [layout] package (rows + crossing reduction)
//	         ↓
//	    [render] / [widget] (SVG, PNG, DOT, terminal)
//
// # Quick Start
//
// Load a graph, lay it out, and render it:
//
//	g, err := io.ImportJSON("graph.json")
//	if err != nil {
//		return err
//	}
//	res := layout.AndApply(g, layout.Config{})
//	svg, err := render.SVG(g, res)
//
// The [pipeline] package wraps these steps with content-addressed
// caching; [widget] opens the same graph in an interactive bubbletea
// program.
package pkg
