package render

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// PinShape selects how pins are drawn.
type PinShape string

// Supported pin shapes.
const (
	PinCircle   PinShape = "circle"
	PinSquare   PinShape = "square"
	PinTriangle PinShape = "triangle"
)

// Style defines the visual appearance of the SVG sink.
// All fields carry TOML tags so styles can be shipped as files; unset
// fields fall back to [DefaultStyle] values through [LoadStyle].
type Style struct {
	// Node box.
	NodeFill    string  `toml:"node_fill"`
	NodeStroke  string  `toml:"node_stroke"`
	NodeRadius  float64 `toml:"node_radius"`
	HeaderFill  string  `toml:"header_fill"`
	TextColor   string  `toml:"text_color"`
	FontSize    float64 `toml:"font_size"`
	NodeWidth   float64 `toml:"node_width"`
	HeaderH     float64 `toml:"header_height"`
	BodyH       float64 `toml:"body_height"`

	// Pins.
	PinSize   float64  `toml:"pin_size"`
	PinFill   string   `toml:"pin_fill"`
	PinStroke string   `toml:"pin_stroke"`
	PinShape  PinShape `toml:"pin_shape"`

	// Wires.
	WireWidth float64 `toml:"wire_width"`
	WireColor string  `toml:"wire_color"`
	// WireFrame controls wire curvature: the vertical distance the bezier
	// control points extend from each pin.
	WireFrame float64 `toml:"wire_frame"`

	// Background grid.
	GridSpacing float64 `toml:"grid_spacing"`
	GridStroke  string  `toml:"grid_stroke"`
	Background  string  `toml:"background"`

	// Selection highlight (used by artifact rendering of widget sessions).
	SelectStroke string `toml:"select_stroke"`
}

// DefaultStyle returns the standard look: light boxes, round pins, and a
// faint grid.
func DefaultStyle() Style {
	return Style{
		NodeFill:     "#ffffff",
		NodeStroke:   "#444444",
		NodeRadius:   6,
		HeaderFill:   "#e8e8f0",
		TextColor:    "#222222",
		FontSize:     14,
		NodeWidth:    160,
		HeaderH:      28,
		BodyH:        52,
		PinSize:      8,
		PinFill:      "#5b7fd4",
		PinStroke:    "#2f4a8a",
		PinShape:     PinCircle,
		WireWidth:    2,
		WireColor:    "#7a7a8c",
		WireFrame:    60,
		GridSpacing:  32,
		GridStroke:   "#ececec",
		Background:   "#fafafa",
		SelectStroke: "#d4a15b",
	}
}

// LoadStyle reads a TOML style file and overlays it on [DefaultStyle].
// Unknown keys are rejected so typos in style files surface immediately.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style %s: %w", path, err)
	}
	style := DefaultStyle()
	meta, err := toml.Decode(string(data), &style)
	if err != nil {
		return Style{}, fmt.Errorf("parse style %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Style{}, fmt.Errorf("style %s: unknown key %q", path, undecoded[0].String())
	}
	if err := style.validate(); err != nil {
		return Style{}, fmt.Errorf("style %s: %w", path, err)
	}
	return style, nil
}

func (s Style) validate() error {
	switch s.PinShape {
	case PinCircle, PinSquare, PinTriangle:
	default:
		return fmt.Errorf("invalid pin_shape %q (must be circle, square, or triangle)", s.PinShape)
	}
	if s.NodeWidth <= 0 || s.HeaderH <= 0 {
		return fmt.Errorf("node dimensions must be positive")
	}
	return nil
}

// NodeHeight returns the rendered height of a node box.
// Collapsed nodes show only the header band.
func (s Style) NodeHeight(open bool) float64 {
	if !open {
		return s.HeaderH
	}
	return s.HeaderH + s.BodyH
}
