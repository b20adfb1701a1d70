package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStyleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoadStyleOverlaysDefaults(t *testing.T) {
	path := writeStyleFile(t, `
node_fill = "#101010"
pin_shape = "triangle"
wire_width = 4.0
`)

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle() error: %v", err)
	}

	if style.NodeFill != "#101010" {
		t.Errorf("NodeFill = %q, want %q", style.NodeFill, "#101010")
	}
	if style.PinShape != PinTriangle {
		t.Errorf("PinShape = %q, want %q", style.PinShape, PinTriangle)
	}
	if style.WireWidth != 4.0 {
		t.Errorf("WireWidth = %v, want 4.0", style.WireWidth)
	}

	// Untouched fields keep their defaults.
	def := DefaultStyle()
	if style.HeaderFill != def.HeaderFill {
		t.Errorf("HeaderFill = %q, want default %q", style.HeaderFill, def.HeaderFill)
	}
	if style.NodeWidth != def.NodeWidth {
		t.Errorf("NodeWidth = %v, want default %v", style.NodeWidth, def.NodeWidth)
	}
}

func TestLoadStyleUnknownKey(t *testing.T) {
	path := writeStyleFile(t, `node_color = "#fff"`)

	_, err := LoadStyle(path)
	if err == nil {
		t.Fatal("LoadStyle() with unknown key should fail")
	}
	if !strings.Contains(err.Error(), "node_color") {
		t.Errorf("error should name the unknown key, got: %v", err)
	}
}

func TestLoadStyleInvalidPinShape(t *testing.T) {
	path := writeStyleFile(t, `pin_shape = "hexagon"`)

	if _, err := LoadStyle(path); err == nil {
		t.Error("LoadStyle() with invalid pin shape should fail")
	}
}

func TestLoadStyleMissingFile(t *testing.T) {
	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadStyle() on missing file should fail")
	}
}

func TestNodeHeight(t *testing.T) {
	s := DefaultStyle()
	if got := s.NodeHeight(true); got != s.HeaderH+s.BodyH {
		t.Errorf("NodeHeight(open) = %v, want %v", got, s.HeaderH+s.BodyH)
	}
	if got := s.NodeHeight(false); got != s.HeaderH {
		t.Errorf("NodeHeight(collapsed) = %v, want %v", got, s.HeaderH)
	}
}
