package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Paint classes map canvas cells to lipgloss styles at render time.
type paint uint8

const (
	paintBlank paint = iota
	paintWire
	paintPending
	paintFrame
	paintFrameSelected
	paintHeader
	paintBody
	paintPin
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	paintStyles = map[paint]lipgloss.Style{
		paintWire:          lipgloss.NewStyle().Foreground(colorDim),
		paintPending:       lipgloss.NewStyle().Foreground(colorYellow),
		paintFrame:         lipgloss.NewStyle().Foreground(colorGray),
		paintFrameSelected: lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
		paintHeader:        lipgloss.NewStyle().Foreground(colorWhite).Bold(true),
		paintBody:          lipgloss.NewStyle().Foreground(colorGray),
		paintPin:           lipgloss.NewStyle().Foreground(colorCyan),
	}
)

type cell struct {
	r rune
	p paint
}

// canvas is a fixed-size cell grid. Drawing off the grid is a no-op,
// so callers never clip coordinates themselves.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, p: p}
}

func (c *canvas) text(x, y int, s string, p paint) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, p)
	}
}

func (c *canvas) hline(x1, x2, y int, r rune, p paint) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.set(x, y, r, p)
	}
}

func (c *canvas) vline(x, y1, y2 int, r rune, p paint) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.set(x, y, r, p)
	}
}

// wire draws an orthogonal path from an output pin down to an input
// pin: drop to the midpoint row, run horizontally, drop again.
func (c *canvas) wire(x1, y1, x2, y2 int, p paint) {
	if y2 <= y1 {
		// Upward wires should not happen in a top-to-bottom layout;
		// draw something visible rather than nothing.
		c.vline(x1, y2, y1, '│', p)
		return
	}
	midY := y1 + (y2-y1)/2
	c.vline(x1, y1, midY, '│', p)
	if x1 != x2 {
		c.hline(x1, x2, midY, '─', p)
		if x2 > x1 {
			c.set(x1, midY, '└', p)
			c.set(x2, midY, '┐', p)
		} else {
			c.set(x1, midY, '┘', p)
			c.set(x2, midY, '┌', p)
		}
	}
	c.vline(x2, midY, y2, '│', p)
	if x1 != x2 {
		// Redo the corners clobbered by the second vline.
		if x2 > x1 {
			c.set(x2, midY, '┐', p)
		} else {
			c.set(x2, midY, '┌', p)
		}
	}
}

// box draws a rounded frame with a header line and optional body lines.
func (c *canvas) box(x, y, w, h int, title string, body []string, selected bool) {
	fp := paintFrame
	if selected {
		fp = paintFrameSelected
	}

	c.set(x, y, '╭', fp)
	c.set(x+w-1, y, '╮', fp)
	c.set(x, y+h-1, '╰', fp)
	c.set(x+w-1, y+h-1, '╯', fp)
	c.hline(x+1, x+w-2, y, '─', fp)
	c.hline(x+1, x+w-2, y+h-1, '─', fp)
	c.vline(x, y+1, y+h-2, '│', fp)
	c.vline(x+w-1, y+1, y+h-2, '│', fp)

	inner := w - 2
	c.hline(x+1, x+w-2, y+1, ' ', paintHeader)
	c.text(x+1+max(0, (inner-len([]rune(title)))/2), y+1, clip(title, inner), paintHeader)

	if len(body) > 0 && h >= 5 {
		c.set(x, y+2, '├', fp)
		c.set(x+w-1, y+2, '┤', fp)
		c.hline(x+1, x+w-2, y+2, '─', fp)
		for i, line := range body {
			row := y + 3 + i
			if row >= y+h-1 {
				break
			}
			c.hline(x+1, x+w-2, row, ' ', paintBody)
			c.text(x+1, row, clip(line, inner), paintBody)
		}
	}
}

func clip(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:max(0, w)])
	}
	return string(r[:w-1]) + "…"
}

// String renders the grid, styling runs of equally painted cells.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		x := 0
		for x < c.w {
			p := c.cells[y*c.w+x].p
			start := x
			for x < c.w && c.cells[y*c.w+x].p == p {
				x++
			}
			run := make([]rune, 0, x-start)
			for i := start; i < x; i++ {
				run = append(run, c.cells[y*c.w+i].r)
			}
			if style, ok := paintStyles[p]; ok {
				b.WriteString(style.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
