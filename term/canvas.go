package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style combines foreground, background colors and attributes.
type Style struct {
	FG      lipgloss.Color // "" keeps the terminal default
	BG      lipgloss.Color
	Bold    bool
	Inverse bool
}

// Foreground returns a new style with the given foreground color.
func (s Style) Foreground(c lipgloss.Color) Style {
	s.FG = c
	return s
}

// Background returns a new style with the given background color.
func (s Style) Background(c lipgloss.Color) Style {
	s.BG = c
	return s
}

// Emphasis returns a new style with bold enabled.
func (s Style) Emphasis() Style {
	s.Bold = true
	return s
}

// Reverse returns a new style with foreground and background swapped.
func (s Style) Reverse() Style {
	s.Inverse = !s.Inverse
	return s
}

func (s Style) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Reverse(s.Inverse)
	if s.FG != "" {
		st = st.Foreground(s.FG)
	}
	if s.BG != "" {
		st = st.Background(s.BG)
	}
	return st
}

// Glyph is a single character cell on the terminal. Wide runes occupy two
// cells; the second holds rune 0.
type Glyph struct {
	Rune  rune
	Style Style
}

// emptyGlyph is a space with default style.
var emptyGlyph = Glyph{Rune: ' '}

// Canvas is a 2D grid of glyphs representing a drawable surface.
type Canvas struct {
	glyphs []Glyph
	width  int
	height int
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	width, height = max(0, width), max(0, height)
	c := &Canvas{
		glyphs: make([]Glyph, width*height),
		width:  width,
		height: height,
	}
	c.Clear()
	return c
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.height }

// InBounds returns true if the given coordinates are within the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Canvas) index(x, y int) int {
	return y*c.width + x
}

// Get returns the glyph at the given coordinates.
// Returns an empty glyph if out of bounds.
func (c *Canvas) Get(x, y int) Glyph {
	if !c.InBounds(x, y) {
		return emptyGlyph
	}
	return c.glyphs[c.index(x, y)]
}

// Set sets the glyph at the given coordinates.
// Does nothing if out of bounds.
func (c *Canvas) Set(x, y int, g Glyph) {
	if !c.InBounds(x, y) {
		return
	}
	c.glyphs[c.index(x, y)] = g
}

// Clear resets the canvas to empty glyphs.
func (c *Canvas) Clear() {
	for i := range c.glyphs {
		c.glyphs[i] = emptyGlyph
	}
}

// FillRect fills a rectangular region with the given glyph.
func (c *Canvas) FillRect(x, y, width, height int, g Glyph) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.Set(x+dx, y+dy, g)
		}
	}
}

// Restyle rewrites the style of every glyph in a rectangular region.
func (c *Canvas) Restyle(x, y, width, height int, fn func(Style) Style) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			if !c.InBounds(x+dx, y+dy) {
				continue
			}
			i := c.index(x+dx, y+dy)
			c.glyphs[i].Style = fn(c.glyphs[i].Style)
		}
	}
}

// WriteString writes a string at the given coordinates, stopping at
// maxWidth cells. Returns the number of cells written.
func (c *Canvas) WriteString(x, y int, s string, style Style, maxWidth int) int {
	written := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if written+w > maxWidth || !c.InBounds(x+w-1, y) {
			break
		}
		c.Set(x, y, Glyph{Rune: r, Style: style})
		if w == 2 {
			c.Set(x+1, y, Glyph{Rune: 0, Style: style})
		}
		x += w
		written += w
	}
	return written
}

// HLine draws a horizontal line of the given rune.
func (c *Canvas) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		c.Set(x+i, y, Glyph{Rune: r, Style: style})
	}
}

// Box drawing characters for borders.
const (
	BoxHorizontal  = '─'
	BoxVertical    = '│'
	BoxTopLeft     = '╭'
	BoxTopRight    = '╮'
	BoxBottomLeft  = '╰'
	BoxBottomRight = '╯'
)

// DrawBorder draws a rounded border around the given rectangle.
func (c *Canvas) DrawBorder(x, y, width, height int, style Style) {
	if width < 2 || height < 2 {
		return
	}
	c.Set(x, y, Glyph{Rune: BoxTopLeft, Style: style})
	c.Set(x+width-1, y, Glyph{Rune: BoxTopRight, Style: style})
	c.Set(x, y+height-1, Glyph{Rune: BoxBottomLeft, Style: style})
	c.Set(x+width-1, y+height-1, Glyph{Rune: BoxBottomRight, Style: style})
	c.HLine(x+1, y, width-2, BoxHorizontal, style)
	c.HLine(x+1, y+height-1, width-2, BoxHorizontal, style)
	for i := 1; i < height-1; i++ {
		c.Set(x, y+i, Glyph{Rune: BoxVertical, Style: style})
		c.Set(x+width-1, y+i, Glyph{Rune: BoxVertical, Style: style})
	}
}

// Resize resizes the canvas to new dimensions.
// Existing content is preserved where it fits.
func (c *Canvas) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == c.width && height == c.height {
		return
	}
	glyphs := make([]Glyph, width*height)
	for i := range glyphs {
		glyphs[i] = emptyGlyph
	}
	for y := 0; y < min(height, c.height); y++ {
		for x := 0; x < min(width, c.width); x++ {
			glyphs[y*width+x] = c.glyphs[y*c.width+x]
		}
	}
	c.glyphs, c.width, c.height = glyphs, width, height
}

// Line returns the content of a single line with trailing spaces removed.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < c.width; x++ {
		if r := c.Get(x, y).Rune; r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// String returns the plain canvas contents, one line per row, trailing
// spaces and trailing empty lines removed.
func (c *Canvas) String() string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Render returns the canvas with styles applied, for display.
func (c *Canvas) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var cur Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == (Style{}) {
				out.WriteString(run.String())
			} else {
				out.WriteString(cur.lipgloss().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			g := c.Get(x, y)
			if g.Rune == 0 {
				continue
			}
			if g.Style != cur {
				flush()
				cur = g.Style
			}
			run.WriteRune(g.Rune)
		}
		flush()
	}
	return out.String()
}
