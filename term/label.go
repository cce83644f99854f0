package term

import (
	"strings"

	"github.com/kungfusheep/cells"
	"github.com/mattn/go-runewidth"
)

// Drawable views paint themselves into a rectangle of a canvas.
type Drawable interface {
	Draw(c *Canvas, x, y, width, height int)
}

// Label is a text view. Lines wider than the space it is given wrap.
type Label struct {
	text        string
	Style       Style
	Highlighted bool

	// Reuses counts how many times the label was prepared for reuse.
	Reuses int
}

// NewLabel creates an empty label.
func NewLabel() *Label {
	return &Label{}
}

// SetText sets the text.
func (l *Label) SetText(s string) { l.text = s }

// Text returns the text.
func (l *Label) Text() string { return l.text }

// PrepareForReuse clears state left by a previous item.
func (l *Label) PrepareForReuse() {
	l.text = ""
	l.Style = Style{}
	l.Highlighted = false
	l.Reuses++
}

// IntrinsicSize is the unwrapped text size.
func (l *Label) IntrinsicSize() (cells.Size, bool) {
	w, h := 0, 0
	for _, line := range strings.Split(l.text, "\n") {
		w = max(w, runewidth.StringWidth(line))
		h++
	}
	return cells.Size{Width: float64(w), Height: float64(h)}, true
}

// SizeThatFits wraps the text to the proposed width.
func (l *Label) SizeThatFits(p cells.ProposedSize) cells.Size {
	natural, _ := l.IntrinsicSize()
	width, ok := p.Width.Get()
	if !ok || width >= natural.Width {
		return natural
	}
	lines := l.wrap(max(1, int(width)))
	w := 0
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return cells.Size{Width: float64(w), Height: float64(len(lines))}
}

// wrap breaks the text into lines no wider than width cells.
func (l *Label) wrap(width int) []string {
	var out []string
	for _, line := range strings.Split(l.text, "\n") {
		for runewidth.StringWidth(line) > width {
			head := runewidth.Truncate(line, width, "")
			if head == "" {
				break
			}
			out = append(out, head)
			line = line[len(head):]
		}
		out = append(out, line)
	}
	return out
}

// Draw paints the wrapped text, clipped to the rectangle.
func (l *Label) Draw(c *Canvas, x, y, width, height int) {
	style := l.Style
	if l.Highlighted {
		style = style.Reverse()
		c.FillRect(x, y, width, height, Glyph{Rune: ' ', Style: style})
	}
	for i, line := range l.wrap(max(1, width)) {
		if i >= height {
			break
		}
		c.WriteString(x, y+i, line, style, width)
	}
}

// Fill is a solid block view.
type Fill struct {
	Rune  rune
	Style Style
}

// NewFill creates a blank fill.
func NewFill() *Fill {
	return &Fill{Rune: ' '}
}

// PrepareForReuse resets the fill to blank.
func (f *Fill) PrepareForReuse() {
	f.Rune = ' '
	f.Style = Style{}
}

// Draw fills the rectangle.
func (f *Fill) Draw(c *Canvas, x, y, width, height int) {
	r := f.Rune
	if r == 0 {
		r = ' '
	}
	c.FillRect(x, y, width, height, Glyph{Rune: r, Style: f.Style})
}
