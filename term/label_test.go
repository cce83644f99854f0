package term

import (
	"testing"

	"github.com/kungfusheep/cells"
)

func TestLabelSizes(t *testing.T) {
	l := NewLabel()
	l.SetText("hello world\nhi")
	if s, _ := l.IntrinsicSize(); s != (cells.Size{Width: 11, Height: 2}) {
		t.Errorf("intrinsic = %+v", s)
	}
	if s := l.SizeThatFits(cells.ProposedSize{Width: cells.Fixed(5)}); s != (cells.Size{Width: 5, Height: 4}) {
		t.Errorf("wrapped = %+v", s)
	}
	if s := l.SizeThatFits(cells.Propose(40, 1)); s.Width != 11 {
		t.Errorf("unwrapped width = %v", s.Width)
	}
}

func TestLabelDraw(t *testing.T) {
	l := NewLabel()
	l.SetText("abcdef")
	c := NewCanvas(4, 3)
	l.Draw(c, 0, 0, 4, 2)
	if got := c.String(); got != "abcd\nef" {
		t.Errorf("canvas = %q", got)
	}
}

func TestLabelHighlightAndReuse(t *testing.T) {
	l := NewLabel()
	l.SetText("x")
	l.Highlighted = true
	c := NewCanvas(3, 1)
	l.Draw(c, 0, 0, 3, 1)
	if !c.Get(2, 0).Style.Inverse {
		t.Error("highlight should fill the whole row reversed")
	}

	l.PrepareForReuse()
	if l.Text() != "" || l.Highlighted || l.Reuses != 1 {
		t.Errorf("label not reset: %+v", l)
	}
}

func TestPanelArrangesViews(t *testing.T) {
	p := NewPanel(cells.Horizontal)
	r := cells.NewStackReloader(p)
	spacing := 1.0
	r.Reload([]cells.Section{
		cells.NewSection("bar", textCell("a", "one"), textCell("b", "two")).Stack(cells.StackStyle{Spacing: &spacing}),
	}, nil)

	if len(p.Arranged()) != 2 {
		t.Fatalf("arranged = %d", len(p.Arranged()))
	}
	if s, _ := p.IntrinsicSize(); s != (cells.Size{Width: 7, Height: 1}) {
		t.Errorf("size = %+v", s)
	}
	c := NewCanvas(10, 1)
	p.Draw(c, 0, 0, 10, 1)
	if got := c.String(); got != "one two" {
		t.Errorf("panel = %q", got)
	}

	// clipped to the rectangle
	c = NewCanvas(10, 1)
	p.Draw(c, 0, 0, 5, 1)
	if got := c.String(); got != "one t" {
		t.Errorf("clipped panel = %q", got)
	}
}

func TestPanelVertical(t *testing.T) {
	p := NewPanel(cells.Vertical)
	p.Align = cells.AlignStart
	cells.NewStackReloader(p).ReloadCells([]cells.Cell{textCell("a", "top"), textCell("b", "bottom")}, nil)
	c := NewCanvas(8, 3)
	p.Draw(c, 0, 0, 8, 3)
	if got := c.String(); got != "top\nbottom" {
		t.Errorf("panel = %q", got)
	}
}
