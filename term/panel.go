package term

import (
	"github.com/kungfusheep/cells"
)

// Panel lays arranged views out in a line. It implements cells.Arranger, so
// a cells.StackReloader can keep it in sync with sections.
type Panel struct {
	Axis    cells.Axis
	Spacing int
	Align   cells.Align
	views   []cells.View
}

// NewPanel creates an empty panel.
func NewPanel(axis cells.Axis) *Panel {
	return &Panel{Axis: axis}
}

// SetArranged implements cells.Arranger.
func (p *Panel) SetArranged(views []cells.View) {
	p.views = views
}

// Arranged returns the arranged views, in order.
func (p *Panel) Arranged() []cells.View { return p.views }

// Configure implements cells.Arranger.
func (p *Panel) Configure(style cells.StackStyle) {
	if style.Axis != nil {
		p.Axis = *style.Axis
	}
	if style.Spacing != nil {
		p.Spacing = max(0, int(*style.Spacing))
	}
	if style.Alignment != nil {
		p.Align = *style.Alignment
	}
}

// Nested implements cells.Arranger.
func (p *Panel) Nested() cells.Arranger {
	return NewPanel(p.Axis)
}

// IntrinsicSize is the size the arranged views need.
func (p *Panel) IntrinsicSize() (cells.Size, bool) {
	var main, cross float64
	for i, v := range p.views {
		s := viewSize(v)
		if i > 0 {
			main += float64(p.Spacing)
		}
		main += s.Along(p.Axis)
		cross = max(cross, s.Along(p.Axis.Other()))
	}
	return cells.SizeAlong(p.Axis, main, cross), true
}

func viewSize(v cells.View) cells.Size {
	if is, ok := v.(cells.IntrinsicSizer); ok {
		if s, ok := is.IntrinsicSize(); ok {
			return s
		}
	}
	return cells.Size{Width: 1, Height: 1}
}

// Draw paints the arranged views one after another, clipped to the rectangle.
func (p *Panel) Draw(c *Canvas, x, y, width, height int) {
	bounds := cells.R(float64(x), float64(y), float64(width), float64(height))
	origin := bounds.Min(p.Axis)
	end := origin + bounds.Size.Along(p.Axis)
	crossOrigin := bounds.Min(p.Axis.Other())
	crossSpace := bounds.Size.Along(p.Axis.Other())
	for _, v := range p.views {
		if origin >= end {
			break
		}
		s := viewSize(v)
		main := min(s.Along(p.Axis), end-origin)
		cross := min(s.Along(p.Axis.Other()), crossSpace)
		co := crossOrigin
		switch p.Align {
		case cells.AlignEnd:
			co += crossSpace - cross
		case cells.AlignCenter:
			co += float64(int((crossSpace - cross) / 2))
		}
		r := cells.Rect{Origin: cells.Point{X: co, Y: origin}, Size: cells.Size{Width: cross, Height: main}}
		if p.Axis == cells.Horizontal {
			r = cells.R(origin, co, main, cross)
		}
		vx, vy, vw, vh := snap(r, cells.Point{})
		drawView(c, v, vx, vy, vw, vh)
		origin += main + float64(p.Spacing)
	}
}
