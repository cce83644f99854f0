package term

import (
	"math"

	"github.com/golang/glog"
	"github.com/kungfusheep/cells"
)

// Grid renders a layout tree through a cells.Collection. A vertical root
// scrolls vertically, a horizontal root horizontally.
type Grid struct {
	collection *cells.Collection

	width, height int
	offset        cells.Point
	scrolling     bool

	visible    []cells.ID
	visibleSet map[cells.ID]bool
}

// NewGrid creates a grid for a viewport of the given size.
func NewGrid(width, height int, opts ...cells.Option) *Grid {
	g := &Grid{
		width:      max(1, width),
		height:     max(1, height),
		visibleSet: make(map[cells.ID]bool),
	}
	g.collection = cells.NewCollection(g, opts...)
	return g
}

// Collection returns the collection the grid renders.
func (g *Grid) Collection() *cells.Collection { return g.collection }

// Reload replaces the layout tree.
func (g *Grid) Reload(root cells.Node, done func()) {
	g.collection.Reload(root, done)
}

// PerformBatch implements cells.Host.
func (g *Grid) PerformBatch(_ cells.Changeset, done func()) {
	g.layout()
	done()
}

// ReloadData implements cells.Host.
func (g *Grid) ReloadData(done func()) {
	g.layout()
	done()
}

// IsScrolling implements cells.Host.
func (g *Grid) IsScrolling() bool { return g.scrolling }

// ScrollBy moves the viewport along the root's axis.
func (g *Grid) ScrollBy(delta int) {
	g.scrolling = true
	size := g.collection.ContentSize()
	if axis := g.collection.Root().Properties().Axis; axis != nil && *axis == cells.Horizontal {
		g.offset.X = clampOffset(g.offset.X+float64(delta), size.Width, float64(g.width))
	} else {
		g.offset.Y = clampOffset(g.offset.Y+float64(delta), size.Height, float64(g.height))
	}
	g.sync()
}

// Settle marks the end of a scroll gesture.
func (g *Grid) Settle() { g.scrolling = false }

// Resize changes the viewport and lays the tree out again.
func (g *Grid) Resize(width, height int) {
	g.width, g.height = max(1, width), max(1, height)
	g.layout()
}

func clampOffset(v, content, viewport float64) float64 {
	return math.Max(0, math.Min(v, content-viewport))
}

// layout prepares the collection and materialises what is on screen. Views
// created on the way can size themselves, so a pass that created views is
// followed by one more.
func (g *Grid) layout() {
	for pass := 0; pass < 2; pass++ {
		g.collection.Prepare(cells.Size{Width: float64(g.width), Height: float64(g.height)})
		size := g.collection.ContentSize()
		g.offset.X = clampOffset(g.offset.X, size.Width, float64(g.width))
		g.offset.Y = clampOffset(g.offset.Y, size.Height, float64(g.height))
		if g.sync() == 0 {
			return
		}
	}
}

func (g *Grid) viewportRect() cells.Rect {
	return cells.Rect{Origin: g.offset, Size: cells.Size{Width: float64(g.width), Height: float64(g.height)}}
}

// sync dequeues leaves that entered the viewport and returns how many views
// had to be materialised.
func (g *Grid) sync() int {
	a := g.collection.Adapter()
	created := 0
	elems := g.collection.ElementsIn(g.viewportRect())
	next := make([]cells.ID, 0, len(elems))
	nextSet := make(map[cells.ID]bool, len(elems))
	for _, p := range elems {
		if id := p.Cell.ID(); !nextSet[id] {
			next = append(next, id)
			nextSet[id] = true
		}
	}
	for _, id := range g.visible {
		if !nextSet[id] {
			a.EndDisplayingID(id)
		}
	}
	for _, id := range next {
		if _, live := a.View(id); live {
			continue
		}
		path, ok := a.PathOf(id)
		if !ok {
			glog.V(1).Infof("[layout]placed leaf %s is not in the collection\n", id)
			continue
		}
		a.Dequeue(path)
		if !g.visibleSet[id] {
			a.WillDisplay(path)
		}
		created++
	}
	g.visible, g.visibleSet = next, nextSet
	return created
}

// Canvas draws the visible leaves.
func (g *Grid) Canvas() *Canvas {
	c := NewCanvas(g.width, g.height)
	a := g.collection.Adapter()
	for _, p := range g.collection.ElementsIn(g.viewportRect()) {
		view, ok := a.View(p.Cell.ID())
		if !ok {
			continue
		}
		x, y, w, h := snap(p.Rect, g.offset)
		drawView(c, view, x, y, w, h)
	}
	return c
}

// Render returns the styled viewport.
func (g *Grid) Render() string { return g.Canvas().Render() }

// String returns the plain viewport.
func (g *Grid) String() string { return g.Canvas().String() }

// snap converts a layout rect to whole terminal cells. Edges are rounded
// separately so adjacent rects neither overlap nor leave gaps.
func snap(r cells.Rect, offset cells.Point) (x, y, w, h int) {
	x0 := int(math.Round(r.MinX() - offset.X))
	y0 := int(math.Round(r.MinY() - offset.Y))
	x1 := int(math.Round(r.MaxX() - offset.X))
	y1 := int(math.Round(r.MaxY() - offset.Y))
	return x0, y0, x1 - x0, y1 - y0
}

// drawView paints view into a rectangle. Layout views paint their own
// placements, offset into the rectangle and clipped to it.
func drawView(c *Canvas, view cells.View, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	switch v := view.(type) {
	case Drawable:
		v.Draw(c, x, y, w, h)
	case *cells.LayoutView:
		v.ReloadIfNeeded()
		for _, p := range v.Placements() {
			inner, ok := v.View(p.Cell.ID())
			if !ok {
				continue
			}
			px, py, pw, ph := snap(p.Rect, cells.Point{X: -float64(x), Y: -float64(y)})
			pw = min(pw, x+w-px)
			ph = min(ph, y+h-py)
			drawView(c, inner, px, py, pw, ph)
		}
	}
}
