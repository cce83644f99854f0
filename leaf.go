package cells

// DefaultLeafSize is the size of a leaf with no live view, no previous frame
// and no proposal to follow. It is never zero so the first layout pass before
// any view exists still produces a usable tree.
var DefaultLeafSize = Size{Width: 100, Height: 100}

// A Cell is itself a layout leaf.

func (c Cell) Properties() Properties { return DefaultProperties() }
func (c Cell) NewCache() any          { return nil }

// Measure asks the live view when there is one, then the previous frame,
// then falls back to the proposal or DefaultLeafSize.
func (c Cell) Measure(p ProposedSize, ctx Context, _ any) ProposedSize {
	id := c.laidOut(ctx).id
	views := ctx.views()
	if v, ok := views.View(id); ok {
		if s, ok := measureView(v, p); ok {
			return ProposeSize(s)
		}
	}
	if s, ok := views.CachedSize(id); ok {
		return ProposeSize(s)
	}
	return ProposeSize(p.Or(DefaultLeafSize))
}

func measureView(v View, p ProposedSize) (Size, bool) {
	if p.IsUnspecified() {
		if is, ok := v.(IntrinsicSizer); ok {
			if s, ok := is.IntrinsicSize(); ok {
				return s, true
			}
		}
	}
	if m, ok := v.(Measurer); ok {
		return m.SizeThatFits(p), true
	}
	if is, ok := v.(IntrinsicSizer); ok {
		return is.IntrinsicSize()
	}
	return Size{}, false
}

func (c Cell) Place(bounds Rect, ctx Context, _ any, emit func(Cell, Rect)) {
	emit(c.laidOut(ctx), bounds)
}

func (c Cell) Items(id ID, visit func(Cell)) {
	visit(c.laidOut(Context{ID: id}))
}

// laidOut keys the cell at the context's position. A leaf renamed as a
// duplicate takes its alias.
func (c Cell) laidOut(ctx Context) Cell {
	c = c.ResolveID(ctx.ID)
	c.at = ctx.ID
	if id, ok := ctx.aliases[ctx.ID]; ok {
		c.id = id
	}
	return c
}

func (c Cell) Children(id ID, visit func(Node, ID)) {
	visit(c, id)
}
