package cells

import "reflect"

// View is a concrete, long-lived, mutable view owned by a host.
type View any

// Kind names a reuse pool. Cells of the same kind can share view instances.
type Kind string

// KindOf returns the kind cells rendering into V belong to.
func KindOf[V any]() Kind {
	return Kind(reflect.TypeFor[V]().String())
}

// Reusable views are told before a pooled instance is rebound.
type Reusable interface {
	PrepareForReuse()
}

// Destroyable views are told when the adapter drops them for good.
type Destroyable interface {
	Destroy()
}

// Cell describes one renderable unit: identity, view factory, render function
// and a bag of optional behaviours. Cells are cheap values rebuilt on every pass.
type Cell struct {
	id     ID
	kind   Kind
	create func() View
	render func(View)
	values Values
	at     ID // layout position, set when a tree emits the cell
}

// NewCell describes a cell rendered into views of type V.
// render must be idempotent; it runs on every apply.
func NewCell[V any](id any, create func() V, render func(V)) Cell {
	return Cell{
		id:   Key(id),
		kind: KindOf[V](),
		create: func() View {
			return create()
		},
		render: func(v View) {
			view, ok := v.(V)
			if !ok || render == nil {
				return
			}
			render(view)
		},
	}
}

// StaticCell is NewCell keyed by the caller's source position.
// Only use it for content that appears once per call site.
func StaticCell[V any](create func() V, render func(V)) Cell {
	c := NewCell(nil, create, render)
	c.id = CodeID(1)
	return c
}

// ID returns the cell's identity.
func (c Cell) ID() ID { return c.id }

// Kind returns the cell's reuse pool.
func (c Cell) Kind() Kind { return c.kind }

// Values returns the cell's attributes.
func (c Cell) Values() Values { return c.values }

// CreateView builds a new view for the cell.
func (c Cell) CreateView() View {
	if c.create == nil {
		return nil
	}
	return c.create()
}

// Render applies the cell's state to v.
func (c Cell) Render(v View) {
	if c.render != nil {
		c.render(v)
	}
}

// WithID returns a copy with a different identity.
func (c Cell) WithID(id any) Cell {
	c.id = Key(id)
	return c
}

// ResolveID assigns id only if the cell has none.
func (c Cell) ResolveID(id any) Cell {
	if c.id.IsNone() {
		c.id = Key(id)
	}
	return c
}

// WithValue returns a copy with attribute a set to v.
func WithValue[V any](c Cell, a *Attr[V], v V) Cell {
	c.values = With(c.values, a, v)
	return c
}

// Height sets the row height list hosts use.
func (c Cell) Height(h float64) Cell {
	return WithValue(c, Height, h)
}

// Size sets the item size grid hosts use.
func (c Cell) Size(fn func(bounds Size) (Size, bool)) Cell {
	return WithValue(c, SizeFunc, fn)
}

// FixedSize is Size with a constant.
func (c Cell) FixedSize(s Size) Cell {
	return c.Size(func(Size) (Size, bool) { return s, true })
}

// OnSelect adds a selection action, keeping earlier ones.
func (c Cell) OnSelect(fn func()) Cell {
	return combine(c, DidSelect, fn)
}

// OnWillDisplay adds an action run before the cell is displayed.
func (c Cell) OnWillDisplay(fn func()) Cell {
	return combine(c, WillDisplay, fn)
}

// OnDidEndDisplaying adds an action run after the cell left the screen.
func (c Cell) OnDidEndDisplaying(fn func()) Cell {
	return combine(c, DidEndDisplaying, fn)
}

// OnHighlight adds a highlight action for views of type V.
func OnHighlight[V any](c Cell, fn func(V, bool)) Cell {
	prev, set := Lookup(c.values, DidHighlight)
	return WithValue(c, DidHighlight, func(v View, on bool) {
		if set {
			prev(v, on)
		}
		if view, ok := v.(V); ok {
			fn(view, on)
		}
	})
}

// OnWillReuse adds a prepare-for-reuse action for views of type V.
func OnWillReuse[V any](c Cell, fn func(V)) Cell {
	prev, set := Lookup(c.values, WillReuse)
	return WithValue(c, WillReuse, func(v View) {
		if set {
			prev(v)
		}
		if view, ok := v.(V); ok {
			fn(view)
		}
	})
}

func combine(c Cell, a *Attr[func()], fn func()) Cell {
	prev, set := Lookup(c.values, a)
	if !set {
		return WithValue(c, a, fn)
	}
	return WithValue(c, a, func() {
		prev()
		fn()
	})
}
