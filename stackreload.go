package cells

import "github.com/golang/glog"

// Arranger is an ordered container of views without batch animations, such
// as a toolbar or a stack panel.
type Arranger interface {
	// SetArranged replaces the arranged views, in order.
	SetArranged(views []View)

	// Configure applies a section's stack style. Nil fields keep the
	// current setting.
	Configure(style StackStyle)

	// Nested returns a new empty container of the same kind, used to host
	// one section when several are reloaded at once.
	Nested() Arranger
}

// nestedKind is the kind of containers created for nested sections.
const nestedKind Kind = "cells.nested"

type arranged struct {
	id     ID
	kind   Kind
	view   View
	cell   Cell
	nested *StackReloader
}

type arrangedItem struct {
	id     ID
	kind   Kind
	create func() View
	render func(*arranged)
}

// StackReloader keeps an Arranger in sync with sections. Views are matched
// by id first and by kind second; the rest are created, and leftovers are
// destroyed.
type StackReloader struct {
	target  Arranger
	entries []arranged
	stats   Stats
}

// NewStackReloader creates a reloader for target.
func NewStackReloader(target Arranger) *StackReloader {
	return &StackReloader{target: target}
}

// Reload applies sections. A single section configures the container with
// its stack style and fills it directly; several sections become one nested
// container each. done is called once the container is up to date.
func (r *StackReloader) Reload(sections []Section, done func()) {
	snap := NewSnapshot(sections)
	if snap.Len() == 1 {
		sec := snap.sections[0]
		r.target.Configure(Get(sec.values, StackAttr))
		r.reloadCells(sec.cells)
	} else {
		items := make([]arrangedItem, len(snap.sections))
		for i, sec := range snap.sections {
			items[i] = arrangedItem{
				id:   sec.id,
				kind: nestedKind,
				create: func() View {
					return r.target.Nested()
				},
				render: func(e *arranged) {
					inner, ok := e.view.(Arranger)
					if !ok {
						return
					}
					if e.nested == nil {
						e.nested = NewStackReloader(inner)
					}
					inner.Configure(Get(sec.values, StackAttr))
					e.nested.reloadCells(sec.cells)
				},
			}
		}
		r.reload(items)
	}
	if done != nil {
		done()
	}
}

// ReloadCells applies a flat list of cells.
func (r *StackReloader) ReloadCells(cells []Cell, done func()) {
	r.Reload([]Section{NewSection(NoID, cells)}, done)
}

func (r *StackReloader) reloadCells(cells []Cell) {
	items := make([]arrangedItem, len(cells))
	for i, c := range cells {
		items[i] = arrangedItem{
			id:     c.id,
			kind:   c.kind,
			create: c.CreateView,
			render: func(e *arranged) {
				e.cell = c
				c.Render(e.view)
			},
		}
	}
	r.reload(items)
}

func (r *StackReloader) reload(items []arrangedItem) {
	remaining := r.entries
	next := make([]arranged, 0, len(items))
	for _, item := range items {
		var e arranged
		if i := firstMatch(item, remaining); i >= 0 {
			e = remaining[i]
			remaining = append(remaining[:i:i], remaining[i+1:]...)
			if e.id != item.id {
				prepareArranged(e)
				r.stats.Reused++
			}
		} else {
			e = arranged{view: item.create()}
			r.stats.Created++
		}
		e.id, e.kind = item.id, item.kind
		item.render(&e)
		r.stats.Renders++
		next = append(next, e)
	}
	for _, e := range remaining {
		glog.V(2).Infof("[adapter]removing arranged view %s\n", e.id)
		destroy(e.view)
		r.stats.Released++
	}

	r.entries = next
	views := make([]View, len(next))
	for i, e := range next {
		views[i] = e.view
	}
	r.target.SetArranged(views)
}

func firstMatch(item arrangedItem, entries []arranged) int {
	for i, e := range entries {
		if e.id == item.id && e.kind == item.kind {
			return i
		}
	}
	for i, e := range entries {
		if e.kind == item.kind {
			return i
		}
	}
	return -1
}

func prepareArranged(e arranged) {
	if fn, ok := Lookup(e.cell.values, WillReuse); ok {
		fn(e.view)
	}
	if rv, ok := e.view.(Reusable); ok {
		rv.PrepareForReuse()
	}
}

// Len returns the number of arranged views.
func (r *StackReloader) Len() int { return len(r.entries) }

// Stats returns view lifecycle counters.
func (r *StackReloader) Stats() Stats { return r.stats }
