package cells

import "iter"

// Section is an identity, a bag of section attributes and an ordered run of cells.
type Section struct {
	id     ID
	values Values
	cells  []Cell
}

// CellItem is anything a section accepts as content:
// a Cell, a []Cell, or an iter.Seq[Cell] for dynamic runs.
type CellItem interface{}

// NewSection builds a section from cells and cell iterators.
func NewSection(id any, items ...CellItem) Section {
	s := Section{id: Key(id)}
	s.cells = appendItems(make([]Cell, 0, len(items)), items)
	return s
}

// StaticSection is NewSection keyed by the caller's source position.
func StaticSection(items ...CellItem) Section {
	s := NewSection(nil, items...)
	s.id = CodeID(1)
	return s
}

func appendItems(cells []Cell, items []CellItem) []Cell {
	for _, item := range items {
		switch v := item.(type) {
		case Cell:
			cells = append(cells, v)
		case []Cell:
			cells = append(cells, v...)
		case iter.Seq[Cell]:
			for c := range v {
				cells = append(cells, c)
			}
		case func(yield func(Cell) bool):
			for c := range v {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// ID returns the section identity.
func (s Section) ID() ID { return s.id }

// Cells returns the section's cells. The slice must not be modified.
func (s Section) Cells() []Cell { return s.cells }

// Len returns the number of cells.
func (s Section) Len() int { return len(s.cells) }

// Values returns the section attributes.
func (s Section) Values() Values { return s.values }

// Header returns the section header, if any.
func (s Section) Header() (Cell, bool) {
	if h := Get(s.values, HeaderCell); h != nil {
		return *h, true
	}
	return Cell{}, false
}

// Footer returns the section footer, if any.
func (s Section) Footer() (Cell, bool) {
	if f := Get(s.values, FooterCell); f != nil {
		return *f, true
	}
	return Cell{}, false
}

// WithHeader returns a copy with a header cell.
func (s Section) WithHeader(c Cell) Section {
	return SectionValue(s, HeaderCell, &c)
}

// WithFooter returns a copy with a footer cell.
func (s Section) WithFooter(c Cell) Section {
	return SectionValue(s, FooterCell, &c)
}

// Stack returns a copy configured for stack-style containers.
func (s Section) Stack(style StackStyle) Section {
	return SectionValue(s, StackAttr, style)
}

// WithID returns a copy with a different identity.
func (s Section) WithID(id any) Section {
	s.id = Key(id)
	return s
}

// ResolveID assigns id only if the section has none.
func (s Section) ResolveID(id any) Section {
	if s.id.IsNone() {
		s.id = Key(id)
	}
	return s
}

// MapCells returns a copy with every cell transformed.
func (s Section) MapCells(fn func(Cell) Cell) Section {
	cells := make([]Cell, len(s.cells))
	for i, c := range s.cells {
		cells[i] = fn(c)
	}
	s.cells = cells
	return s
}

// SectionValue returns a copy of s with attribute a set to v.
func SectionValue[V any](s Section, a *Attr[V], v V) Section {
	s.values = With(s.values, a, v)
	return s
}

// CellsWith sets attribute a on every cell of s.
func CellsWith[V any](s Section, a *Attr[V], v V) Section {
	return s.MapCells(func(c Cell) Cell { return WithValue(c, a, v) })
}

// --- Iterator helpers ---

// Map transforms a slice into a cell iterator.
func Map[T any](items []T, fn func(T) Cell) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, item := range items {
			if !yield(fn(item)) {
				return
			}
		}
	}
}

// MapIndex transforms a slice into a cell iterator with index.
func MapIndex[T any](items []T, fn func(int, T) Cell) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, item := range items {
			if !yield(fn(i, item)) {
				return
			}
		}
	}
}

// Filter filters a slice into a cell iterator.
func Filter[T any](items []T, pred func(T) bool, fn func(T) Cell) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, item := range items {
			if pred(item) {
				if !yield(fn(item)) {
					return
				}
			}
		}
	}
}

// ForEachCell maps items to cells and keys every cell that has no id with
// the item's own key. Cells built with StaticCell keep their call-site id.
func ForEachCell[T any, K comparable](items []T, key func(T) K, fn func(T) Cell) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, item := range items {
			if !yield(fn(item).ResolveID(key(item))) {
				return
			}
		}
	}
}
