package cells

import "github.com/google/go-cmp/cmp"

// equateIDs compares identities with ==.
var equateIDs = cmp.Comparer(func(a, b ID) bool { return a == b })

// testView records what the pool and adapter did to it.
type testView struct {
	text        string
	renders     int
	reuses      int
	destroyed   bool
	highlighted bool
	size        Size
	sized       bool
}

func newTestView() *testView { return &testView{} }

func (v *testView) PrepareForReuse() {
	v.reuses++
	v.highlighted = false
}

func (v *testView) Destroy() { v.destroyed = true }

func (v *testView) IntrinsicSize() (Size, bool) { return v.size, v.sized }

type otherView struct{ text string }

func newOtherView() *otherView { return &otherView{} }

func textCell(id any, text string) Cell {
	return NewCell(id, newTestView, func(v *testView) {
		v.text = text
		v.renders++
	})
}

func otherCell(id any, text string) Cell {
	return NewCell(id, newOtherView, func(v *otherView) { v.text = text })
}

func section(id any, ids ...string) Section {
	cells := make([]Cell, len(ids))
	for i, c := range ids {
		cells[i] = textCell(c, c)
	}
	return NewSection(id, cells)
}

// fakeHost applies batches immediately unless hold is set.
type fakeHost struct {
	batches   []Changeset
	reloads   int
	scrolling bool
	hold      bool
	pending   []func()
}

func (h *fakeHost) PerformBatch(cs Changeset, done func()) {
	h.batches = append(h.batches, cs)
	if h.hold {
		h.pending = append(h.pending, done)
		return
	}
	done()
}

func (h *fakeHost) ReloadData(done func()) {
	h.reloads++
	done()
}

func (h *fakeHost) IsScrolling() bool { return h.scrolling }

func (h *fakeHost) flush() {
	pending := h.pending
	h.pending = nil
	for _, done := range pending {
		done()
	}
}
