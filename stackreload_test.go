package cells

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

type testArranger struct {
	views      []View
	style      StackStyle
	configured int
}

func (a *testArranger) SetArranged(views []View) { a.views = views }

func (a *testArranger) Configure(style StackStyle) {
	a.style = style
	a.configured++
}

func (a *testArranger) Nested() Arranger { return &testArranger{} }

func texts(views []View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.(*testView).text
	}
	return out
}

func TestStackReloaderMatchesByID(t *testing.T) {
	target := &testArranger{}
	r := NewStackReloader(target)
	r.ReloadCells([]Cell{textCell("a", "a"), textCell("b", "b")}, nil)
	va, vb := target.views[0], target.views[1]

	r.ReloadCells([]Cell{textCell("b", "b2"), textCell("a", "a2")}, nil)
	if target.views[0] != vb || target.views[1] != va {
		t.Error("views should follow their ids")
	}
	assert.Equal(t, texts(target.views), []string{"b2", "a2"})
	assert.Equal(t, r.Stats().Created, 2)
	assert.Equal(t, r.Stats().Reused, 0)
}

func TestStackReloaderReusesByKind(t *testing.T) {
	target := &testArranger{}
	r := NewStackReloader(target)
	r.ReloadCells([]Cell{textCell("a", "a"), otherCell("o", "o")}, nil)
	va := target.views[0].(*testView)

	r.ReloadCells([]Cell{textCell("c", "c")}, nil)
	if target.views[0] != va {
		t.Error("a view of the same kind should be reused")
	}
	assert.Equal(t, va.text, "c")
	assert.Equal(t, va.reuses, 1)
	assert.Equal(t, r.Stats().Reused, 1)
	assert.Equal(t, r.Stats().Released, 1)
	assert.Equal(t, r.Len(), 1)
}

func TestStackReloaderDestroysLeftovers(t *testing.T) {
	target := &testArranger{}
	r := NewStackReloader(target)
	done := false
	r.ReloadCells([]Cell{textCell("a", "a"), textCell("b", "b")}, func() { done = true })
	vb := target.views[1].(*testView)
	if !done {
		t.Error("done should run")
	}

	r.ReloadCells([]Cell{textCell("a", "a")}, nil)
	if !vb.destroyed {
		t.Error("leftover view should be destroyed")
	}
	assert.Equal(t, len(target.views), 1)
}

func TestStackReloaderConfiguresSingleSection(t *testing.T) {
	target := &testArranger{}
	r := NewStackReloader(target)
	axis, spacing := Horizontal, 3.0
	r.Reload([]Section{section("s", "a").Stack(StackStyle{Axis: &axis, Spacing: &spacing})}, nil)

	if target.style.Axis == nil || *target.style.Axis != Horizontal {
		t.Error("axis should be configured")
	}
	if target.style.Spacing == nil || *target.style.Spacing != 3 {
		t.Error("spacing should be configured")
	}
}

func TestStackReloaderNestsSections(t *testing.T) {
	target := &testArranger{}
	r := NewStackReloader(target)
	r.Reload([]Section{section("x", "a", "b"), section("y", "c")}, nil)

	if len(target.views) != 2 {
		t.Fatalf("expected two nested containers, got %d", len(target.views))
	}
	first := target.views[0].(*testArranger)
	assert.Equal(t, texts(first.views), []string{"a", "b"})
	assert.Equal(t, texts(target.views[1].(*testArranger).views), []string{"c"})

	r.Reload([]Section{section("y", "c", "d"), section("x", "a")}, nil)
	if target.views[1] != first {
		t.Error("nested containers should follow their section ids")
	}
	assert.Equal(t, texts(first.views), []string{"a"})
	assert.Equal(t, texts(target.views[0].(*testArranger).views), []string{"c", "d"})
}
