package cells

import "testing"

func TestLayoutViewKeepsViewsByID(t *testing.T) {
	lv := NewLayoutView()
	lv.Reload(VStack(textCell("a", "a"), textCell("b", "b")))
	if lv.Len() != 2 || len(lv.Placements()) != 2 {
		t.Fatalf("views %d, placements %d", lv.Len(), len(lv.Placements()))
	}
	va, _ := lv.View(Key("a"))
	vb, _ := lv.View(Key("b"))
	if va.(*testView).text != "a" {
		t.Errorf("a rendered %q", va.(*testView).text)
	}

	lv.Reload(VStack(textCell("a", "a2")))
	again, ok := lv.View(Key("a"))
	if !ok || again != va {
		t.Error("a should keep its view")
	}
	if again.(*testView).text != "a2" {
		t.Errorf("a rendered %q, want a2", again.(*testView).text)
	}
	if !vb.(*testView).destroyed {
		t.Error("b's view should be destroyed")
	}
	if s, ok := lv.IntrinsicSize(); !ok || s != DefaultLeafSize {
		t.Errorf("intrinsic size = %+v, %v", s, ok)
	}
}

func TestLayoutViewRecreatesOnKindChange(t *testing.T) {
	lv := NewLayoutView()
	lv.Reload(textCell("a", "a"))
	old, _ := lv.View(Key("a"))
	lv.Reload(otherCell("a", "o"))
	v, _ := lv.View(Key("a"))
	if _, ok := v.(*otherView); !ok {
		t.Fatalf("view is %T, want *otherView", v)
	}
	if !old.(*testView).destroyed {
		t.Error("old view should be destroyed")
	}
}

func TestContainerIsASingleLeaf(t *testing.T) {
	inner := VStack(textCell("a", "a"), textCell("b", "b"))
	root := VStack(Container(inner), textCell("c", "c"))

	items := Items(root)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Kind() != KindOf[*LayoutView]() {
		t.Errorf("kind = %s", items[0].Kind())
	}
	_, ps := Layout(root, Propose(50, 50), nil)
	if ps[0].Cell.ID() != items[0].ID() {
		t.Errorf("placement %s, item %s", ps[0].Cell.ID(), items[0].ID())
	}

	lv := NewLayoutView()
	items[0].Render(lv)
	if lv.ID() != items[0].ID() {
		t.Error("the view should take the container's id")
	}
	if lv.Len() != 2 {
		t.Errorf("inner views = %d, want 2", lv.Len())
	}
}

func TestContainerMeasuresThroughLiveView(t *testing.T) {
	lv := NewLayoutView()
	lv.Reload(VStack(Frame(textCell("a", "a")).Size(4, 1), Frame(textCell("b", "b")).Size(6, 1)))
	views := SubviewFuncs{ViewFunc: func(id ID) (View, bool) {
		if id == NoID {
			return lv, true
		}
		return nil, false
	}}
	size, _ := Layout(Container(Empty()), ProposedSize{}, views)
	if size != (Size{Width: 6, Height: 2}) {
		t.Errorf("size = %+v, want the live view's size", size)
	}
}

func TestCollectionPrepare(t *testing.T) {
	c := NewCollection(nil)
	done := false
	c.Reload(VStack(
		Frame(textCell("a", "a")).Height(3),
		Frame(textCell("b", "b")).Height(3),
	), func() { done = true })
	if !done {
		t.Error("reload should complete without a host")
	}
	if c.Adapter().NumberOfItems(0) != 2 {
		t.Fatalf("items = %d", c.Adapter().NumberOfItems(0))
	}

	c.Prepare(Size{Width: 80, Height: 24})
	if got := c.ContentSize(); got != (Size{Width: 80, Height: 6}) {
		t.Errorf("content size = %+v", got)
	}
	in := c.ElementsIn(R(0, 0, 80, 3))
	if len(in) != 1 || in[0].Cell.ID() != Key("a") {
		t.Errorf("elements in first rows = %v", in)
	}
	if r, ok := c.Frame(Key("b")); !ok || r != R(0, 3, 80, 3) {
		t.Errorf("frame of b = %+v, %v", r, ok)
	}
}

func TestCollectionHorizontalRoot(t *testing.T) {
	c := NewCollection(nil)
	c.Reload(HStack(Frame(textCell("a", "a")).Width(10), Frame(textCell("b", "b")).Width(10)), nil)
	c.Prepare(Size{Width: 5, Height: 4})
	if got := c.ContentSize(); got != (Size{Width: 20, Height: 4}) {
		t.Errorf("content size = %+v", got)
	}
}

func TestCollectionGivesRepeatedLeavesTheirOwnViews(t *testing.T) {
	c := NewCollection(&fakeHost{})
	c.Reload(VStack(
		Frame(textCell("x", "first")).Height(1),
		Frame(textCell("x", "second")).Height(1),
	), nil)
	c.Prepare(Size{Width: 10, Height: 4})

	ps := c.Placements()
	if len(ps) != 2 {
		t.Fatalf("placements = %d, want 2", len(ps))
	}
	if ps[0].Cell.ID() != Key("x") {
		t.Errorf("first placement = %s, want x", ps[0].Cell.ID())
	}
	if ps[1].Cell.ID() == Key("x") {
		t.Error("the repeated leaf should be renamed")
	}

	a := c.Adapter()
	seen := make(map[*testView]bool)
	for i, want := range []string{"first", "second"} {
		p, ok := a.PathOf(ps[i].Cell.ID())
		if !ok || p.Item != i {
			t.Fatalf("placement %d resolves to %+v, %v", i, p, ok)
		}
		v, _ := a.Dequeue(p)
		tv := v.(*testView)
		if tv.text != want {
			t.Errorf("placement %d rendered %q, want %q", i, tv.text, want)
		}
		seen[tv] = true
	}
	if len(seen) != 2 {
		t.Errorf("distinct views = %d, want 2", len(seen))
	}
	if r, ok := c.Frame(ps[1].Cell.ID()); !ok || r != R(0, 1, 10, 1) {
		t.Errorf("frame of the repeat = %+v, %v", r, ok)
	}
}

func TestCollectionDoesNotAnimateRepeatedLeaves(t *testing.T) {
	h := &fakeHost{}
	c := NewCollection(h)
	c.Reload(VStack(textCell("a", "a")), nil)
	c.Reload(VStack(textCell("a", "a"), textCell("b", "b")), nil)
	if len(h.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(h.batches))
	}
	c.Reload(VStack(textCell("a", "a"), textCell("b", "b"), textCell("b", "b2")), nil)
	if len(h.batches) != 1 || h.reloads != 2 {
		t.Errorf("batches %d, reloads %d: a tree with repeats should reload", len(h.batches), h.reloads)
	}
}

func TestLayoutViewDestroysRepeatedLeafViews(t *testing.T) {
	lv := NewLayoutView()
	lv.Reload(VStack(textCell("x", "first"), textCell("x", "second")))
	if lv.Len() != 2 {
		t.Fatalf("views = %d, want 2", lv.Len())
	}
	var views []*testView
	for _, p := range lv.Placements() {
		v, ok := lv.View(p.Cell.ID())
		if !ok {
			t.Fatalf("no view for %s", p.Cell.ID())
		}
		views = append(views, v.(*testView))
	}
	if views[0] == views[1] || views[0].text != "first" || views[1].text != "second" {
		t.Errorf("views render %q and %q", views[0].text, views[1].text)
	}

	lv.Reload(Empty())
	for i, v := range views {
		if !v.destroyed {
			t.Errorf("view %d should be destroyed", i)
		}
	}
}
