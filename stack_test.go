package cells

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-3 }

func placementsByID(ps []Placement) map[ID]Rect {
	out := make(map[ID]Rect, len(ps))
	for _, p := range ps {
		out[p.Cell.ID()] = p.Rect
	}
	return out
}

func TestStackNaturalWidthBelowProposal(t *testing.T) {
	root := HStack(
		Frame(textCell("a", "a")).Size(50, 20),
		Frame(textCell("b", "b")).Size(50, 20),
		Frame(textCell("c", "c")).Size(50, 20),
	).Spacing(10)

	size, ps := Layout(root, Propose(200, 40), nil)
	if size.Width != 170 {
		t.Errorf("width = %v, want 170", size.Width)
	}
	if len(ps) != 3 {
		t.Fatalf("got %d placements", len(ps))
	}
	for i, want := range []float64{0, 60, 120} {
		if ps[i].Rect.MinX() != want {
			t.Errorf("child %d x = %v, want %v", i, ps[i].Rect.MinX(), want)
		}
		if ps[i].Rect.Size.Width != 50 {
			t.Errorf("child %d width = %v, want 50", i, ps[i].Rect.Size.Width)
		}
	}
}

func TestStackShrinksFlexibleChildren(t *testing.T) {
	root := HStack(
		Frame(textCell("a", "a")).MaxWidth(50),
		Frame(textCell("b", "b")).MaxWidth(50),
		Frame(textCell("c", "c")).MaxWidth(50),
	).Spacing(10)

	size, ps := Layout(root, Propose(100, 10), nil)
	if !near(size.Width, 100) {
		t.Errorf("width = %v, want 100", size.Width)
	}
	x := 0.0
	for i, p := range ps {
		if !near(p.Rect.Size.Width, 80.0/3) {
			t.Errorf("child %d width = %v, want %v", i, p.Rect.Size.Width, 80.0/3)
		}
		if !near(p.Rect.MinX(), x) {
			t.Errorf("child %d x = %v, want %v", i, p.Rect.MinX(), x)
		}
		x += p.Rect.Size.Width + 10
	}
}

func TestStackConservesProposedLength(t *testing.T) {
	for _, width := range []float64{3, 40, 101, 250, 999.5} {
		root := HStack(textCell("a", "a"), textCell("b", "b"), textCell("c", "c")).Spacing(5)
		size, ps := Layout(root, Propose(width, 10), nil)

		sum := 10.0
		for _, p := range ps {
			sum += p.Rect.Size.Width
		}
		if width >= 10 && !near(sum, width) {
			t.Errorf("width %v: children and spacing sum to %v", width, sum)
		}
		if width >= 10 && !near(size.Width, width) {
			t.Errorf("width %v: stack measured %v", width, size.Width)
		}
	}
}

func TestStackSpacerGivesWayFirst(t *testing.T) {
	root := HStack(
		Frame(textCell("a", "a")).Width(30),
		Spacer(),
		Frame(textCell("b", "b")).Width(30),
	)
	_, ps := Layout(root, Propose(100, 10), nil)
	rects := placementsByID(ps)

	if r := rects[Key("a")]; r.MinX() != 0 || r.Size.Width != 30 {
		t.Errorf("a = %+v", r)
	}
	if r := rects[Key("b")]; !near(r.MinX(), 70) || r.Size.Width != 30 {
		t.Errorf("b = %+v", r)
	}
}

func TestStackLowerPriorityAdjustsFirst(t *testing.T) {
	root := HStack(
		Priority(textCell("low", "low"), 0),
		textCell("high", "high"),
	)
	_, ps := Layout(root, Propose(100, 10), nil)
	rects := placementsByID(ps)

	// both take the full 100 first, the low priority child gives back 100
	if w := rects[Key("low")].Size.Width; !near(w, 0) {
		t.Errorf("low width = %v, want 0", w)
	}
	if w := rects[Key("high")].Size.Width; !near(w, 100) {
		t.Errorf("high width = %v, want 100", w)
	}
}

func TestStackCrossAlignment(t *testing.T) {
	tests := []struct {
		align Align
		want  float64
	}{
		{AlignStart, 0},
		{AlignCenter, 15},
		{AlignEnd, 30},
	}
	for _, tt := range tests {
		root := HStack(
			Frame(textCell("tall", "tall")).Size(10, 40),
			Frame(textCell("short", "short")).Size(10, 10),
		).Align(tt.align)
		_, ps := Layout(root, Propose(20, 40), nil)
		if y := placementsByID(ps)[Key("short")].MinY(); y != tt.want {
			t.Errorf("align %d: y = %v, want %v", tt.align, y, tt.want)
		}
	}
}

func TestVStackUnconstrainedMain(t *testing.T) {
	root := VStack(
		Frame(textCell("a", "a")).Height(3),
		Frame(textCell("b", "b")).Height(5),
	).Spacing(1)
	size, ps := Layout(root, ProposedSize{Width: Fixed(80)}, nil)
	if size.Height != 9 || size.Width != 80 {
		t.Errorf("size = %+v, want 80x9", size)
	}
	if y := placementsByID(ps)[Key("b")].MinY(); y != 4 {
		t.Errorf("b y = %v, want 4", y)
	}
}

func TestStackKeysAnonymousChildrenByPosition(t *testing.T) {
	anon := func() Cell { return NewCell(nil, newTestView, nil) }
	root := VStack(anon(), HStack(anon(), anon()))

	items := Items(root)
	_, ps := Layout(root, Propose(10, 10), nil)
	if len(items) != 3 || len(ps) != 3 {
		t.Fatalf("items %d, placements %d", len(items), len(ps))
	}
	want := []ID{
		Union(NoID, 0),
		Union(Union(NoID, 1), 0),
		Union(Union(NoID, 1), 1),
	}
	for i := range want {
		if items[i].ID() != want[i] {
			t.Errorf("item %d = %s, want %s", i, items[i].ID(), want[i])
		}
		if ps[i].Cell.ID() != want[i] {
			t.Errorf("placement %d = %s, want %s", i, ps[i].Cell.ID(), want[i])
		}
	}
}

func TestStackClampsDegenerateInput(t *testing.T) {
	root := HStack(
		Frame(textCell("a", "a")).Width(math.NaN()),
		Frame(textCell("b", "b")).Width(-4),
	).Spacing(-2)

	size, ps := Layout(root, Propose(-10, math.NaN()), nil)
	if size.Width != 0 || size.Height != 0 {
		t.Errorf("size = %+v, want zero", size)
	}
	for _, p := range ps {
		if math.IsNaN(p.Rect.Size.Width) || p.Rect.Size.Width < 0 {
			t.Errorf("degenerate width for %s: %v", p.Cell.ID(), p.Rect.Size.Width)
		}
	}
}

func TestStackUsesLiveViewSizes(t *testing.T) {
	v := newTestView()
	v.size, v.sized = Size{Width: 7, Height: 2}, true
	views := SubviewFuncs{ViewFunc: func(id ID) (View, bool) {
		if id == Key("a") {
			return v, true
		}
		return nil, false
	}}
	size, _ := Layout(VStack(textCell("a", "a")), ProposedSize{}, views)
	if size != (Size{Width: 7, Height: 2}) {
		t.Errorf("size = %+v, want the view's intrinsic size", size)
	}
}

func TestLeafFallsBackToDefaultSize(t *testing.T) {
	size, _ := Layout(textCell("a", "a"), ProposedSize{}, nil)
	if size != DefaultLeafSize {
		t.Errorf("size = %+v, want %+v", size, DefaultLeafSize)
	}
}

func BenchmarkStackLayout(b *testing.B) {
	rows := make([]Node, 200)
	for i := range rows {
		rows[i] = HStack(
			Frame(textCell(i*3, "a")).MaxWidth(40),
			Spacer(),
			Frame(textCell(i*3+1, "b")).Width(10),
			textCell(i*3+2, "c"),
		).Spacing(1)
	}
	root := VStack(rows)
	for b.Loop() {
		Layout(root, ProposedSize{Width: Fixed(120)}, nil)
	}
}
