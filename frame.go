package cells

import "math"

// FrameNode constrains a child to explicit lengths or to min/max bounds.
//
// A frame always carries priority 1, so inside a stack free-flowing
// content at a lower priority gives way before explicitly sized content.
type FrameNode struct {
	base      Node
	width     Dim
	height    Dim
	minW      Dim
	maxW      Dim
	minH      Dim
	maxH      Dim
	alignment Alignment
}

// Frame wraps n. With no constraints set it measures exactly like n.
func Frame(n Node) *FrameNode {
	return &FrameNode{base: n}
}

// Width fixes the width.
func (f *FrameNode) Width(w float64) *FrameNode {
	f.width = Fixed(sane(w, "frame width"))
	return f
}

// Height fixes the height.
func (f *FrameNode) Height(h float64) *FrameNode {
	f.height = Fixed(sane(h, "frame height"))
	return f
}

// Size fixes both lengths.
func (f *FrameNode) Size(w, h float64) *FrameNode {
	return f.Width(w).Height(h)
}

// MinWidth sets a lower width bound.
func (f *FrameNode) MinWidth(w float64) *FrameNode {
	f.minW = Fixed(sane(w, "frame min width"))
	return f
}

// MaxWidth sets an upper width bound.
func (f *FrameNode) MaxWidth(w float64) *FrameNode {
	f.maxW = Fixed(sane(w, "frame max width"))
	return f
}

// MinHeight sets a lower height bound.
func (f *FrameNode) MinHeight(h float64) *FrameNode {
	f.minH = Fixed(sane(h, "frame min height"))
	return f
}

// MaxHeight sets an upper height bound.
func (f *FrameNode) MaxHeight(h float64) *FrameNode {
	f.maxH = Fixed(sane(h, "frame max height"))
	return f
}

// Align positions the frame inside its bounds and the child inside the frame.
func (f *FrameNode) Align(al Alignment) *FrameNode {
	f.alignment = al
	return f
}

func (f *FrameNode) Properties() Properties {
	p := f.base.Properties()
	p.Priority = 1
	return p
}

type frameCache struct {
	base     any
	size     ProposedSize // the frame
	content  ProposedSize // the child inside it
	measured bool
}

func (f *FrameNode) NewCache() any {
	return &frameCache{base: f.base.NewCache()}
}

func (f *FrameNode) Measure(p ProposedSize, ctx Context, c any) ProposedSize {
	cache := c.(*frameCache)
	p = saneProposal(p, "frame proposal")

	fits := f.base.Measure(ProposedSize{
		Width:  clampDim(f.width, p.Width, f.minW, f.maxW, Unspecified),
		Height: clampDim(f.height, p.Height, f.minH, f.maxH, Unspecified),
	}, ctx, cache.base)
	fits = saneProposal(fits, "frame content")
	result := ProposedSize{
		Width:  clampDim(f.width, fits.Width, f.minW, f.maxW, fits.Width),
		Height: clampDim(f.height, fits.Height, f.minH, f.maxH, fits.Height),
	}
	cache.size, cache.content, cache.measured = result, fits, true
	return result
}

// clampDim resolves one axis. A fixed length wins; an unspecified value
// stays unspecified; otherwise v is clamped into [min, max], where a
// missing bound falls back to def and then to [0, +Inf).
func clampDim(fixed, v, lo, hi, def Dim) Dim {
	if fixed.IsSet() {
		return fixed
	}
	x, ok := v.Get()
	if !ok {
		return Unspecified
	}
	lower := lo.Or(def.Or(0))
	upper := hi.Or(def.Or(math.Inf(1)))
	return Fixed(math.Max(lower, math.Min(upper, x)))
}

func (f *FrameNode) Place(bounds Rect, ctx Context, c any, emit func(Cell, Rect)) {
	cache := c.(*frameCache)
	if !cache.measured {
		f.Measure(ProposeSize(bounds.Size), ctx, cache)
	}
	frame := bounds.Frame(cache.size.Or(bounds.Size), f.alignment)
	content := cache.content.Or(frame.Size)
	content.Width = math.Min(content.Width, frame.Size.Width)
	content.Height = math.Min(content.Height, frame.Size.Height)
	f.base.Place(frame.Frame(content, f.alignment), ctx, cache.base, emit)
}

func (f *FrameNode) Items(id ID, visit func(Cell)) {
	f.base.Items(id, visit)
}

func (f *FrameNode) Children(id ID, visit func(Node, ID)) {
	visit(f, id)
}

// PriorityNode overrides the flex priority of a child.
type PriorityNode struct {
	Node
	priority float64
}

// Priority wraps n with flex priority p. Lower priorities adjust first.
func Priority(n Node, p float64) *PriorityNode {
	return &PriorityNode{Node: n, priority: p}
}

func (n *PriorityNode) Properties() Properties {
	p := n.Node.Properties()
	p.Priority = n.priority
	return p
}

// Children keeps the override on every child a stack flattens out of n.
func (n *PriorityNode) Children(id ID, visit func(Node, ID)) {
	n.Node.Children(id, func(child Node, cid ID) {
		visit(&PriorityNode{Node: child, priority: n.priority}, cid)
	})
}

// FillNode is a leaf that takes exactly what it is offered, at priority 0.
// Colour blocks and separators are fills.
type FillNode struct {
	cell Cell
}

// Fill wraps c as a space-filling leaf.
func Fill(c Cell) *FillNode {
	return &FillNode{cell: c}
}

func (f *FillNode) Properties() Properties { return Properties{Priority: 0} }
func (f *FillNode) NewCache() any          { return nil }

func (f *FillNode) Measure(p ProposedSize, _ Context, _ any) ProposedSize {
	return Propose(p.Width.Or(0), p.Height.Or(0))
}

func (f *FillNode) Place(bounds Rect, ctx Context, _ any, emit func(Cell, Rect)) {
	f.cell.Place(bounds, ctx, nil, emit)
}

func (f *FillNode) Items(id ID, visit func(Cell)) {
	f.cell.Items(id, visit)
}

func (f *FillNode) Children(id ID, visit func(Node, ID)) {
	visit(f, id)
}
