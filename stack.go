package cells

import (
	"iter"
	"math"
	"reflect"
	"slices"
)

// epsilon is the residual below which redistribution stops.
const epsilon = 1e-3

// maxRedistributionPasses bounds the passes over one priority group.
const maxRedistributionPasses = 32

// StackNode arranges children in a line.
type StackNode struct {
	axis      Axis
	spacing   float64
	alignment Align // cross axis
	content   []Node
}

// ChildItem is something that can be added to a stack or group.
// Can be a Node or an iterator of Nodes.
type ChildItem interface{}

// HStack lays children out left to right.
func HStack(items ...ChildItem) *StackNode {
	return Stack(Horizontal, items...)
}

// VStack lays children out top to bottom.
func VStack(items ...ChildItem) *StackNode {
	return Stack(Vertical, items...)
}

// Stack lays children out along axis.
func Stack(axis Axis, items ...ChildItem) *StackNode {
	return &StackNode{axis: axis, content: nodes(items)}
}

// nodes processes a mix of Nodes and iterators.
func nodes(items []ChildItem) []Node {
	out := make([]Node, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case Node:
			out = append(out, v)
		case []Node:
			out = append(out, v...)
		case iter.Seq[Node]:
			for n := range v {
				out = append(out, n)
			}
		case func(yield func(Node) bool):
			for n := range v {
				out = append(out, n)
			}
		}
	}
	return out
}

// Spacing sets the gap between children.
func (s *StackNode) Spacing(v float64) *StackNode {
	s.spacing = sane(v, "stack spacing")
	return s
}

// Align sets the cross-axis alignment of children.
func (s *StackNode) Align(a Align) *StackNode {
	s.alignment = a
	return s
}

// Add appends children.
func (s *StackNode) Add(items ...ChildItem) *StackNode {
	s.content = append(s.content, nodes(items)...)
	return s
}

// Axis returns the stack direction.
func (s *StackNode) Axis() Axis { return s.axis }

func (s *StackNode) Properties() Properties {
	axis := s.axis
	return Properties{Axis: &axis, Priority: 1}
}

type stackChild struct {
	node Node
	id   ID
}

type stackCache struct {
	measured bool
	children []stackChild
	caches   []any
	sizes    []ProposedSize
}

func (s *StackNode) NewCache() any { return &stackCache{} }

// resolve flattens the children and rebuilds child caches when the set of
// children changed since the last pass.
func (s *StackNode) resolve(ctx Context, cache *stackCache) {
	var children []stackChild
	for i, n := range s.content {
		n.Children(Union(ctx.ID, i), func(node Node, id ID) {
			children = append(children, stackChild{node: node, id: id})
		})
	}
	if !sameChildren(cache.children, children) {
		cache.caches = make([]any, len(children))
		for i, ch := range children {
			cache.caches[i] = ch.node.NewCache()
		}
	}
	cache.children = children
}

func sameChildren(a, b []stackChild) bool {
	return slices.EqualFunc(a, b, func(x, y stackChild) bool {
		return x.id == y.id && reflect.TypeOf(x.node) == reflect.TypeOf(y.node)
	})
}

func (s *StackNode) measureChild(i int, p ProposedSize, ctx Context, cache *stackCache) ProposedSize {
	ch := cache.children[i]
	return saneProposal(ch.node.Measure(p, ctx.WithID(ch.id), cache.caches[i]), "measured size")
}

func (s *StackNode) Measure(p ProposedSize, ctx Context, c any) ProposedSize {
	cache := c.(*stackCache)
	p = saneProposal(p, "stack proposal")
	s.resolve(ctx, cache)
	cache.measured = true

	n := len(cache.children)
	if n == 0 {
		cache.sizes = nil
		return Propose(0, 0)
	}

	spacing := s.spacing * float64(n-1)
	main, cross := p.Along(s.axis), p.Along(s.axis.Other())
	free := main
	if v, ok := main.Get(); ok {
		free = Fixed(math.Max(0, v-spacing))
	}

	// The first pass passes the stack's own cross size down, so children
	// that wrap can answer along the main axis.
	sizes := make([]ProposedSize, n)
	for i := range cache.children {
		sizes[i] = s.measureChild(i, ProposeAlong(s.axis, free, cross), ctx, cache)
	}
	total := s.total(sizes, spacing)

	if want, ok := main.Get(); ok {
		if got, ok := total.Along(s.axis).Get(); ok && math.Abs(want-got) > epsilon {
			s.redistribute(want-got, sizes, cross, ctx, cache)
			total = s.total(sizes, spacing)
		}
	}
	cache.sizes = sizes
	return total
}

// total sums main lengths and takes the largest cross length. Either stays
// unspecified when no child specified it.
func (s *StackNode) total(sizes []ProposedSize, spacing float64) ProposedSize {
	var main, cross Dim
	for _, sz := range sizes {
		if v, ok := sz.Along(s.axis).Get(); ok {
			main = Fixed(main.Or(0) + v)
		}
		if v, ok := sz.Along(s.axis.Other()).Get(); ok && v > cross.Or(math.Inf(-1)) {
			cross = Fixed(v)
		}
	}
	return ProposeAlong(s.axis, main.Add(spacing), cross)
}

// redistribute spreads delta over the children, lowest priority first.
// Inside a group, children without a main length go first, and the delta is
// shared evenly among members that still absorb space until it is used up
// or the group stops moving.
func (s *StackNode) redistribute(delta float64, sizes []ProposedSize, cross Dim, ctx Context, cache *stackCache) {
	for _, group := range s.priorityGroups(sizes, cache) {
		active := group
		for pass := 0; pass < maxRedistributionPasses && len(active) > 0; pass++ {
			var moving []int
			for k, i := range active {
				share := delta / float64(len(active)-k)
				old := sizes[i].Along(s.axis).Or(0)
				offer := math.Max(0, old+share)
				sz := s.measureChild(i, ProposeAlong(s.axis, Fixed(offer), cross), ctx, cache)
				if !sz.Along(s.axis).IsSet() {
					sz = ProposeAlong(s.axis, Fixed(offer), sz.Along(s.axis.Other()))
				}
				sizes[i] = sz

				absorbed := sz.Along(s.axis).Or(0) - old
				delta -= absorbed
				if math.Abs(absorbed) > epsilon {
					moving = append(moving, i)
				}
				if math.Abs(delta) <= epsilon {
					return
				}
			}
			active = moving
		}
	}
}

func (s *StackNode) priorityGroups(sizes []ProposedSize, cache *stackCache) [][]int {
	order := make([]int, len(cache.children))
	for i := range order {
		order[i] = i
	}
	priority := func(i int) float64 { return cache.children[i].node.Properties().Priority }
	unsized := func(i int) bool { return !sizes[i].Along(s.axis).IsSet() }
	slices.SortStableFunc(order, func(a, b int) int {
		if pa, pb := priority(a), priority(b); pa != pb {
			if pa < pb {
				return -1
			}
			return 1
		}
		if ua, ub := unsized(a), unsized(b); ua != ub {
			if ua {
				return -1
			}
			return 1
		}
		return 0
	})

	var groups [][]int
	for k, i := range order {
		if k == 0 || priority(i) != priority(order[k-1]) {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], i)
	}
	return groups
}

func (s *StackNode) Place(bounds Rect, ctx Context, c any, emit func(Cell, Rect)) {
	cache := c.(*stackCache)
	if !cache.measured {
		s.Measure(ProposeSize(bounds.Size), ctx, cache)
	}
	crossAxis := s.axis.Other()
	origin := bounds.Min(s.axis)
	crossOrigin := bounds.Min(crossAxis)
	crossSpace := bounds.Size.Along(crossAxis)

	for i, ch := range cache.children {
		sz := cache.sizes[i]
		main := sz.Along(s.axis).Or(bounds.Size.Along(s.axis))
		cross := sz.Along(crossAxis).Or(crossSpace)
		rect := rectAlong(s.axis, origin, align(crossOrigin, crossSpace, cross, s.alignment), main, cross)
		ch.node.Place(rect, ctx.WithID(ch.id), cache.caches[i], emit)
		origin += main + s.spacing
	}
}

func (s *StackNode) Items(id ID, visit func(Cell)) {
	for i, n := range s.content {
		n.Items(Union(id, i), visit)
	}
}

func (s *StackNode) Children(id ID, visit func(Node, ID)) {
	visit(s, id)
}
