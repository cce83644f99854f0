package cells

// GroupNode is a sequence of nodes with no layout of its own.
//
// Inside a stack its children are laid out as if they were the stack's own.
// Anywhere else they are overlaid in the same bounds and the group measures
// as the largest of them.
type GroupNode struct {
	children []groupChild
}

type groupChild struct {
	node  Node
	local any
}

// Group collects nodes, keyed by position.
func Group(items ...ChildItem) *GroupNode {
	ns := nodes(items)
	g := &GroupNode{children: make([]groupChild, len(ns))}
	for i, n := range ns {
		g.children[i] = groupChild{node: n, local: i}
	}
	return g
}

// repeatKey keys the n-th repeat of a ForEach key.
type repeatKey struct {
	key any
	n   int
}

// ForEach builds one node per item, keyed by the item's own key so the
// subtree keeps its identity when items are reordered. A key seen again is
// keyed by its repeat count.
func ForEach[T any, K comparable](items []T, key func(T) K, content func(T) Node) *GroupNode {
	g := &GroupNode{children: make([]groupChild, 0, len(items))}
	seen := make(map[K]int, len(items))
	for _, item := range items {
		k := key(item)
		var local any = k
		if n := seen[k]; n > 0 {
			local = repeatKey{key: k, n: n}
		}
		seen[k]++
		g.children = append(g.children, groupChild{node: content(item), local: local})
	}
	return g
}

// Len returns the number of children.
func (g *GroupNode) Len() int { return len(g.children) }

func (g *GroupNode) Properties() Properties { return DefaultProperties() }

func (g *GroupNode) NewCache() any {
	caches := make([]any, len(g.children))
	for i, ch := range g.children {
		caches[i] = ch.node.NewCache()
	}
	return caches
}

func (g *GroupNode) Measure(p ProposedSize, ctx Context, c any) ProposedSize {
	caches := c.([]any)
	var w, h Dim
	for i, ch := range g.children {
		sz := saneProposal(ch.node.Measure(p, ctx.Union(ch.local), caches[i]), "measured size")
		if v, ok := sz.Width.Get(); ok && v > w.Or(-1) {
			w = Fixed(v)
		}
		if v, ok := sz.Height.Get(); ok && v > h.Or(-1) {
			h = Fixed(v)
		}
	}
	return ProposedSize{Width: w, Height: h}
}

func (g *GroupNode) Place(bounds Rect, ctx Context, c any, emit func(Cell, Rect)) {
	caches := c.([]any)
	for i, ch := range g.children {
		ch.node.Place(bounds, ctx.Union(ch.local), caches[i], emit)
	}
}

func (g *GroupNode) Items(id ID, visit func(Cell)) {
	for _, ch := range g.children {
		ch.node.Items(Union(id, ch.local), visit)
	}
}

func (g *GroupNode) Children(id ID, visit func(Node, ID)) {
	for _, ch := range g.children {
		ch.node.Children(Union(id, ch.local), visit)
	}
}
