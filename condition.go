package cells

// ConditionNode routes to one of two branches.
//
// Each branch lives under its own composite id and gets its own cache;
// switching branches never hands one branch's cache to the other. With no
// active branch the node measures as zero and contributes no leaves.
type ConditionNode struct {
	cond bool
	then Node
	els  Node
}

// If shows then when cond holds.
//
//	cells.If(user.Admin, adminBadge)
//	cells.If(len(items) == 0, emptyState).Else(list)
func If(cond bool, then Node) *ConditionNode {
	return &ConditionNode{cond: cond, then: then}
}

// Either shows a when cond holds, b otherwise.
func Either(cond bool, a, b Node) *ConditionNode {
	return If(cond, a).Else(b)
}

// Else sets the branch shown when the condition fails.
func (c *ConditionNode) Else(n Node) *ConditionNode {
	c.els = n
	return c
}

// active returns the live branch and the key it is identified by.
func (c *ConditionNode) active() (Node, bool) {
	if c.cond {
		return c.then, true
	}
	return c.els, false
}

func (c *ConditionNode) Properties() Properties {
	if n, _ := c.active(); n != nil {
		return n.Properties()
	}
	return DefaultProperties()
}

type conditionCache struct {
	branch bool
	ready  bool
	inner  any
}

func (c *ConditionNode) NewCache() any { return &conditionCache{} }

// branchCache returns the cache for the live branch, replacing it when the
// branch changed since it was built.
func (c *ConditionNode) branchCache(cache *conditionCache) (Node, bool, any) {
	n, key := c.active()
	if n == nil {
		return nil, key, nil
	}
	if !cache.ready || cache.branch != key {
		cache.branch, cache.ready, cache.inner = key, true, n.NewCache()
	}
	return n, key, cache.inner
}

func (c *ConditionNode) Measure(p ProposedSize, ctx Context, cache any) ProposedSize {
	n, key, inner := c.branchCache(cache.(*conditionCache))
	if n == nil {
		return Propose(0, 0)
	}
	return n.Measure(p, ctx.Union(key), inner)
}

func (c *ConditionNode) Place(bounds Rect, ctx Context, cache any, emit func(Cell, Rect)) {
	n, key, inner := c.branchCache(cache.(*conditionCache))
	if n == nil {
		return
	}
	n.Place(bounds, ctx.Union(key), inner, emit)
}

func (c *ConditionNode) Items(id ID, visit func(Cell)) {
	if n, key := c.active(); n != nil {
		n.Items(Union(id, key), visit)
	}
}

// Children lets a stack lay out the live branch directly; an absent branch
// takes no slot and no spacing.
func (c *ConditionNode) Children(id ID, visit func(Node, ID)) {
	if n, key := c.active(); n != nil {
		n.Children(Union(id, key), visit)
	}
}

// OptionalNode wraps a node that may be absent.
type OptionalNode struct {
	node Node
}

// Optional returns a node that behaves like n, or like nothing when n is nil.
func Optional(n Node) *OptionalNode {
	return &OptionalNode{node: n}
}

func (o *OptionalNode) Properties() Properties {
	if o.node == nil {
		return DefaultProperties()
	}
	return o.node.Properties()
}

func (o *OptionalNode) NewCache() any {
	if o.node == nil {
		return nil
	}
	return o.node.NewCache()
}

func (o *OptionalNode) Measure(p ProposedSize, ctx Context, cache any) ProposedSize {
	if o.node == nil {
		return Propose(0, 0)
	}
	return o.node.Measure(p, ctx, cache)
}

func (o *OptionalNode) Place(bounds Rect, ctx Context, cache any, emit func(Cell, Rect)) {
	if o.node != nil {
		o.node.Place(bounds, ctx, cache, emit)
	}
}

func (o *OptionalNode) Items(id ID, visit func(Cell)) {
	if o.node != nil {
		o.node.Items(id, visit)
	}
}

func (o *OptionalNode) Children(id ID, visit func(Node, ID)) {
	if o.node != nil {
		o.node.Children(id, visit)
	}
}

// EmptyNode has no size and no leaves.
type EmptyNode struct {
	base
}

// Empty returns a node that contributes nothing.
func Empty() EmptyNode { return EmptyNode{} }

func (EmptyNode) Measure(ProposedSize, Context, any) ProposedSize { return Propose(0, 0) }
func (EmptyNode) Place(Rect, Context, any, func(Cell, Rect))      {}
func (EmptyNode) Items(ID, func(Cell))                            {}
func (EmptyNode) Children(ID, func(Node, ID))                     {}
