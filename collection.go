package cells

// Collection lays a node tree out on a Host through an Adapter.
//
// Reload flattens the tree's leaves into a single section and applies it.
// Prepare then measures and places the tree for a viewport; frames from the
// previous pass stand in for leaves that have no live view.
type Collection struct {
	adapter    *Adapter
	root       Node
	placements []Placement
	frames     map[ID]Rect
	aliases    map[ID]ID
	size       Size
}

// collectionSection keys the single section a Collection applies.
type collectionSection struct{}

// NewCollection creates a collection driving host.
func NewCollection(host Host, opts ...Option) *Collection {
	return &Collection{
		adapter: NewAdapter(host, opts...),
		root:    Empty(),
		frames:  make(map[ID]Rect),
	}
}

// Adapter returns the adapter the collection applies through.
func (c *Collection) Adapter() *Adapter { return c.adapter }

// Root returns the current tree.
func (c *Collection) Root() Node { return c.root }

// Reload replaces the tree and applies its leaves. Leaves repeating an id
// are renamed before the apply, and the renamed ids key their placements, so
// every placement has a view of its own. A tree with repeats is not animated.
func (c *Collection) Reload(root Node, done func()) {
	if root == nil {
		root = Empty()
	}
	c.root = root
	snap, aliases := resolveLeaves(collectionSection{}, Items(root))
	c.aliases = aliases
	c.adapter.Apply(snap.Sections(), c.adapter.cfg.animated && !snap.HasDuplicates(), done)
}

// Prepare lays the tree out for viewport. A root with an axis is
// constrained across it and free along it, so a vertical root scrolls.
func (c *Collection) Prepare(viewport Size) {
	viewport = Size{Width: sane(viewport.Width, "viewport width"), Height: sane(viewport.Height, "viewport height")}

	var proposal ProposedSize
	if axis := c.root.Properties().Axis; axis != nil {
		switch *axis {
		case Horizontal:
			proposal.Height = Fixed(viewport.Height)
		case Vertical:
			proposal.Width = Fixed(viewport.Width)
		}
	}

	old := c.frames
	ctx := NewContext(NoID, SubviewFuncs{
		ViewFunc: c.adapter.View,
		SizeFunc: func(id ID) (Size, bool) {
			r, ok := old[id]
			return r.Size, ok
		},
	}).withAliases(c.aliases)
	c.size, c.placements = LayoutAt(c.root, Point{}, proposal, ctx)

	c.frames = make(map[ID]Rect, len(c.placements))
	for _, p := range c.placements {
		c.frames[p.Cell.ID()] = p.Rect
	}
}

// ContentSize is the size of the last layout pass.
func (c *Collection) ContentSize() Size { return c.size }

// Placements returns every leaf of the last layout pass, in tree order.
func (c *Collection) Placements() []Placement { return c.placements }

// ElementsIn returns the leaves whose frames intersect r.
func (c *Collection) ElementsIn(r Rect) []Placement {
	var out []Placement
	for _, p := range c.placements {
		if p.Rect.Intersects(r) {
			out = append(out, p)
		}
	}
	return out
}

// Frame returns the frame of id from the last layout pass.
func (c *Collection) Frame(id ID) (Rect, bool) {
	r, ok := c.frames[id]
	return r, ok
}
