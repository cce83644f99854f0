package cells

// Node is an element of a layout tree.
//
// Layout runs in two passes: Measure answers a size proposal, Place assigns
// rectangles to the leaf cells below the node. Each node owns an opaque cache
// created by NewCache and handed back on every call for one tree generation.
type Node interface {
	Properties() Properties
	NewCache() any

	// Measure returns the node's size for proposal p. Unspecified dimensions
	// in the result mean the node fills whatever it is given.
	Measure(p ProposedSize, ctx Context, cache any) ProposedSize

	// Place emits every leaf cell below the node with its rect.
	Place(bounds Rect, ctx Context, cache any, emit func(Cell, Rect))

	// Items visits the leaf cells below the node, keyed under id.
	Items(id ID, visit func(Cell))

	// Children visits the nodes a stack lays out in place of this node,
	// each with the identity it must be measured and placed under.
	// Plain nodes visit themselves.
	Children(id ID, visit func(Node, ID))
}

// Properties are the layout traits a parent reads off a child.
type Properties struct {
	Axis     *Axis   // primary axis, nil when the node has none
	Priority float64 // flex priority, lower adjusts first
}

// DefaultProperties has no axis and priority 1.
func DefaultProperties() Properties {
	return Properties{Priority: 1}
}

// Subviews gives layout access to live views and previous frames.
type Subviews interface {
	View(id ID) (View, bool)
	CachedSize(id ID) (Size, bool)
}

// NoViews is a Subviews with nothing live.
var NoViews Subviews = noViews{}

type noViews struct{}

func (noViews) View(ID) (View, bool)       { return nil, false }
func (noViews) CachedSize(ID) (Size, bool) { return Size{}, false }

// SubviewFuncs adapts two functions to Subviews.
type SubviewFuncs struct {
	ViewFunc func(ID) (View, bool)
	SizeFunc func(ID) (Size, bool)
}

func (s SubviewFuncs) View(id ID) (View, bool) {
	if s.ViewFunc == nil {
		return nil, false
	}
	return s.ViewFunc(id)
}

func (s SubviewFuncs) CachedSize(id ID) (Size, bool) {
	if s.SizeFunc == nil {
		return Size{}, false
	}
	return s.SizeFunc(id)
}

// Context carries the identity a node is laid out under and the live views.
type Context struct {
	ID    ID
	Views Subviews

	aliases map[ID]ID // layout position of a renamed duplicate leaf -> its id
}

// NewContext builds a root context.
func NewContext(id ID, views Subviews) Context {
	if views == nil {
		views = NoViews
	}
	return Context{ID: id, Views: views}
}

// WithID returns a context for a different identity.
func (c Context) WithID(id ID) Context {
	c.ID = id
	return c
}

// Union returns a context keyed by the composite of c's id and local.
func (c Context) Union(local any) Context {
	return c.WithID(Union(c.ID, local))
}

// withAliases returns a context that renames the leaves at the given
// positions.
func (c Context) withAliases(aliases map[ID]ID) Context {
	c.aliases = aliases
	return c
}

func (c Context) views() Subviews {
	if c.Views == nil {
		return NoViews
	}
	return c.Views
}

// Measurer views size themselves for a proposal.
type Measurer interface {
	SizeThatFits(p ProposedSize) Size
}

// IntrinsicSizer views report a natural size when they have one.
type IntrinsicSizer interface {
	IntrinsicSize() (Size, bool)
}

// Placement is a leaf cell with its resolved rect.
type Placement struct {
	Cell Cell
	Rect Rect
}

// Layout measures root under proposal p and places it at the origin.
// Unspecified dimensions of the measured size resolve to the proposal, then 0.
func Layout(root Node, p ProposedSize, views Subviews) (Size, []Placement) {
	return LayoutAt(root, Point{}, p, NewContext(NoID, views))
}

// LayoutAt is Layout with an explicit origin and context.
func LayoutAt(root Node, origin Point, p ProposedSize, ctx Context) (Size, []Placement) {
	cache := root.NewCache()
	p = saneProposal(p, "root proposal")
	measured := root.Measure(p, ctx, cache)
	size := Size{
		Width:  measured.Width.Or(p.Width.Or(0)),
		Height: measured.Height.Or(p.Height.Or(0)),
	}
	var out []Placement
	root.Place(Rect{Origin: origin, Size: size}, ctx, cache, func(c Cell, r Rect) {
		out = append(out, Placement{Cell: c, Rect: r})
	})
	return size, out
}

// Items collects the leaf cells of root, keyed the way Place keys them.
func Items(root Node) []Cell {
	return itemsAt(root, NoID)
}

func itemsAt(root Node, id ID) []Cell {
	var out []Cell
	root.Items(id, func(c Cell) { out = append(out, c) })
	return out
}

// resolveLeaves gives later leaves that repeat an id the synthetic id a
// snapshot would give them. It returns the resolved snapshot and the new id
// of every renamed leaf, keyed by its layout position.
func resolveLeaves(section any, leaves []Cell) (Snapshot, map[ID]ID) {
	snap := NewSnapshot([]Section{NewSection(section, leaves)})
	if !snap.HasDuplicates() {
		return snap, nil
	}
	resolved, _ := snap.Section(0)
	aliases := make(map[ID]ID)
	for i, c := range resolved.cells {
		if c.id != leaves[i].id {
			aliases[leaves[i].at] = c.id
		}
	}
	return snap, aliases
}

// base gives nodes default properties and no cache.
type base struct{}

func (base) Properties() Properties { return DefaultProperties() }
func (base) NewCache() any          { return nil }
