package cells

import "github.com/golang/glog"

// LayoutView is a self-measuring layout surface that can live inside a cell.
//
// It owns its own id to view map: Reload lays the tree out with an
// unconstrained proposal, rebinds views by id, creates views for new ids and
// drops the ones that vanished.
type LayoutView struct {
	id          ID
	root        Node
	views       map[ID]View
	kinds       map[ID]Kind
	placements  []Placement
	size        Size
	sized       bool
	needsReload bool
}

// NewLayoutView creates an empty layout surface.
func NewLayoutView() *LayoutView {
	return &LayoutView{
		root:  Empty(),
		views: make(map[ID]View),
		kinds: make(map[ID]Kind),
	}
}

// SetID sets the identity the tree is laid out under.
func (v *LayoutView) SetID(id ID) {
	if v.id != id {
		v.id = id
		v.needsReload = true
	}
}

// ID returns the identity the tree is laid out under.
func (v *LayoutView) ID() ID { return v.id }

// Reload replaces the tree and lays it out now.
func (v *LayoutView) Reload(root Node) {
	if root == nil {
		root = Empty()
	}
	v.root = root
	v.reload()
}

// ReloadIfNeeded lays the current tree out again if it was invalidated.
func (v *LayoutView) ReloadIfNeeded() {
	if v.needsReload {
		v.reload()
	}
}

// SetNeedsReload invalidates the current layout.
func (v *LayoutView) SetNeedsReload() {
	v.needsReload = true
}

// IntrinsicSize is the size of the last layout pass.
func (v *LayoutView) IntrinsicSize() (Size, bool) {
	return v.size, v.sized
}

// Placements returns the leaves of the last layout pass.
func (v *LayoutView) Placements() []Placement {
	return v.placements
}

// View returns the live view bound to id.
func (v *LayoutView) View(id ID) (View, bool) {
	view, ok := v.views[id]
	return view, ok
}

// Len returns the number of live views.
func (v *LayoutView) Len() int { return len(v.views) }

func (v *LayoutView) reload() {
	if v.layout() > 0 {
		// views created by the first pass can size themselves now
		v.layout()
	}
	v.needsReload = false
}

// layout lays the tree out once, binds views by id and returns how many it
// had to create.
func (v *LayoutView) layout() int {
	created := 0
	current, currentKinds := v.views, v.kinds
	v.views = make(map[ID]View, len(current))
	v.kinds = make(map[ID]Kind, len(currentKinds))

	_, aliases := resolveLeaves(v.id, itemsAt(v.root, v.id))
	ctx := NewContext(v.id, SubviewFuncs{
		ViewFunc: func(id ID) (View, bool) {
			if view, ok := current[id]; ok {
				return view, true
			}
			view, ok := v.views[id]
			return view, ok
		},
	}).withAliases(aliases)
	size, placements := LayoutAt(v.root, Point{}, ProposedSize{}, ctx)

	for _, p := range placements {
		id := p.Cell.ID()
		if view, taken := v.views[id]; taken {
			glog.Warningf("[layout]%s placed twice, dropping its first view\n", id)
			destroy(view)
		}
		view, ok := current[id]
		if !ok || currentKinds[id] != p.Cell.Kind() {
			if ok {
				glog.V(1).Infof("[layout]kind changed for %s, recreating view\n", id)
				destroy(view)
			}
			view = p.Cell.CreateView()
			created++
		}
		delete(current, id)
		p.Cell.Render(view)
		v.views[id] = view
		v.kinds[id] = p.Cell.Kind()
	}
	for _, view := range current {
		destroy(view)
	}

	v.placements = placements
	v.size, v.sized = size, true
	return created
}

func destroy(view View) {
	if d, ok := view.(Destroyable); ok {
		d.Destroy()
	}
}

// ContainerNode hosts a layout tree inside a single cell backed by a
// LayoutView. Once the view is live, measuring defers to it instead of
// laying the tree out a second time.
type ContainerNode struct {
	root Node
}

// Container wraps root into a single layout-in-a-cell leaf keyed by the
// context it is placed under.
func Container(root Node) *ContainerNode {
	return &ContainerNode{root: root}
}

func (c *ContainerNode) Properties() Properties { return c.root.Properties() }
func (c *ContainerNode) NewCache() any          { return c.root.NewCache() }

func (c *ContainerNode) Measure(p ProposedSize, ctx Context, cache any) ProposedSize {
	if view, ok := ctx.views().View(ctx.ID); ok {
		if lv, ok := view.(*LayoutView); ok {
			lv.ReloadIfNeeded()
			if s, ok := lv.IntrinsicSize(); ok {
				return ProposeSize(s)
			}
		}
	}
	return c.root.Measure(p, ctx, cache)
}

func (c *ContainerNode) Place(bounds Rect, ctx Context, _ any, emit func(Cell, Rect)) {
	emit(c.cell(ctx.ID), bounds)
}

func (c *ContainerNode) Items(id ID, visit func(Cell)) {
	visit(c.cell(id))
}

func (c *ContainerNode) Children(id ID, visit func(Node, ID)) {
	visit(c, id)
}

func (c *ContainerNode) cell(id ID) Cell {
	root := c.root
	cell := NewCell(id, NewLayoutView, func(v *LayoutView) {
		v.SetID(id)
		v.Reload(root)
	})
	cell.at = id
	return cell
}
