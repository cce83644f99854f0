package cells

// BackgroundNode draws a second subtree behind a base subtree at the same
// bounds. Only the base is measured.
type BackgroundNode struct {
	base       Node
	background Node
}

// Background puts background behind n.
func Background(n, background Node) *BackgroundNode {
	return &BackgroundNode{base: n, background: background}
}

// branch keys for the two subtrees
type backgroundKey uint8

const (
	baseKey backgroundKey = iota
	backgroundLayer
)

func (b *BackgroundNode) Properties() Properties { return b.base.Properties() }

type backgroundCache struct {
	base       any
	background any
}

func (b *BackgroundNode) NewCache() any {
	return &backgroundCache{base: b.base.NewCache(), background: b.background.NewCache()}
}

func (b *BackgroundNode) Measure(p ProposedSize, ctx Context, c any) ProposedSize {
	return b.base.Measure(p, ctx.Union(baseKey), c.(*backgroundCache).base)
}

// Place emits the background first so the base paints on top.
func (b *BackgroundNode) Place(bounds Rect, ctx Context, c any, emit func(Cell, Rect)) {
	cache := c.(*backgroundCache)
	b.background.Place(bounds, ctx.Union(backgroundLayer), cache.background, emit)
	b.base.Place(bounds, ctx.Union(baseKey), cache.base, emit)
}

func (b *BackgroundNode) Items(id ID, visit func(Cell)) {
	b.background.Items(Union(id, backgroundLayer), visit)
	b.base.Items(Union(id, baseKey), visit)
}

func (b *BackgroundNode) Children(id ID, visit func(Node, ID)) {
	visit(b, id)
}
