package cells

// SpacerNode is flexible empty space. It takes whatever it is offered and,
// at priority 0, gives space back before anything else in a stack does.
type SpacerNode struct {
	base
	minW, minH float64
}

// Spacer creates a new spacer that expands to fill available space.
func Spacer() *SpacerNode {
	return &SpacerNode{}
}

// FixedSpacer creates a spacer that never shrinks below size.
func FixedSpacer(size float64) *SpacerNode {
	return Spacer().Min(size)
}

// Min sets the minimum size in both dimensions.
func (s *SpacerNode) Min(size float64) *SpacerNode {
	s.minW = sane(size, "spacer min")
	s.minH = s.minW
	return s
}

// MinWidth sets the minimum width.
func (s *SpacerNode) MinWidth(w float64) *SpacerNode {
	s.minW = sane(w, "spacer min width")
	return s
}

// MinHeight sets the minimum height.
func (s *SpacerNode) MinHeight(h float64) *SpacerNode {
	s.minH = sane(h, "spacer min height")
	return s
}

func (s *SpacerNode) Properties() Properties {
	return Properties{Priority: 0}
}

// Measure claims the proposal, or the minimum where nothing was proposed.
func (s *SpacerNode) Measure(p ProposedSize, _ Context, _ any) ProposedSize {
	return Propose(
		max(p.Width.Or(0), s.minW),
		max(p.Height.Or(0), s.minH),
	)
}

// Spacers are invisible.
func (s *SpacerNode) Place(Rect, Context, any, func(Cell, Rect)) {}

func (s *SpacerNode) Items(ID, func(Cell)) {}

func (s *SpacerNode) Children(id ID, visit func(Node, ID)) {
	visit(s, id)
}
