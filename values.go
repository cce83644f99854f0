package cells

// Attr is a typed key into a Values bag.
// Attrs compare by pointer, so two attributes with the same name never clash.
type Attr[V any] struct {
	name string
	def  V
}

// NewAttr declares an attribute with a default returned when it is unset.
func NewAttr[V any](name string, def V) *Attr[V] {
	return &Attr[V]{name: name, def: def}
}

// Name returns the attribute's name.
func (a *Attr[V]) Name() string {
	return a.name
}

// Values is an immutable bag of optional named behaviours.
// Setting a value copies the bag; descriptors are values and share nothing.
type Values struct {
	m map[any]any
}

// Get returns the value for a, or a's default.
func Get[V any](vals Values, a *Attr[V]) V {
	if v, ok := Lookup(vals, a); ok {
		return v
	}
	return a.def
}

// Lookup returns the value for a and whether it was set.
func Lookup[V any](vals Values, a *Attr[V]) (V, bool) {
	raw, ok := vals.m[a]
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	return v, ok
}

// With returns a copy of vals with a set to v.
func With[V any](vals Values, a *Attr[V], v V) Values {
	m := make(map[any]any, len(vals.m)+1)
	for k, x := range vals.m {
		m[k] = x
	}
	m[a] = v
	return Values{m: m}
}

// Without returns a copy of vals with a unset.
func Without[V any](vals Values, a *Attr[V]) Values {
	if _, ok := vals.m[a]; !ok {
		return vals
	}
	m := make(map[any]any, len(vals.m))
	for k, x := range vals.m {
		if k != any(a) {
			m[k] = x
		}
	}
	return Values{m: m}
}

// Len returns the number of set attributes.
func (v Values) Len() int {
	return len(v.m)
}

// Cell attributes.
var (
	// Height is the row height list hosts use.
	Height = NewAttr[float64]("height", 0)

	// SizeFunc sizes an item in a grid host given the host's bounds.
	SizeFunc = NewAttr[func(bounds Size) (Size, bool)]("size", func(Size) (Size, bool) { return Size{}, false })

	DidSelect        = NewAttr[func()]("didSelect", func() {})
	WillDisplay      = NewAttr[func()]("willDisplay", func() {})
	DidEndDisplaying = NewAttr[func()]("didEndDisplaying", func() {})

	// DidHighlight fires when the host toggles a row's highlight.
	DidHighlight = NewAttr[func(View, bool)]("didHighlight", func(View, bool) {})

	// WillReuse fires on the previous occupant's view before a pooled view is rebound.
	WillReuse = NewAttr[func(View)]("willReuse", func(View) {})
)

// Section attributes.
var (
	HeaderCell = NewAttr[*Cell]("header", nil)
	FooterCell = NewAttr[*Cell]("footer", nil)
	StackAttr  = NewAttr[StackStyle]("stack", StackStyle{})
)

// StackStyle configures stack-style containers that host a section.
// Nil fields keep the container's current setting.
type StackStyle struct {
	Axis      *Axis
	Spacing   *float64
	Alignment *Align
}
