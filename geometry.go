package cells

import (
	"fmt"
	"math"

	"github.com/golang/glog"
)

// Axis is a layout direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Other returns the cross axis.
func (a Axis) Other() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Align positions content along one axis.
type Align uint8

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

// Alignment positions content on both axes.
type Alignment struct {
	Horizontal Align
	Vertical   Align
}

// Center is the default alignment.
var Center = Alignment{}

// Along returns the alignment for axis a.
func (al Alignment) Along(a Axis) Align {
	if a == Horizontal {
		return al.Horizontal
	}
	return al.Vertical
}

// Dim is an optional length. The zero value is unspecified.
type Dim struct {
	v   float64
	set bool
}

// Unspecified lets the node pick its own length.
var Unspecified Dim

// Fixed is a concrete length.
func Fixed(v float64) Dim {
	return Dim{v: v, set: true}
}

// Get returns the length and whether it is set.
func (d Dim) Get() (float64, bool) { return d.v, d.set }

// IsSet reports whether the length is set.
func (d Dim) IsSet() bool { return d.set }

// Or returns the length or def when unspecified.
func (d Dim) Or(def float64) float64 {
	if d.set {
		return d.v
	}
	return def
}

// Add shifts a set length; unspecified stays unspecified.
func (d Dim) Add(delta float64) Dim {
	if !d.set {
		return d
	}
	return Fixed(d.v + delta)
}

func (d Dim) String() string {
	if !d.set {
		return "nil"
	}
	return fmt.Sprintf("%g", d.v)
}

// ProposedSize is a size offer; unspecified dimensions mean "fit content".
type ProposedSize struct {
	Width  Dim
	Height Dim
}

// Propose builds a fully specified proposal.
func Propose(w, h float64) ProposedSize {
	return ProposedSize{Width: Fixed(w), Height: Fixed(h)}
}

// ProposeSize converts a concrete size.
func ProposeSize(s Size) ProposedSize {
	return Propose(s.Width, s.Height)
}

// ProposeAlong builds a proposal from main and cross lengths.
func ProposeAlong(a Axis, main, cross Dim) ProposedSize {
	if a == Horizontal {
		return ProposedSize{Width: main, Height: cross}
	}
	return ProposedSize{Width: cross, Height: main}
}

// Along returns the length on axis a.
func (p ProposedSize) Along(a Axis) Dim {
	if a == Horizontal {
		return p.Width
	}
	return p.Height
}

// IsUnspecified reports whether neither dimension is set.
func (p ProposedSize) IsUnspecified() bool {
	return !p.Width.set && !p.Height.set
}

// Or resolves unspecified dimensions from def.
func (p ProposedSize) Or(def Size) Size {
	return Size{Width: p.Width.Or(def.Width), Height: p.Height.Or(def.Height)}
}

// Size is a concrete extent.
type Size struct {
	Width  float64
	Height float64
}

// Along returns the length on axis a.
func (s Size) Along(a Axis) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// SizeAlong builds a size from main and cross lengths.
func SizeAlong(a Axis, main, cross float64) Size {
	if a == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

// Point is a position.
type Point struct {
	X, Y float64
}

// Rect is a positioned size.
type Rect struct {
	Origin Point
	Size   Size
}

// R is shorthand for a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Min returns the leading edge on axis a.
func (r Rect) Min(a Axis) float64 {
	if a == Horizontal {
		return r.Origin.X
	}
	return r.Origin.Y
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Frame places a rect of size s inside r according to al.
func (r Rect) Frame(s Size, al Alignment) Rect {
	return Rect{
		Origin: Point{
			X: align(r.Origin.X, r.Size.Width, s.Width, al.Horizontal),
			Y: align(r.Origin.Y, r.Size.Height, s.Height, al.Vertical),
		},
		Size: s,
	}
}

func align(origin, space, length float64, al Align) float64 {
	switch al {
	case AlignStart:
		return origin
	case AlignEnd:
		return origin + space - length
	default:
		return origin + (space-length)/2
	}
}

// rectAlong builds a rect from main/cross origin and lengths.
func rectAlong(a Axis, mainOrigin, crossOrigin, main, cross float64) Rect {
	if a == Horizontal {
		return R(mainOrigin, crossOrigin, main, cross)
	}
	return R(crossOrigin, mainOrigin, cross, main)
}

// sane clamps negative and NaN lengths to zero. Infinity is a valid offer.
func sane(v float64, what string) float64 {
	if math.IsNaN(v) || v < 0 {
		glog.V(1).Infof("[layout]clamping degenerate %s %g to 0\n", what, v)
		return 0
	}
	return v
}

func saneDim(d Dim, what string) Dim {
	if !d.set {
		return d
	}
	return Fixed(sane(d.v, what))
}

func saneProposal(p ProposedSize, what string) ProposedSize {
	return ProposedSize{Width: saneDim(p.Width, what+" width"), Height: saneDim(p.Height, what+" height")}
}
