package layout

import (
	"math"

	"github.com/chewxy/math32"
)

// Infinity marks an unbounded constraint on an axis.
const Infinity = float32(math.MaxFloat32)

const epsilon = 0.001

// NearEqual reports whether a and b differ by less than a rounding step.
func NearEqual(a, b float32) bool {
	return math32.Abs(a-b) < epsilon
}

// NonNegative clamps v to zero from below.
func NonNegative(v float32) float32 {
	return math32.Max(v, 0)
}

// IsInfinite reports whether v stands for an unbounded length.
func IsInfinite(v float32) bool {
	return v >= Infinity || math32.IsInf(v, 1)
}

// SizeF is a width/height pair in virtual pixels.
type SizeF struct {
	Width, Height float32
}

// NewSize creates a SizeF.
func NewSize(w, h float32) SizeF {
	return SizeF{Width: w, Height: h}
}

// Equal reports whether two sizes match within rounding.
func (s SizeF) Equal(o SizeF) bool {
	return NearEqual(s.Width, o.Width) && NearEqual(s.Height, o.Height)
}

// IsPositive reports whether both dimensions are above zero.
func (s SizeF) IsPositive() bool {
	return s.Width > 0 && s.Height > 0
}

// Add grows the size by the given amounts.
func (s SizeF) Add(w, h float32) SizeF {
	return SizeF{Width: s.Width + w, Height: s.Height + h}
}

// Constrain clamps each dimension into [minSize, maxSize]. When min exceeds
// max, min wins.
func (s SizeF) Constrain(minSize, maxSize SizeF) SizeF {
	return SizeF{
		Width:  clamp(s.Width, minSize.Width, maxSize.Width),
		Height: clamp(s.Height, minSize.Height, maxSize.Height),
	}
}

// MainSize returns the dimension along axis.
func (s SizeF) MainSize(axis Axis) float32 {
	if axis == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

// CrossSize returns the dimension across axis.
func (s SizeF) CrossSize(axis Axis) float32 {
	if axis == AxisHorizontal {
		return s.Height
	}
	return s.Width
}

// OffsetF is a position in virtual pixels.
type OffsetF struct {
	X, Y float32
}

// NewOffset creates an OffsetF.
func NewOffset(x, y float32) OffsetF {
	return OffsetF{X: x, Y: y}
}

// Add returns a new offset moved by other.
func (o OffsetF) Add(other OffsetF) OffsetF {
	return OffsetF{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns a new offset with other subtracted.
func (o OffsetF) Sub(other OffsetF) OffsetF {
	return OffsetF{X: o.X - other.X, Y: o.Y - other.Y}
}

// Equal reports whether two offsets match within rounding.
func (o OffsetF) Equal(other OffsetF) bool {
	return NearEqual(o.X, other.X) && NearEqual(o.Y, other.Y)
}

// RectF is an axis-aligned rectangle.
type RectF struct {
	X, Y, Width, Height float32
}

// NewRect creates a RectF from an offset and a size.
func NewRect(offset OffsetF, size SizeF) RectF {
	return RectF{X: offset.X, Y: offset.Y, Width: size.Width, Height: size.Height}
}

// Offset returns the top-left corner.
func (r RectF) Offset() OffsetF { return OffsetF{X: r.X, Y: r.Y} }

// Size returns the dimensions.
func (r RectF) Size() SizeF { return SizeF{Width: r.Width, Height: r.Height} }

// Contains reports whether the point lies inside the rectangle. The right
// and bottom edges are exclusive.
func (r RectF) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Equal reports whether two rectangles match within rounding.
func (r RectF) Equal(o RectF) bool {
	return r.Offset().Equal(o.Offset()) && r.Size().Equal(o.Size())
}

// OptionalSizeF is a size whose dimensions may be individually unset.
type OptionalSizeF struct {
	Width, Height       float32
	HasWidth, HasHeight bool
}

// OptionalSize creates an OptionalSizeF with both dimensions set.
func OptionalSize(w, h float32) OptionalSizeF {
	return OptionalSizeF{Width: w, Height: h, HasWidth: true, HasHeight: true}
}

// SetWidth sets the width.
func (o *OptionalSizeF) SetWidth(w float32) {
	o.Width, o.HasWidth = w, true
}

// SetHeight sets the height.
func (o *OptionalSizeF) SetHeight(h float32) {
	o.Height, o.HasHeight = h, true
}

// IsValid reports whether both dimensions are set.
func (o OptionalSizeF) IsValid() bool {
	return o.HasWidth && o.HasHeight
}

// IsNull reports whether neither dimension is set.
func (o OptionalSizeF) IsNull() bool {
	return !o.HasWidth && !o.HasHeight
}

// Main returns the dimension along axis and whether it is set.
func (o OptionalSizeF) Main(axis Axis) (float32, bool) {
	if axis == AxisHorizontal {
		return o.Width, o.HasWidth
	}
	return o.Height, o.HasHeight
}

// SetMain sets the dimension along axis.
func (o *OptionalSizeF) SetMain(axis Axis, v float32) {
	if axis == AxisHorizontal {
		o.SetWidth(v)
		return
	}
	o.SetHeight(v)
}

// Edges holds per-side lengths for padding, border and margin.
type Edges struct {
	Left, Top, Right, Bottom float32
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(v float32) Edges {
	return Edges{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float32 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float32 { return e.Top + e.Bottom }

// Add sums two edge sets side by side.
func (e Edges) Add(o Edges) Edges {
	return Edges{Left: e.Left + o.Left, Top: e.Top + o.Top, Right: e.Right + o.Right, Bottom: e.Bottom + o.Bottom}
}

// Axis selects the main direction of a linear or scroll layout.
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// clamp restricts v to the range [minVal, maxVal].
// If minVal > maxVal, minVal wins.
func clamp(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if maxVal >= minVal && v > maxVal {
		return maxVal
	}
	return v
}
