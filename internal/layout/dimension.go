package layout

// Unit specifies how a Dimension is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content or parent
	UnitPx                  // Absolute virtual pixels
	UnitPercent             // Percentage of the percent reference
)

// Dimension represents a length that can be fixed, percentage, or auto.
type Dimension struct {
	Value float32
	Unit  Unit
}

// Auto returns a Dimension that should be computed from content or parent.
func Auto() Dimension {
	return Dimension{Unit: UnitAuto}
}

// Px returns a Dimension of absolute virtual pixels.
func Px(v float32) Dimension {
	return Dimension{Value: v, Unit: UnitPx}
}

// Percent returns a Dimension on a 0-100 scale of the percent reference.
func Percent(p float32) Dimension {
	return Dimension{Value: p, Unit: UnitPercent}
}

// IsAuto returns true if this dimension should be computed from content.
func (d Dimension) IsAuto() bool {
	return d.Unit == UnitAuto
}

// Resolve computes the length given the percent reference. ok is false for
// auto dimensions and for percentages of an unbounded reference.
func (d Dimension) Resolve(reference float32) (v float32, ok bool) {
	switch d.Unit {
	case UnitPx:
		return d.Value, true
	case UnitPercent:
		if IsInfinite(reference) {
			return 0, false
		}
		return reference * d.Value / 100, true
	default:
		return 0, false
	}
}

// CalcSize is a width/height pair of dimensions as declared by a component.
type CalcSize struct {
	Width, Height Dimension
}

// Resolve converts the declared size into an optional size against the
// percent reference.
func (c CalcSize) Resolve(reference SizeF) OptionalSizeF {
	var out OptionalSizeF
	if w, ok := c.Width.Resolve(reference.Width); ok {
		out.SetWidth(w)
	}
	if h, ok := c.Height.Resolve(reference.Height); ok {
		out.SetHeight(h)
	}
	return out
}

// MeasureProperty holds the declared size limits of a component.
type MeasureProperty struct {
	SelfIdealSize CalcSize
	MinSize       CalcSize
	MaxSize       CalcSize
}
