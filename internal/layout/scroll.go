package layout

// ScrollAlgorithm measures its children with an unbounded main axis and
// shifts them by the current scroll position. The position lives with the
// owning pattern; Offset points at it so the clamped value is written back.
type ScrollAlgorithm struct {
	Axis   Axis
	Offset *float32

	scrollable float32
}

var _ Algorithm = (*ScrollAlgorithm)(nil)

// MeasureContent reports no intrinsic content.
func (s *ScrollAlgorithm) MeasureContent(Constraint, *Wrapper) (SizeF, bool) {
	return SizeF{}, false
}

// Measure lets children grow without limit along the scroll axis and sizes
// the viewport to the constraint, or to the children when unconstrained.
func (s *ScrollAlgorithm) Measure(w *Wrapper) {
	c := w.property.CreateChildConstraint()
	c.MaxSize = setMain(c.MaxSize, s.Axis, Infinity)
	c.PercentReference = setMain(c.PercentReference, s.Axis, Infinity)
	c.ParentIdealSize = OptionalSizeF{}
	if v, ok := w.property.contentIdeal(otherAxis(s.Axis)); ok {
		c.ParentIdealSize.SetMain(otherAxis(s.Axis), v)
	}

	var extent SizeF
	for _, child := range w.ActiveChildren() {
		child.Measure(&c)
		ms := marginBoxSize(child)
		extent.Width = max(extent.Width, ms.Width)
		extent.Height = max(extent.Height, ms.Height)
	}
	PerformMeasureSelfFill(w, &extent)
}

// Layout clamps the scroll position to the scrollable distance and offsets
// children against it.
func (s *ScrollAlgorithm) Layout(w *Wrapper) {
	viewport := ContentBoxSize(w).MainSize(s.Axis)
	var contentMain float32
	children := w.ActiveChildren()
	for _, child := range children {
		contentMain = max(contentMain, marginBoxSize(child).MainSize(s.Axis))
	}
	s.scrollable = NonNegative(contentMain - viewport)

	var pos float32
	if s.Offset != nil {
		pos = clamp(*s.Offset, 0, s.scrollable)
		*s.Offset = pos
	}

	origin := w.geometry.ContentOffset()
	for _, child := range children {
		m := child.property.Margin
		off := OffsetF{X: m.Left, Y: m.Top}
		if s.Axis == AxisHorizontal {
			off.X -= pos
		} else {
			off.Y -= pos
		}
		placeChild(w, child, origin.Add(off))
	}
}

// ScrollableDistance returns how far the content can scroll, as computed by
// the latest Layout.
func (s *ScrollAlgorithm) ScrollableDistance() float32 {
	return s.scrollable
}

func otherAxis(a Axis) Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

func setMain(size SizeF, axis Axis, v float32) SizeF {
	if axis == AxisHorizontal {
		size.Width = v
	} else {
		size.Height = v
	}
	return size
}
