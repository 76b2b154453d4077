package layout

// Algorithm is the pluggable strategy a Wrapper delegates to.
//
// MeasureContent must not touch children and returns the content box only;
// ok is false when the node has no intrinsic content. Measure sizes the node
// and recursively measures children with whatever constraint the policy
// dictates. Layout positions children by writing their frame offsets and
// recursing into their Layout.
type Algorithm interface {
	MeasureContent(contentConstraint Constraint, w *Wrapper) (size SizeF, ok bool)
	Measure(w *Wrapper)
	Layout(w *Wrapper)
}

// PerformMeasureSelf sets the node's frame size: the pinned ideal size on
// each axis when present, otherwise the content size (or the given child
// extent) plus padding and border, clamped to the constraint.
func PerformMeasureSelf(w *Wrapper, childExtent *SizeF) {
	c, _ := w.property.LayoutConstraint()
	inset := w.property.PaddingAndBorder()

	var base SizeF
	if content, ok := w.geometry.ContentSize(); ok {
		base = content
	} else if childExtent != nil {
		base = *childExtent
	}
	size := base.Add(inset.Horizontal(), inset.Vertical())
	if c.SelfIdealSize.HasWidth {
		size.Width = c.SelfIdealSize.Width
	}
	if c.SelfIdealSize.HasHeight {
		size.Height = c.SelfIdealSize.Height
	}
	size = c.Constrain(size)
	w.geometry.SetFrameSize(size)
	w.geometry.SetContentOffset(OffsetF{X: inset.Left, Y: inset.Top})
}

// PerformMeasureSelfFill sizes the node to fill its constraint: the pinned
// ideal size when present, otherwise the finite maximum. Axes with neither
// fall back to the child extent like PerformMeasureSelf.
func PerformMeasureSelfFill(w *Wrapper, childExtent *SizeF) {
	c, _ := w.property.LayoutConstraint()
	if !c.SelfIdealSize.HasWidth && !IsInfinite(c.MaxSize.Width) {
		c.SelfIdealSize.SetWidth(c.MaxSize.Width)
	}
	if !c.SelfIdealSize.HasHeight && !IsInfinite(c.MaxSize.Height) {
		c.SelfIdealSize.SetHeight(c.MaxSize.Height)
	}
	w.property.constraint = &c
	PerformMeasureSelf(w, childExtent)
}

// ContentBoxSize returns the frame size minus padding and border.
func ContentBoxSize(w *Wrapper) SizeF {
	frame := w.geometry.FrameSize()
	inset := w.property.PaddingAndBorder()
	return SizeF{
		Width:  NonNegative(frame.Width - inset.Horizontal()),
		Height: NonNegative(frame.Height - inset.Vertical()),
	}
}

// marginBoxSize returns a child's frame size plus its margin.
func marginBoxSize(child *Wrapper) SizeF {
	s := child.geometry.FrameSize()
	m := child.property.Margin
	return s.Add(m.Horizontal(), m.Vertical())
}

// Run measures and lays out a wrapper tree from scratch with the given
// root constraint, placing the root at the origin.
func Run(w *Wrapper, c Constraint) {
	w.Measure(&c)
	origin := OffsetF{}
	w.Layout(&origin)
}
