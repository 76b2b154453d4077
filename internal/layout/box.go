package layout

// BoxAlgorithm stacks children on top of each other and positions each one
// inside the content box by the container's Alignment.
type BoxAlgorithm struct{}

var _ Algorithm = BoxAlgorithm{}

// MeasureContent reports no intrinsic content.
func (BoxAlgorithm) MeasureContent(Constraint, *Wrapper) (SizeF, bool) {
	return SizeF{}, false
}

// Measure hands every child the full content box and sizes the box to the
// largest child unless an ideal size is pinned.
func (BoxAlgorithm) Measure(w *Wrapper) {
	childConstraint := w.property.CreateChildConstraint()
	var extent SizeF
	for _, child := range w.ActiveChildren() {
		child.Measure(&childConstraint)
		s := marginBoxSize(child)
		extent.Width = max(extent.Width, s.Width)
		extent.Height = max(extent.Height, s.Height)
	}
	PerformMeasureSelf(w, &extent)
}

// Layout aligns each child inside the content box.
func (BoxAlgorithm) Layout(w *Wrapper) {
	content := ContentBoxSize(w)
	origin := w.geometry.ContentOffset()
	align := w.property.Alignment
	for _, child := range w.ActiveChildren() {
		m := child.property.Margin
		off := align.Offset(content, marginBoxSize(child))
		placeChild(w, child, origin.Add(off).Add(OffsetF{X: m.Left, Y: m.Top}))
	}
}
